package loginwithemail

import (
	"context"
	"errors"
	"testing"
	"time"

	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	"accounts/internal/core/domain/logging"
	"accounts/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	USERNAME = "alice"
	EMAIL    = "test@test.test"
	PASSWORD = "test-password"

	SESSION_TOKEN_TTL = time.Hour * 24
)

var Now time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger            *logging.FakeLogger
	AccountRepository *account.FakeAccountRepository
	PasswordHasher    *account.FakePasswordHasher
	TokenCodec        *account.FakeTokenCodec
	Service           services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.AccountRepository = account.NewFakeAccountRepository()
	suite.PasswordHasher = account.NewFakePasswordHasher()
	suite.TokenCodec = account.NewFakeTokenCodec(func() time.Time { return Now })
	suite.Service = New(
		suite.Logger,
		suite.AccountRepository,
		suite.PasswordHasher,
		suite.TokenCodec,
		SESSION_TOKEN_TTL,
	)
}

func TestLogInWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createAccount() account.Account {
	hash, err := s.PasswordHasher.HashPassword(account.RawPassword(PASSWORD))
	s.Require().Nil(err)
	a, err := s.AccountRepository.Create(context.Background(), account.CreateAccountInput{
		Username:     USERNAME,
		Email:        c.Email(EMAIL),
		PasswordHash: hash,
		CreatedAt:    Now,
	})
	s.Require().Nil(err)
	return a
}

func (s *testSuite) TestSuccessTokenIssuedWithSessionPurpose() {
	created := s.createAccount()

	result, err := s.Service.Run(
		context.Background(),
		Input{Email: c.Email(EMAIL), Password: account.RawPassword(PASSWORD)},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.NotEqual(account.Token(""), result.Token)

	accountID, purpose, err := s.TokenCodec.Verify(result.Token)
	assert.Nil(err)
	assert.Equal(created.ID, accountID)
	assert.Equal(account.PurposeSession, purpose)
}

func (s *testSuite) TestWrongPassword() {
	s.createAccount()

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.Email(EMAIL), Password: account.RawPassword("wrong-password")},
	)
	s.True(errors.Is(err, account.ErrInvalidCredentials))
}

func (s *testSuite) TestUnknownEmail() {
	s.createAccount()

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.Email("unknown@test.test"), Password: account.RawPassword(PASSWORD)},
	)
	s.True(errors.Is(err, account.ErrInvalidCredentials))
}

// Unknown email and wrong password must not be distinguishable by error kind.
func (s *testSuite) TestUnknownEmailAndWrongPasswordSameError() {
	s.createAccount()

	_, errUnknown := s.Service.Run(
		context.Background(),
		Input{Email: c.Email("unknown@test.test"), Password: account.RawPassword(PASSWORD)},
	)
	_, errWrongPassword := s.Service.Run(
		context.Background(),
		Input{Email: c.Email(EMAIL), Password: account.RawPassword("wrong-password")},
	)
	s.Equal(errUnknown, errWrongPassword)
}

func (s *testSuite) TestLoginDoesNotMutateAccount() {
	created := s.createAccount()

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.Email(EMAIL), Password: account.RawPassword(PASSWORD)},
	)
	s.Nil(err)

	after, err := s.AccountRepository.GetByID(context.Background(), created.ID)
	s.Nil(err)
	s.Equal(created, after)
}

func (s *testSuite) TestTokenCodecError() {
	s.createAccount()
	s.TokenCodec.ReturnError = true

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.Email(EMAIL), Password: account.RawPassword(PASSWORD)},
	)
	s.NotNil(err)
	s.False(errors.Is(err, account.ErrInvalidCredentials))
}
