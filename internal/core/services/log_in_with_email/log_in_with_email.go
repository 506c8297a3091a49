package loginwithemail

import (
	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	"accounts/internal/core/services"
	"context"
	"errors"
	"time"
)

type Input struct {
	Email    c.Email
	Password account.RawPassword
}

type Result struct {
	Token account.Token
}

type service struct {
	log               logging.Logger
	accountRepository account.AccountRepository
	passwordHasher    account.PasswordHasher
	tokenCodec        account.TokenCodec
	sessionTokenTTL   time.Duration
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	passwordHasher account.PasswordHasher,
	tokenCodec account.TokenCodec,
	sessionTokenTTL time.Duration,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if tokenCodec == nil {
		panic(e.NewNilArgumentError("tokenCodec"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		passwordHasher:    passwordHasher,
		tokenCodec:        tokenCodec,
		sessionTokenTTL:   sessionTokenTTL,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	a, err := s.accountRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		// Minimize risk for timing attacks
		s.passwordHasher.HashPassword(input.Password)
		return result, account.ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get account by email.",
			logging.Entry("err", err),
		)
		return result, err
	}
	if !s.passwordHasher.ValidatePassword(input.Password, a.PasswordHash) {
		return result, account.ErrInvalidCredentials
	}

	sessionToken, err := s.tokenCodec.Issue(a.ID, account.PurposeSession, s.sessionTokenTTL)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue session token for account.",
			logging.Entry("accountID", a.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Account successfully authenticated, session token issued.",
		logging.Entry("accountID", a.ID),
	)
	return Result{Token: sessionToken}, nil
}
