package resetpassword

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	"accounts/internal/core/services"
	"context"
	"errors"
	"time"
)

type Input struct {
	Token       account.Token
	NewPassword account.RawPassword
}

type Result struct{}

type service struct {
	log               logging.Logger
	accountRepository account.AccountRepository
	tokenCodec        account.TokenCodec
	passwordHasher    account.PasswordHasher
	now               func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	tokenCodec account.TokenCodec,
	passwordHasher account.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if tokenCodec == nil {
		panic(e.NewNilArgumentError("tokenCodec"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		tokenCodec:        tokenCodec,
		passwordHasher:    passwordHasher,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	accountID, purpose, err := s.tokenCodec.Verify(input.Token)
	if err != nil {
		return result, account.ErrInvalidResetToken
	}
	if purpose != account.PurposePasswordReset {
		return result, account.ErrInvalidResetToken
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("err", err))
		return result, err
	}

	// Single conditional update: the signature may still verify, but the
	// stored token must match too, so a consumed or superseded token finds
	// no row. Exactly one of two concurrent confirms can succeed.
	err = s.accountRepository.ConsumeReset(ctx, accountID, input.Token, newPasswordHash, s.now())
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrInvalidResetToken) {
		s.log.Info(
			ctx,
			"Password reset token did not match a pending reset.",
			logging.Entry("accountID", accountID),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not consume password reset token.",
			logging.Entry("accountID", accountID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("accountID", accountID),
	)
	return result, nil
}
