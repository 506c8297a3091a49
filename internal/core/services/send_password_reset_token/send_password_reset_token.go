package sendpasswordresettoken

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
	Email c.Email
}

type Result struct {
	Token account.Token
}

type service struct {
	log               logging.Logger
	accountRepository account.AccountRepository
	tokenCodec        account.TokenCodec
	resetTokenSender  account.ResetTokenSender
	resetTokenTTL     time.Duration
	now               func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	tokenCodec account.TokenCodec,
	resetTokenSender account.ResetTokenSender,
	resetTokenTTL time.Duration,
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
	if resetTokenSender == nil {
		panic(e.NewNilArgumentError("resetTokenSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		tokenCodec:        tokenCodec,
		resetTokenSender:  resetTokenSender,
		resetTokenTTL:     resetTokenTTL,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	a, err := s.accountRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.")
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get account for password reset.",
			logging.Entry("err", err),
		)
		return result, err
	}

	token, err := s.tokenCodec.Issue(a.ID, account.PurposePasswordReset, s.resetTokenTTL)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue password reset token.",
			logging.Entry("accountID", a.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// Overwrites a previously pending token, so only the latest issued
	// token can be consumed.
	err = s.accountRepository.SetPendingReset(ctx, a.ID, token, s.now().Add(s.resetTokenTTL))
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not persist pending password reset.",
			logging.Entry("accountID", a.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The persisted token is valid regardless of whether the notification
	// goes out, so delivery failures must not fail the request.
	if err := s.resetTokenSender.SendResetToken(ctx, a, token); err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("accountID", a.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(
		ctx,
		"Password reset token has been issued.",
		logging.Entry("accountID", a.ID),
	)
	return Result{Token: token}, nil
}
