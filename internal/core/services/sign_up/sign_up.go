package signup

import (
	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	uow "accounts/internal/core/domain/unit_of_work"
	"accounts/internal/core/services"
	"context"
	"errors"
	"time"
)

type Input struct {
	Username string
	Email    c.Email
	Password account.RawPassword
}

type Result struct {
	Account account.Account
}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher account.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher account.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not begin unit of work.",
			logging.Entry("username", input.Username),
			logging.Entry("err", err),
		)
		return result, err
	}
	defer uow.Rollback(ctx)

	createdAccount, err := uow.Accounts().Create(ctx, account.CreateAccountInput{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountAlreadyExists) {
		s.log.Info(
			ctx,
			"Account with the username or email already exists.",
			logging.Entry("username", input.Username),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new account.",
			logging.Entry("username", input.Username),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = uow.Commit(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not commit unit of work.",
			logging.Entry("username", input.Username),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New account has been created.", logging.Entry("accountID", createdAccount.ID))
	return Result{Account: createdAccount}, nil
}
