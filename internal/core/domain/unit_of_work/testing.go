package uow

import (
	"accounts/internal/core/domain/account"
	"context"
	"fmt"
)

type FakeUnitOfWorkContext struct {
	AccountRepository *account.FakeAccountRepository
	WasRollbackCalled bool
	WasCommitCalled   bool
}

func NewFakeUnitOfWorkContext(accountRepository *account.FakeAccountRepository) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{AccountRepository: accountRepository}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Accounts() account.AccountRepository {
	return c.AccountRepository
}

type FakeUnitOfWork struct {
	Context     *FakeUnitOfWorkContext
	ReturnError bool
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(account.NewFakeAccountRepository()),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.ReturnError {
		return nil, fmt.Errorf("could not begin unit of work")
	}
	return u.Context, nil
}
