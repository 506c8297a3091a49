package uow

import (
	"accounts/internal/core/domain/account"
	uow "accounts/internal/core/domain/unit_of_work"
	dbaccount "accounts/internal/db/account"
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type pgxUnitOfWorkContext struct {
	tx pgx.Tx
}

func newPgxUnitOfWorkContext(tx pgx.Tx) *pgxUnitOfWorkContext {
	return &pgxUnitOfWorkContext{tx: tx}
}

func (c *pgxUnitOfWorkContext) Commit(ctx context.Context) error {
	return c.tx.Commit(ctx)
}

func (c *pgxUnitOfWorkContext) Rollback(ctx context.Context) error {
	return c.tx.Rollback(ctx)
}

func (c *pgxUnitOfWorkContext) Accounts() account.AccountRepository {
	return dbaccount.NewPgxRepository(c.tx)
}

type PgxUnitOfWork struct {
	db *pgxpool.Pool
}

func NewPgxUnitOfWork(db *pgxpool.Pool) *PgxUnitOfWork {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUnitOfWork{db: db}
}

func (u *PgxUnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return newPgxUnitOfWorkContext(tx), nil
}
