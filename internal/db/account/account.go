package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"

type PgxAccountRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxAccountRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxAccountRepository{db: db}
}

func (r *PgxAccountRepository) Create(
	ctx context.Context,
	input account.CreateAccountInput,
) (a account.Account, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO account (username, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, username, email, password_hash, reset_token, reset_token_expiry, created_at`,
		input.Username,
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	a, err = scanAccount(row)

	// Do not report which of the unique columns collided.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE {
		return a, account.ErrAccountAlreadyExists
	}
	if err != nil {
		return a, err
	}
	return a, a.Validate()
}

func (r *PgxAccountRepository) GetByID(ctx context.Context, id account.ID) (a account.Account, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, reset_token, reset_token_expiry, created_at
		 FROM account WHERE id = $1`,
		int64(id),
	)
	a, err = scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	if err != nil {
		return a, err
	}
	return a, a.Validate()
}

func (r *PgxAccountRepository) GetByEmail(ctx context.Context, email c.Email) (a account.Account, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, reset_token, reset_token_expiry, created_at
		 FROM account WHERE email = $1`,
		string(email),
	)
	a, err = scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	if err != nil {
		return a, err
	}
	return a, a.Validate()
}

func (r *PgxAccountRepository) SetPendingReset(
	ctx context.Context,
	id account.ID,
	token account.Token,
	expiresAt time.Time,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE account SET reset_token = $2, reset_token_expiry = $3 WHERE id = $1`,
		int64(id),
		string(token),
		expiresAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return account.ErrAccountDoesNotExist
	}
	return nil
}

func (r *PgxAccountRepository) ConsumeReset(
	ctx context.Context,
	id account.ID,
	token account.Token,
	newHash account.PasswordHash,
	at time.Time,
) error {
	// Conditional update keyed by (id, reset_token): of two concurrent
	// confirms with the same token, the second one matches zero rows.
	tag, err := r.db.Exec(
		ctx,
		`UPDATE account
		 SET password_hash = $3, reset_token = NULL, reset_token_expiry = NULL
		 WHERE id = $1 AND reset_token = $2 AND reset_token_expiry > $4`,
		int64(id),
		string(token),
		string(newHash),
		at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return account.ErrInvalidResetToken
	}
	return nil
}

func scanAccount(row pgx.Row) (a account.Account, err error) {
	var (
		id               int64
		username         string
		email            string
		passwordHash     string
		resetToken       sql.NullString
		resetTokenExpiry sql.NullTime
		createdAt        time.Time
	)
	err = row.Scan(&id, &username, &email, &passwordHash, &resetToken, &resetTokenExpiry, &createdAt)
	if err != nil {
		return a, err
	}
	return account.Account{
		ID:               account.ID(id),
		Username:         username,
		Email:            c.Email(email),
		PasswordHash:     account.PasswordHash(passwordHash),
		ResetToken:       c.NewOptional(account.Token(resetToken.String), resetToken.Valid),
		ResetTokenExpiry: c.NewOptional(resetTokenExpiry.Time, resetTokenExpiry.Valid),
		CreatedAt:        createdAt,
	}, nil
}
