package account

import (
	c "accounts/internal/core/domain/common"
	"context"
	"time"
)

type CreateAccountInput struct {
	Username     string
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type AccountRepository interface {
	// Create returns ErrAccountAlreadyExists if the username or the email
	// is already taken.
	Create(ctx context.Context, input CreateAccountInput) (Account, error)
	GetByID(ctx context.Context, id ID) (Account, error)
	GetByEmail(ctx context.Context, email c.Email) (Account, error)
	// SetPendingReset overwrites any previously pending reset token, so the
	// latest issued token is the only one the store will match.
	SetPendingReset(ctx context.Context, id ID, token Token, expiresAt time.Time) error
	// ConsumeReset sets the new password hash and clears the pending reset
	// in a single conditional update keyed by (id, token). It returns
	// ErrInvalidResetToken if no row matches, i.e. the token is unknown,
	// already consumed, superseded or expired as of the given time.
	ConsumeReset(ctx context.Context, id ID, token Token, newHash PasswordHash, at time.Time) error
}
