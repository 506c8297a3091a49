package account

import (
	"context"
	"time"
)

type Token string

type TokenPurpose string

const (
	PurposeSession       TokenPurpose = "session"
	PurposePasswordReset TokenPurpose = "password-reset"
)

// TokenCodec issues and verifies signed, time-limited tokens bound to one
// account and one purpose. Tokens are opaque to callers.
type TokenCodec interface {
	Issue(accountID ID, purpose TokenPurpose, ttl time.Duration) (Token, error)
	Verify(token Token) (ID, TokenPurpose, error)
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type ResetTokenSender interface {
	SendResetToken(ctx context.Context, account Account, token Token) error
}
