package account

import (
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"fmt"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type Account struct {
	ID               ID
	Username         string
	Email            c.Email
	PasswordHash     PasswordHash
	ResetToken       c.Optional[Token]
	ResetTokenExpiry c.Optional[time.Time]
	CreatedAt        time.Time
}

// ResetToken and ResetTokenExpiry must always be set or cleared together:
// a present token is exactly one authorization to change the password.
func (a *Account) Validate() error {
	if a.ResetToken.IsPresent != a.ResetTokenExpiry.IsPresent {
		return e.NewInvalidStateError(
			fmt.Sprintf("reset token and its expiry are not set together for account %d", a.ID),
		)
	}
	return nil
}

func (a *Account) HasPendingReset(now time.Time) bool {
	return a.ResetToken.IsPresent && a.ResetTokenExpiry.IsPresent && a.ResetTokenExpiry.Value.After(now)
}
