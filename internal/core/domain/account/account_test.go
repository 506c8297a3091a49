package account

import (
	"testing"
	"time"

	c "accounts/internal/core/domain/common"

	"github.com/stretchr/testify/assert"
)

var NOW time.Time = time.Date(2023, 6, 6, 15, 30, 30, 0, time.UTC)

func TestValidate(t *testing.T) {
	cases := []struct {
		id      string
		account Account
		isValid bool
	}{
		{
			id:      "no-pending-reset",
			account: Account{ID: ID(1)},
			isValid: true,
		},
		{
			id: "token-and-expiry",
			account: Account{
				ID:               ID(1),
				ResetToken:       c.NewOptional(Token("test-token"), true),
				ResetTokenExpiry: c.NewOptional(NOW, true),
			},
			isValid: true,
		},
		{
			id: "token-without-expiry",
			account: Account{
				ID:         ID(1),
				ResetToken: c.NewOptional(Token("test-token"), true),
			},
			isValid: false,
		},
		{
			id: "expiry-without-token",
			account: Account{
				ID:               ID(1),
				ResetTokenExpiry: c.NewOptional(NOW, true),
			},
			isValid: false,
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			err := testcase.account.Validate()
			if testcase.isValid {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
			}
		})
	}
}

func TestHasPendingReset(t *testing.T) {
	cases := []struct {
		id       string
		account  Account
		expected bool
	}{
		{
			id:       "no-token",
			account:  Account{ID: ID(1)},
			expected: false,
		},
		{
			id: "token-not-expired",
			account: Account{
				ID:               ID(1),
				ResetToken:       c.NewOptional(Token("test-token"), true),
				ResetTokenExpiry: c.NewOptional(NOW.Add(time.Minute), true),
			},
			expected: true,
		},
		{
			id: "token-expired",
			account: Account{
				ID:               ID(1),
				ResetToken:       c.NewOptional(Token("test-token"), true),
				ResetTokenExpiry: c.NewOptional(NOW.Add(-time.Minute), true),
			},
			expected: false,
		},
		{
			id: "token-expires-right-now",
			account: Account{
				ID:               ID(1),
				ResetToken:       c.NewOptional(Token("test-token"), true),
				ResetTokenExpiry: c.NewOptional(NOW, true),
			},
			expected: false,
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			assert.Equal(t, testcase.expected, testcase.account.HasPendingReset(NOW))
		})
	}
}

func TestPasswordValuesDoNotLeak(t *testing.T) {
	assert.Equal(t, "***", PasswordHash("secret-hash").String())
	assert.Equal(t, "***", RawPassword("secret-password").String())
}
