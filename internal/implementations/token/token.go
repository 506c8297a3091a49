package token

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type claims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// JWTCodec signs tokens with a process-wide HS256 key. The account id goes
// into the subject claim, the purpose into a custom claim.
type JWTCodec struct {
	secretKey []byte
	now       func() time.Time
}

func NewJWTCodec(secretKey string, now func() time.Time) *JWTCodec {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &JWTCodec{secretKey: []byte(secretKey), now: now}
}

func (c *JWTCodec) Issue(
	accountID account.ID,
	purpose account.TokenPurpose,
	ttl time.Duration,
) (account.Token, error) {
	now := c.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(int64(accountID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Purpose: string(purpose),
	})
	signed, err := t.SignedString(c.secretKey)
	if err != nil {
		return account.Token(""), err
	}
	return account.Token(signed), nil
}

func (c *JWTCodec) Verify(token account.Token) (account.ID, account.TokenPurpose, error) {
	parsedClaims := &claims{}
	parsed, err := jwt.ParseWithClaims(
		string(token),
		parsedClaims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, account.ErrInvalidToken
			}
			return c.secretKey, nil
		},
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return account.ID(0), account.TokenPurpose(""), account.ErrInvalidToken
	}
	accountID, err := strconv.ParseInt(parsedClaims.Subject, 10, 64)
	if err != nil {
		return account.ID(0), account.TokenPurpose(""), account.ErrInvalidToken
	}
	return account.ID(accountID), account.TokenPurpose(parsedClaims.Purpose), nil
}
