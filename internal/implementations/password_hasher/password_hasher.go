package passwordhasher

import (
	"accounts/internal/core/domain/account"

	"golang.org/x/crypto/bcrypt"
)

type Bcrypt struct {
	secret string
	cost   int
}

func NewBcrypt(secret string, cost int) *Bcrypt {
	return &Bcrypt{secret: secret, cost: cost}
}

func (h *Bcrypt) HashPassword(password account.RawPassword) (hash account.PasswordHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte(string(password)+h.secret), h.cost)
	if err != nil {
		return hash, err
	}
	return account.PasswordHash(bcryptHash), nil
}

// ValidatePassword returns false for a malformed hash instead of failing.
func (h *Bcrypt) ValidatePassword(password account.RawPassword, hash account.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(string(password)+h.secret))
	return err == nil
}
