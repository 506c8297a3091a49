package account

import (
	"errors"
)

var (
	ErrAccountAlreadyExists = errors.New("account already exists")
	ErrAccountDoesNotExist  = errors.New("account does not exist")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidResetToken    = errors.New("invalid password reset token")
)
