package account

import (
	c "accounts/internal/core/domain/common"
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"
)

type FakeAccountRepository struct {
	Accounts    []Account
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeAccountRepository() *FakeAccountRepository {
	return &FakeAccountRepository{Accounts: make([]Account, 0, 10)}
}

func (r *FakeAccountRepository) Create(ctx context.Context, input CreateAccountInput) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not create account %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, a := range r.Accounts {
		if a.Username == input.Username || a.Email == input.Email {
			return a, ErrAccountAlreadyExists
		}
		maxID = a.ID
	}
	a = Account{
		ID:           maxID + 1,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Accounts = append(r.Accounts, a)
	return a, nil
}

func (r *FakeAccountRepository) GetByID(ctx context.Context, id ID) (a Account, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeAccountRepository) GetByEmail(ctx context.Context, email c.Email) (a Account, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeAccountRepository) SetPendingReset(
	ctx context.Context,
	id ID,
	token Token,
	expiresAt time.Time,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not set pending reset for account %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, a := range r.Accounts {
		if a.ID == id {
			r.Accounts[ix].ResetToken = c.NewOptional(token, true)
			r.Accounts[ix].ResetTokenExpiry = c.NewOptional(expiresAt, true)
			return nil
		}
	}
	return ErrAccountDoesNotExist
}

func (r *FakeAccountRepository) ConsumeReset(
	ctx context.Context,
	id ID,
	token Token,
	newHash PasswordHash,
	at time.Time,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not consume reset for account %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, a := range r.Accounts {
		if a.ID != id {
			continue
		}
		if !a.ResetToken.IsPresent || a.ResetToken.Value != token {
			break
		}
		if !a.ResetTokenExpiry.IsPresent || !a.ResetTokenExpiry.Value.After(at) {
			break
		}
		r.Accounts[ix].PasswordHash = newHash
		r.Accounts[ix].ResetToken = c.NewOptional(Token(""), false)
		r.Accounts[ix].ResetTokenExpiry = c.NewOptional(time.Time{}, false)
		return nil
	}
	return ErrInvalidResetToken
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type issuedToken struct {
	accountID ID
	purpose   TokenPurpose
	expiresAt time.Time
}

type FakeTokenCodec struct {
	Now         func() time.Time
	ReturnError bool
	issued      map[Token]issuedToken
	seq         int
	lock        sync.Mutex
}

func NewFakeTokenCodec(now func() time.Time) *FakeTokenCodec {
	return &FakeTokenCodec{Now: now, issued: make(map[Token]issuedToken)}
}

func (c *FakeTokenCodec) Issue(accountID ID, purpose TokenPurpose, ttl time.Duration) (Token, error) {
	if c.ReturnError {
		return Token(""), fmt.Errorf("could not issue token for account %d", accountID)
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.seq++
	token := Token(fmt.Sprintf("test-token-%d", c.seq))
	c.issued[token] = issuedToken{
		accountID: accountID,
		purpose:   purpose,
		expiresAt: c.Now().Add(ttl),
	}
	return token, nil
}

func (c *FakeTokenCodec) Verify(token Token) (ID, TokenPurpose, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	issued, ok := c.issued[token]
	if !ok {
		return ID(0), TokenPurpose(""), ErrInvalidToken
	}
	if !issued.expiresAt.After(c.Now()) {
		return ID(0), TokenPurpose(""), ErrInvalidToken
	}
	return issued.accountID, issued.purpose, nil
}

func (c *FakeTokenCodec) LastIssued() Token {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.seq == 0 {
		panic("no tokens issued")
	}
	return Token(fmt.Sprintf("test-token-%d", c.seq))
}

type FakeResetTokenSender struct {
	Sent        []Token
	SentTo      []Account
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeResetTokenSender() *FakeResetTokenSender {
	return &FakeResetTokenSender{}
}

func (s *FakeResetTokenSender) SendResetToken(ctx context.Context, a Account, token Token) error {
	if s.ReturnError {
		return fmt.Errorf("could not send reset token to account %d", a.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, a)
	return nil
}

func (s *FakeResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}
