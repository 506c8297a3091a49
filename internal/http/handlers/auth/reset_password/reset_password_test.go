package resetpassword

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"accounts/internal/core/domain/account"
	service "accounts/internal/core/services/reset_password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (service.Result, error) {
	s.input = &input
	return service.Result{}, s.err
}

func TestResetPasswordSuccess(t *testing.T) {
	stub := &stubService{}
	handler := New(stub)

	rw := httptest.NewRecorder()
	body := `{"token": "test-token", "password": "new-password"}`
	handler.ServeHTTP(rw, httptest.NewRequest(http.MethodPut, "/auth/password_reset", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rw.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, account.Token("test-token"), stub.input.Token)
	assert.Equal(t, account.RawPassword("new-password"), stub.input.NewPassword)
}

func TestResetPasswordValidationErrors(t *testing.T) {
	cases := []struct {
		id   string
		body string
	}{
		{id: "empty", body: `{}`},
		{id: "no-token", body: `{"password": "new-password"}`},
		{id: "no-password", body: `{"token": "test-token"}`},
		{id: "short-password", body: `{"token": "test-token", "password": "pw"}`},
		{id: "not-json", body: `not json`},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{}
			handler := New(stub)

			rw := httptest.NewRecorder()
			handler.ServeHTTP(
				rw,
				httptest.NewRequest(http.MethodPut, "/auth/password_reset", strings.NewReader(testcase.body)),
			)

			assert.Equal(t, http.StatusBadRequest, rw.Code)
			assert.Nil(t, stub.input)
		})
	}
}

func TestResetPasswordInvalidToken(t *testing.T) {
	stub := &stubService{err: account.ErrInvalidResetToken}
	handler := New(stub)

	rw := httptest.NewRecorder()
	body := `{"token": "stale-token", "password": "new-password"}`
	handler.ServeHTTP(rw, httptest.NewRequest(http.MethodPut, "/auth/password_reset", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnprocessableEntity, rw.Code)
}

func TestResetPasswordInternalError(t *testing.T) {
	stub := &stubService{err: context.DeadlineExceeded}
	handler := New(stub)

	rw := httptest.NewRecorder()
	body := `{"token": "test-token", "password": "new-password"}`
	handler.ServeHTTP(rw, httptest.NewRequest(http.MethodPut, "/auth/password_reset", strings.NewReader(body)))

	assert.Equal(t, http.StatusInternalServerError, rw.Code)
}
