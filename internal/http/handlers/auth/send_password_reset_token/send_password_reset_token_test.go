package sendpasswordresettoken

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	service "accounts/internal/core/services/send_password_reset_token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	result service.Result
	err    error
	input  *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (service.Result, error) {
	s.input = &input
	if s.err != nil {
		return service.Result{}, s.err
	}
	return s.result, nil
}

func TestSendResetTokenSuccess(t *testing.T) {
	stub := &stubService{result: service.Result{Token: account.Token("test-token")}}
	handler := New(stub, false)

	rw := httptest.NewRecorder()
	body := `{"email": "alice@x.com"}`
	handler.ServeHTTP(
		rw,
		httptest.NewRequest(http.MethodPost, "/auth/password_reset/token", strings.NewReader(body)),
	)

	require.Equal(t, http.StatusOK, rw.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, c.Email("alice@x.com"), stub.input.Email)
	assert.Equal(t, "", rw.Header().Get("x-test-reset-token"))
}

// Responses for known and unknown emails must be identical, otherwise the
// endpoint can be used to enumerate accounts.
func TestSendResetTokenUnknownEmailSameResponse(t *testing.T) {
	knownStub := &stubService{result: service.Result{Token: account.Token("test-token")}}
	unknownStub := &stubService{err: account.ErrAccountDoesNotExist}

	var codes []int
	var bodies []string
	for _, stub := range []*stubService{knownStub, unknownStub} {
		handler := New(stub, false)
		rw := httptest.NewRecorder()
		body := `{"email": "alice@x.com"}`
		handler.ServeHTTP(
			rw,
			httptest.NewRequest(http.MethodPost, "/auth/password_reset/token", strings.NewReader(body)),
		)
		codes = append(codes, rw.Code)
		bodies = append(bodies, rw.Body.String())
	}

	assert.Equal(t, codes[0], codes[1])
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, http.StatusOK, codes[0])
}

func TestSendResetTokenTestModeExposesToken(t *testing.T) {
	stub := &stubService{result: service.Result{Token: account.Token("test-token")}}
	handler := New(stub, true)

	rw := httptest.NewRecorder()
	body := `{"email": "alice@x.com"}`
	handler.ServeHTTP(
		rw,
		httptest.NewRequest(http.MethodPost, "/auth/password_reset/token", strings.NewReader(body)),
	)

	require.Equal(t, http.StatusOK, rw.Code)
	assert.Equal(t, "test-token", rw.Header().Get("x-test-reset-token"))
}

func TestSendResetTokenValidationErrors(t *testing.T) {
	cases := []struct {
		id   string
		body string
	}{
		{id: "empty", body: `{}`},
		{id: "bad-email", body: `{"email": "not-an-email"}`},
		{id: "not-json", body: `not json`},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{}
			handler := New(stub, false)

			rw := httptest.NewRecorder()
			handler.ServeHTTP(
				rw,
				httptest.NewRequest(http.MethodPost, "/auth/password_reset/token", strings.NewReader(testcase.body)),
			)

			assert.Equal(t, http.StatusBadRequest, rw.Code)
			assert.Nil(t, stub.input)
		})
	}
}

func TestSendResetTokenInternalError(t *testing.T) {
	stub := &stubService{err: context.DeadlineExceeded}
	handler := New(stub, false)

	rw := httptest.NewRecorder()
	body := `{"email": "alice@x.com"}`
	handler.ServeHTTP(
		rw,
		httptest.NewRequest(http.MethodPost, "/auth/password_reset/token", strings.NewReader(body)),
	)

	assert.Equal(t, http.StatusInternalServerError, rw.Code)
}
