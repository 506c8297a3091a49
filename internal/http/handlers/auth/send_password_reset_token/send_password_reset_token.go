package sendpasswordresettoken

import (
	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/services"
	sendpasswordresettoken "accounts/internal/core/services/send_password_reset_token"
	"accounts/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service    services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	isTestMode bool
}

func New(
	service services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		sendpasswordresettoken.Input{Email: c.NewEmail(input.Email)},
	)
	// An unknown email gets the same response as a known one, otherwise
	// this endpoint could be used to enumerate registered accounts.
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		response.Render(rw, struct{}{}, http.StatusOK)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	if h.isTestMode {
		rw.Header().Set("x-test-reset-token", string(result.Token))
	}
	response.Render(rw, struct{}{}, http.StatusOK)
}
