package loginwithemail

import (
	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/services"
	loginwithemail "accounts/internal/core/services/log_in_with_email"
	"accounts/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[loginwithemail.Input, loginwithemail.Result]
}

func New(service services.Service[loginwithemail.Input, loginwithemail.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Result struct {
	AccessToken string `json:"accessToken"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 256)),
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
		loginwithemail.Input{
			Email:    c.NewEmail(input.Email),
			Password: account.RawPassword(input.Password),
		},
	)
	// Unknown email and wrong password produce the same response.
	if errors.Is(err, account.ErrInvalidCredentials) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, Result{AccessToken: string(result.Token)}, http.StatusOK)
}
