package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/logger"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// maxBodyBytes bounds request bodies; a plan request is a few hundred bytes.
const maxBodyBytes = 1 << 20

var (
	validate   = validator.New()
	translator ut.Translator
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, translator)
}

// ErrResponse is the JSON body of every error answer.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText    string   `json:"status"`
	ErrorText     string   `json:"error,omitempty"`
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errResponse(status int, err error) *ErrResponse {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		ErrorText:      err.Error(),
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return errResponse(http.StatusBadRequest, err)
}

func ErrValidation(err error) render.Renderer {
	res := errResponse(http.StatusBadRequest, errors.New("validation failed"))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, v := range verrs {
			res.ErrValidation = append(res.ErrValidation, v.Translate(translator))
		}
	} else {
		res.ErrorText = err.Error()
	}
	return res
}

func ErrInternal() render.Renderer {
	return errResponse(http.StatusInternalServerError, errors.New("internal server error"))
}

// decodeJSON reads exactly one JSON object, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// bind decodes the body, runs the struct validation and then the binder's own checks.
func bind(w http.ResponseWriter, r *http.Request, v render.Binder) bool {
	if err := decodeJSON(r, v); err != nil {
		_ = render.Render(w, r, ErrInvalidRequest(err))
		return false
	}
	if err := validate.Struct(v); err != nil {
		_ = render.Render(w, r, ErrValidation(err))
		return false
	}
	if err := v.Bind(r); err != nil {
		_ = render.Render(w, r, ErrInvalidRequest(err))
		return false
	}
	return true
}

// renderServiceError maps domain errors to HTTP statuses. Anything unexpected is logged
// and hidden behind a generic 500.
func renderServiceError(w http.ResponseWriter, r *http.Request, log logger.Logger, op string, err error) {
	var res render.Renderer
	switch {
	case errors.Is(err, domain.ErrInvalidVehicle),
		errors.Is(err, domain.ErrInvalidSOC),
		errors.Is(err, domain.ErrInvalidLocation),
		errors.Is(err, domain.ErrInvalidSegmentLength),
		errors.Is(err, domain.ErrTooManySegments):
		res = errResponse(http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrPlanNotFound),
		errors.Is(err, domain.ErrVehicleNotFound):
		res = errResponse(http.StatusNotFound, err)
	case errors.Is(err, domain.ErrLocationNotFound):
		res = errResponse(http.StatusUnprocessableEntity, err)
	case errors.Is(err, context.DeadlineExceeded):
		res = errResponse(http.StatusGatewayTimeout, errors.New("upstream timeout"))
	default:
		log.Errorf("%s failed: %v", op, err)
		res = ErrInternal()
	}
	_ = render.Render(w, r, res)
}
