package respond

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/formkit/pkg/backend"
	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Body is the envelope of every formkit API response.
type Body struct {
	Code  string       `json:"code,omitempty"`
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request. Details maps a control path to
// its error codes for validation failures.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// JSON writes data with status 200 and code "ok".
func JSON(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, Body{Code: "ok", Data: data})
}

// Error writes err with the status derived from its kind:
// binding errors 400, validation errors 422, backend failures 502,
// timeouts 504, HTTPError its own code and anything else 500.
func Error(w http.ResponseWriter, err error) {
	status, detail := classify(err)
	write(w, status, Body{Code: detail.Code, Error: detail})
}

func classify(err error) (int, *ErrorDetail) {
	var httpErr HTTPError
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		d := &ErrorDetail{Code: "validation_error", Message: "validation failed", Details: map[string][]string{}}
		for _, e := range verrs {
			d.Details[e.Field] = append(d.Details[e.Field], e.TranslationKey)
		}
		return http.StatusUnprocessableEntity, d
	case errors.As(err, &httpErr):
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return http.StatusUnsupportedMediaType, &ErrorDetail{Code: "unsupported_media_type", Message: err.Error()}
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParseForm):
		return http.StatusBadRequest, &ErrorDetail{Code: ErrBadRequest.Key, Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, &ErrorDetail{Code: ErrGatewayTimeout.Key, Message: err.Error()}
	case errors.Is(err, backend.ErrFetchConfig), errors.Is(err, backend.ErrFetchCounter), errors.Is(err, backend.ErrCheckUniqueness):
		return http.StatusBadGateway, &ErrorDetail{Code: ErrBadGateway.Key, Message: err.Error()}
	default:
		return http.StatusInternalServerError, &ErrorDetail{Code: ErrInternalServerError.Key, Message: http.StatusText(http.StatusInternalServerError)}
	}
}

func write(w http.ResponseWriter, status int, body Body) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
