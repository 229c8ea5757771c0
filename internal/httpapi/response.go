package httpapi

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/alexanderramin/shiftclock/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
)

// Envelope wraps every response body.
type Envelope struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func success(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{OK: true, Data: data})
}

func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{OK: false, Error: &ErrorBody{Code: code, Message: message}})
}

// writeError maps service errors onto HTTP statuses. Unknown errors are
// logged by the request logger and reported without detail.
func writeError(c *gin.Context, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "unexpected error"
	}
	fail(c, status, code, msg)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, CodeInvalidTransition
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, service.ErrLocaleNotAllowed):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, domain.ErrUnknownProduct):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, domain.ErrUnknownLocale),
		errors.Is(err, domain.ErrUnknownAction),
		errors.Is(err, domain.ErrInvalidUser),
		errors.Is(err, domain.ErrInvalidSession),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrInvalidProduct):
		return http.StatusBadRequest, CodeInvalidInput
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
