package apiv1

import (
	"errors"
	"net/http"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

// Error codes carried in ErrorBody.
const (
	CodeForbidden           = "FORBIDDEN"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeDuplicateInvitation = "DUPLICATE_INVITATION"
	CodeNotFound            = "NOT_FOUND"
	CodeValidation          = "VALIDATION"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeConflict            = "CONFLICT"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternal            = "INTERNAL"
)

type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CodeFor maps a domain error to its wire code and HTTP status.
func CodeFor(err error) (string, int) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return CodeValidation, http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return CodeUnauthenticated, http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return CodeForbidden, http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return CodeNotFound, http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return CodeInvalidTransition, http.StatusConflict
	case errors.Is(err, domain.ErrDuplicateInvitation):
		return CodeDuplicateInvitation, http.StatusConflict
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		return CodeConflict, http.StatusConflict
	default:
		return CodeInternal, http.StatusInternalServerError
	}
}

// Sentinel maps a wire code back to the domain sentinel. Unknown codes and
// INTERNAL map to nil.
func Sentinel(code string) error {
	switch code {
	case CodeValidation:
		return domain.ErrValidation
	case CodeUnauthenticated:
		return domain.ErrUnauthorized
	case CodeForbidden:
		return domain.ErrForbidden
	case CodeNotFound:
		return domain.ErrNotFound
	case CodeInvalidTransition:
		return domain.ErrInvalidTransition
	case CodeDuplicateInvitation:
		return domain.ErrDuplicateInvitation
	case CodeConflict:
		return domain.ErrConflict
	default:
		return nil
	}
}
