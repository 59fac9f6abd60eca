// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate entry")
	ErrValidation   = errors.New("validation failed")
	ErrPrecondition = errors.New("precondition failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldErrors carries per-field validation messages so a UI can render
// them inline next to the offending inputs.
type FieldErrors struct {
	Detail string
	Fields map[string]string
}

// Error implements the error interface.
func (e *FieldErrors) Error() string {
	return e.Detail
}

// Unwrap classifies field errors as validation failures.
func (e *FieldErrors) Unwrap() error {
	return ErrValidation
}

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	var fieldErrs *FieldErrors
	if errors.As(err, &fieldErrs) {
		FieldProblem(w, http.StatusBadRequest, "Validation Failed", fieldErrs.Detail, fieldErrs.Fields)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrPrecondition):
		Problem(w, http.StatusBadRequest, "Precondition Failed", err.Error())
	case errors.Is(err, ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
