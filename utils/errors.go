package utils

import (
	"errors"
	"net/http"
)

// ErrorKind classifies an AppError into one of the four outcomes the
// API exposes: validation, not-found, conflict and internal.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindConflict
	KindInternal
)

// AppError is the only error shape controllers translate into HTTP
// responses. Store-level errors are wrapped at the service boundary so
// driver details never reach the caller.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind to its status code.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Code: "validation_failed", Message: message}
}

// NewDateFormatError is a validation error with its own code so callers
// can tell a malformed date apart from other input problems.
func NewDateFormatError(message string) *AppError {
	return &AppError{Kind: KindValidation, Code: "invalid_date", Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: "not_found", Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Code: "conflict", Message: message}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Code: "internal", Message: message, Err: err}
}

// AsAppError unwraps err into an *AppError, or wraps it as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("unexpected error", err)
}

func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
