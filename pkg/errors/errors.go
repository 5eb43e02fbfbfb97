package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is the sentinel for an absent record. All read paths return
// it (possibly wrapped) instead of an error type of their own, so callers
// test with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	// ErrorTypeMalformed marks stored bytes that no longer deserialize into
	// the expected shape (data corruption or schema drift).
	ErrorTypeMalformed    ErrorType = "MALFORMED"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeInternal     ErrorType = "INTERNAL"
	// ErrorTypeUnavailable marks a failed call to the underlying store.
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Cause      error     `json:"-"`
	HTTPStatus int       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match the not-found sentinel through an AppError.
func (e *AppError) Is(target error) bool {
	return target == ErrNotFound && e.Type == ErrorTypeNotFound
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error for the given resource
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewMalformedError wraps a deserialization failure of stored bytes
func NewMalformedError(resource string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformed,
		Message:    fmt.Sprintf("stored %s is malformed", resource),
		Cause:      cause,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewUnavailableError wraps a failed underlying store call
func NewUnavailableError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Message:    "object store unavailable",
		Cause:      cause,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		Cause:      cause,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// IsNotFound reports whether err is the not-found sentinel or wraps it.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsMalformed reports whether err marks a corrupt stored record.
func IsMalformed(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ErrorTypeMalformed
}

// HTTPStatus maps an error to a response status, defaulting to 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
