// Package apperr provides structured errors with machine-readable codes
// shared by the store, services and HTTP handlers.
package apperr

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown           Code = "INTERNAL"
	CodeBadRequest        Code = "BAD_REQUEST"
	CodeNotFound          Code = "NOT_FOUND"
	CodeValidationFailed  Code = "VALIDATION_FAILED"
	CodeReferenceNotFound Code = "REFERENCE_NOT_FOUND"
	CodeConflict          Code = "CONFLICT"
)

// Error carries a code, an internal message, optional per-field detail and a
// wrapped cause.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus maps the code to an HTTP response status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidationFailed, CodeReferenceNotFound:
		return http.StatusUnprocessableEntity
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Validation creates a VALIDATION_FAILED error carrying field detail.
func Validation(fields map[string]string) *Error {
	return &Error{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Fields:  fields,
	}
}

// NotFound creates a NOT_FOUND error for a resource.
func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}
