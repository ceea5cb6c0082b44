package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed console error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// The console taxonomy. Validation errors are raised before any
// upstream call; SESSION_EXPIRED covers every upstream 401/403 and
// forces a return to the login screen.
var (
	ErrValidation          = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrSessionExpired      = New("SESSION_EXPIRED", http.StatusUnauthorized, "authentication failed, please log in again")
	ErrUnauthorized        = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden           = New("FORBIDDEN", http.StatusForbidden, "access denied, admin privileges required")
	ErrNotFound            = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrRequestInFlight     = New("REQUEST_IN_FLIGHT", http.StatusConflict, "a previous request is still pending")
	ErrSessionClosed       = New("SESSION_CLOSED", http.StatusConflict, "session is closed")
	ErrUpstream            = New("UPSTREAM_ERROR", http.StatusBadGateway, "upstream request failed")
	ErrUpstreamUnreachable = New("UPSTREAM_UNREACHABLE", http.StatusBadGateway, "upstream API is unreachable")
	ErrInternal            = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// IsSessionExpired reports whether err carries the SESSION_EXPIRED code.
func IsSessionExpired(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrSessionExpired.Code
	}
	return false
}
