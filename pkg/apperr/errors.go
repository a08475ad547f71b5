// Package apperr defines the coded domain error shared by every feature package.
package apperr

import "errors"

// Code classifies an error for transport mapping.
type Code string

const (
	CodeValidation      Code = "VALIDATION"
	CodeNotFound        Code = "NOT_FOUND"
	CodeStateConflict   Code = "STATE_CONFLICT"
	CodeUpstream        Code = "UPSTREAM"
	CodeUpstreamTimeout Code = "UPSTREAM_TIMEOUT"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeInternal        Code = "INTERNAL"
)

// Retryable reports whether a caller may retry a request that failed with this code.
func (c Code) Retryable() bool {
	return c == CodeUnavailable || c == CodeUpstreamTimeout
}

// Error is a domain error carrying a machine-readable code.
type Error struct {
	Code    Code
	Message string
	Cause   error

	kind bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the kind sentinel for e's code.
// Feature sentinels built with New only match themselves.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.kind && e.Code == t.Code
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Kind sentinels match any error carrying their code.
var (
	ErrValidation      = newKind(CodeValidation, "validation failed")
	ErrNotFound        = newKind(CodeNotFound, "not found")
	ErrStateConflict   = newKind(CodeStateConflict, "state conflict")
	ErrUpstream        = newKind(CodeUpstream, "upstream data error")
	ErrUpstreamTimeout = newKind(CodeUpstreamTimeout, "upstream timeout")
	ErrUnavailable     = newKind(CodeUnavailable, "storage unavailable")
)

func newKind(code Code, message string) *Error {
	return &Error{Code: code, Message: message, kind: true}
}

// CodeOf extracts the code of the first *Error in err's chain.
// Errors without a code are reported as CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the client-facing message of the first *Error in err's chain.
// The cause is not included so driver details never leak to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
