package apperror

import (
	"fmt"
	"time"
)

// Kind groups codes into the four error families consumed by handlers.
type Kind string

const (
	KindGame        Kind = "game"
	KindPersistence Kind = "persistence"
	KindValidation  Kind = "validation"
	KindNetwork     Kind = "network"
)

// Error is the typed error carried across the core. The zero value is not
// useful; construct through the NewXxx helpers so each family gets its
// default severity.
type Error struct {
	Kind        Kind
	Code        Code
	Message     string
	Severity    Severity
	Context     map[string]any
	Cause       error
	Informative bool
	Timestamp   time.Time

	// Field is set for validation errors only.
	Field string

	// StatusCode and Endpoint are set for network errors only.
	StatusCode int
	Endpoint   string
}

// Error implements the error interface.
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

// WithContext returns the error with key set in its context map.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithCause returns the error wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// UserFacing marks the error as informative, meaning its message is meant
// to be surfaced to the player rather than only logged.
func (e *Error) UserFacing() *Error {
	e.Informative = true
	return e
}

func newError(kind Kind, code Code, severity Severity, message string) *Error {
	return &Error{
		Kind:      kind,
		Code:      code,
		Message:   message,
		Severity:  severity,
		Timestamp: time.Now().UTC(),
	}
}

// NewGameError creates a game error. Default severity is warning: illegal
// transitions are expected player-driven conditions, not faults.
func NewGameError(code Code, message string) *Error {
	return newError(KindGame, code, SeverityWarning, message)
}

// NewGameErrorf creates a game error with a formatted message.
func NewGameErrorf(code Code, format string, args ...any) *Error {
	return NewGameError(code, fmt.Sprintf(format, args...))
}

// NewPersistenceError creates a persistence error with severity error.
func NewPersistenceError(code Code, message string) *Error {
	return newError(KindPersistence, code, SeverityError, message)
}

// NewValidationError creates a validation error naming the offending field.
func NewValidationError(code Code, field, message string) *Error {
	err := newError(KindValidation, code, SeverityWarning, message)
	err.Field = field
	return err
}

// NewValidationErrorf creates a validation error with a formatted message.
func NewValidationErrorf(code Code, field, format string, args ...any) *Error {
	return NewValidationError(code, field, fmt.Sprintf(format, args...))
}

// NewNetworkError creates a network error carrying the HTTP status code and
// endpoint of the failed fetch. A status of 0 means the request never
// completed.
func NewNetworkError(code Code, statusCode int, endpoint, message string) *Error {
	err := newError(KindNetwork, code, SeverityError, message)
	err.StatusCode = statusCode
	err.Endpoint = endpoint
	return err
}

// Normalize converts any recovered or returned value into a typed *Error.
// Typed errors pass through unchanged; native errors are wrapped as
// unknown-code game-family errors preserving the cause; strings and
// arbitrary values are stringified.
func Normalize(v any) *Error {
	switch err := v.(type) {
	case nil:
		return newError(KindGame, CodeUnknown, SeverityError, "unknown error")
	case *Error:
		return err
	case error:
		norm := newError(KindGame, CodeUnknown, SeverityError, err.Error())
		norm.Cause = err
		return norm
	case string:
		return newError(KindGame, CodeUnknown, SeverityError, err)
	default:
		return newError(KindGame, CodeUnknown, SeverityError, fmt.Sprintf("%v", err))
	}
}
