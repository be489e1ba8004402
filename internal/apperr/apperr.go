// Package apperr defines the error taxonomy shared by services and handlers.
// Services return *Error values; the HTTP error handler maps them to a status
// code and a static message without leaking the wrapped cause.
package apperr

import (
	"net/http"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindAuth        Kind = "AUTH"
	KindNotFound    Kind = "NOT_FOUND"
	KindConflict    Kind = "CONFLICT"
	KindPersistence Kind = "PERSISTENCE"
)

// AppError is implemented by every error a handler can translate to a response.
type AppError interface {
	error
	HTTPCode() int
	Kind() Kind
	Message() string
}

type Error struct {
	kind    Kind
	message string
	cause   error
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation  = &Error{kind: KindValidation}
	ErrAuth        = &Error{kind: KindAuth}
	ErrNotFound    = &Error{kind: KindNotFound}
	ErrConflict    = &Error{kind: KindConflict}
	ErrPersistence = &Error{kind: KindPersistence}
)

func Validation(msg string) *Error { return &Error{kind: KindValidation, message: msg} }

func Auth(msg string) *Error { return &Error{kind: KindAuth, message: msg} }

func NotFound(msg string) *Error { return &Error{kind: KindNotFound, message: msg} }

func Conflict(msg string) *Error { return &Error{kind: KindConflict, message: msg} }

// Persistence wraps a store failure. The cause keeps its stack trace for logs
// but never reaches the response body.
func Persistence(msg string, cause error) *Error {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &Error{kind: KindPersistence, message: msg, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// for every not-found error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.kind == e.kind && (t.message == "" || t.message == e.message)
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Message() string { return e.message }

func (e *Error) HTTPCode() int {
	switch e.kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// From extracts the AppError carried by err, if any.
func From(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
