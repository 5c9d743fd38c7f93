package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error so the transport layer can map it to an HTTP
// status without inspecting messages.
type Kind int

const (
	KindInfra Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthenticated
	KindForbidden
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Message: msg} }

func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }

func Infra(msg string, err error) *Error { return &Error{Kind: KindInfra, Message: msg, Err: err} }

// KindOf reports the kind of err; anything unclassified is treated as an
// infrastructure failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInfra
}

// HTTPStatus maps an error to the status code the request boundary responds
// with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Message returns a client-safe message: classified errors expose their
// message, infrastructure failures are masked.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInfra {
		return e.Message
	}
	return "internal server error"
}
