package services

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindAuth
	KindForbidden
	KindNotFound
)

// Error is a service-level failure the HTTP layer can translate directly
// into a status code and message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict, KindAuth:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func ValidationError(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func ConflictError(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }
func AuthError(msg string) error       { return &Error{Kind: KindAuth, Message: msg} }
func ForbiddenError(msg string) error  { return &Error{Kind: KindForbidden, Message: msg} }
func NotFoundError(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }

// AsError unwraps err into a *Error when it carries a kind.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
