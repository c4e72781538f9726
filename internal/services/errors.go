package services

import "errors"

// Sentinel kinds for business errors. Handlers map these to HTTP statuses;
// the wrapped message is safe to show to the client.
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// Error ties a client-safe message to one of the sentinel kinds.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }
func (e *Error) Unwrap() error { return e.kind }

func NotFound(msg string) error     { return &Error{kind: ErrNotFound, message: msg} }
func BadRequest(msg string) error   { return &Error{kind: ErrBadRequest, message: msg} }
func Unauthorized(msg string) error { return &Error{kind: ErrUnauthorized, message: msg} }
func Forbidden(msg string) error    { return &Error{kind: ErrForbidden, message: msg} }
func Conflict(msg string) error     { return &Error{kind: ErrConflict, message: msg} }
