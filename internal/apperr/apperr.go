// Package apperr defines the closed error taxonomy shared by repos and
// services. HTTP status mapping happens only at the API boundary.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindAuth
	KindForbidden
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error carries a kind, a caller-safe message and an optional cause.
// The message is what the API boundary may expose; the cause is for logs.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes two apperr errors match when their kinds match, so sentinel-style
// comparisons like errors.Is(err, apperr.NotFound("")) keep working through
// wrap chains.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return e.Kind == t.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Validation(msg string) *Error { return newError(KindValidation, msg) }
func NotFound(msg string) *Error   { return newError(KindNotFound, msg) }
func Conflict(msg string) *Error   { return newError(KindConflict, msg) }
func Auth(msg string) *Error       { return newError(KindAuth, msg) }
func Forbidden(msg string) *Error  { return newError(KindForbidden, msg) }

// Internal wraps an unexpected cause. The message stays generic on purpose;
// the cause goes to logs, never to the caller.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: cause}
}

// Wrap attaches a cause to a kinded error.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf extracts the kind from anywhere in the wrap chain.
// Unrecognized errors report KindInternal so the boundary fails closed.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// Message returns the caller-safe message, or a generic one for errors
// outside the taxonomy.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}

	return "internal error"
}
