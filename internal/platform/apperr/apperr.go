// Package apperr defines the operational error taxonomy shared by the bed
// registry, the admission ledger, and the allocation coordinator. Every
// failure a caller can act on carries one of these kinds; handlers map the
// kind to an HTTP status and everything else stays an opaque internal error.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an operational failure.
type Kind int

const (
	// KindInternal is the zero kind for unclassified failures.
	KindInternal Kind = iota
	// KindNotFound: a bed or admission id does not exist.
	KindNotFound
	// KindConflict: a bed was not in the expected state at reservation or
	// release time, including lost races.
	KindConflict
	// KindInvalidState: an operation was attempted against a record not in
	// the required lifecycle state, e.g. discharging a discharged admission.
	KindInvalidState
	// KindNoBedsAvailable: no matching free bed for auto-assignment.
	KindNoBedsAvailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindNoBedsAvailable:
		return "no_beds_available"
	default:
		return "internal"
	}
}

// Error is an operational error with a kind and a descriptive message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes two apperr.Errors match when their kinds match, so callers can
// test with errors.Is(err, &Error{Kind: KindConflict}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an operational error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// NotFound, Conflict, InvalidState and NoBeds are shorthands for the kinds
// the coordinator surfaces.
func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return New(KindConflict, format, args...)
}

func InvalidState(format string, args ...interface{}) *Error {
	return New(KindInvalidState, format, args...)
}

func NoBeds(format string, args ...interface{}) *Error {
	return New(KindNoBedsAvailable, format, args...)
}

// KindOf extracts the kind from an error chain, KindInternal if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the status the HTTP layer should answer with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidState:
		return http.StatusUnprocessableEntity
	case KindNoBedsAvailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
