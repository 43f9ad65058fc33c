package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error for HTTP mapping.
type Kind int

const (
	// Unauthenticated means no credential or an unresolvable one (401).
	Unauthenticated Kind = iota + 1
	// Forbidden means identity/role/ownership mismatch (403).
	Forbidden
	// NotFound means a referenced resource does not exist (404).
	NotFound
	// Validation means bad input detected before any write (400).
	Validation
	// StateConflict means a lifecycle rule rejected the operation (400).
	StateConflict
	// DataIntegrity means stored data violates an invariant (500).
	DataIntegrity
	// Persistence means a store-level failure; the in-flight change was
	// rolled back (500).
	Persistence
)

// HTTPStatus maps a kind to its response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Validation, StateConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a typed application error carrying the client-facing detail.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Detail + ": " + e.Err.Error()
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with the given kind and client-facing detail.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap builds an Error that preserves the underlying cause.
func Wrap(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// From extracts the *Error from err, or nil when err carries none.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
