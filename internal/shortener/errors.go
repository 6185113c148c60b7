package shortener

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by lookups when no mapping matches.
	ErrNotFound = errors.New("url not found")

	// ErrInvalidURL is returned when the submitted URL is not an absolute URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrCorruptMapping means a stored mapping has no code.
	ErrCorruptMapping = errors.New("stored mapping has an empty code")

	// ErrAttemptsExhausted is returned when every generated code collided.
	ErrAttemptsExhausted = errors.New("no free short code after max attempts")
)

// ConflictKind tells which uniqueness constraint rejected an insert.
type ConflictKind int

const (
	// CodeConflict means the short code is already taken.
	CodeConflict ConflictKind = iota + 1
	// URLConflict means the original URL is already mapped.
	URLConflict
)

func (k ConflictKind) String() string {
	switch k {
	case CodeConflict:
		return "code"
	case URLConflict:
		return "url"
	default:
		return "unknown"
	}
}

// ConflictError is returned by Repository.Insert when a uniqueness constraint is violated.
type ConflictError struct {
	Kind ConflictKind
	Err  error
}

// NewConflictError wraps a driver error with the constraint that caused it.
func NewConflictError(kind ConflictKind, err error) *ConflictError {
	return &ConflictError{Kind: kind, Err: err}
}

func (e *ConflictError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s uniqueness conflict", e.Kind)
	}

	return fmt.Sprintf("%s uniqueness conflict: %v", e.Kind, e.Err)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// ConflictKindOf reports the conflict kind carried by err, if any.
func ConflictKindOf(err error) (ConflictKind, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict.Kind, true
	}

	return 0, false
}
