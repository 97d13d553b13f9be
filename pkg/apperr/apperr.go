// Package apperr holds the error kinds shared by every lyfocus operation.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound matches any *NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrFormat matches any *FormatError.
	ErrFormat = errors.New("invalid format")
)

// ValidationError rejects a create or update because a field is missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid is shorthand for a ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError references an id that does not exist.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound is shorthand for a NotFoundError.
func NotFound(kind string, id int64) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// FormatError rejects an import payload.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid import file: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid import file: %s", e.Reason)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func (e *FormatError) Unwrap() error { return e.Err }

// PersistenceWarning describes a best-effort storage failure. It is logged,
// never returned to the caller of a state operation.
type PersistenceWarning struct {
	Key string
	Op  string
	Err error
}

func (w PersistenceWarning) Error() string {
	return fmt.Sprintf("persistence %s %s: %v", w.Op, w.Key, w.Err)
}

func (w PersistenceWarning) Unwrap() error { return w.Err }
