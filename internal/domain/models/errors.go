package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a request rejected because a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateCode indicates an explicitly supplied code is already taken.
	ErrDuplicateCode = errors.New("code already exists")
	// ErrAllocationRace indicates auto-assignment kept colliding and ran out of attempts.
	ErrAllocationRace = errors.New("code allocation lost race")
	// ErrStoreUnavailable indicates the record store failed for infrastructural reasons.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotFound indicates the addressed record does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes a rejected request.
type ValidationError struct {
	Message string
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Message }

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// StoreError wraps an infrastructural failure of the record store.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err as a store failure for the given operation.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStoreUnavailable) match.
func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }
