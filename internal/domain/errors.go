package domain

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds shared by every ledger. Entity packages wrap these with their own
// sentinels so callers can match either the specific or the general error.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
	ErrStorage         = errors.New("storage failure")
)

// ValidationError reports a rejected field. It matches ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid builds a ValidationError for field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps a failure from the persistence layer. It matches both
// ErrStorage and the underlying driver error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// Storage wraps err as a StorageError, or returns nil when err is nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Owned is implemented by records that belong to a single user.
type Owned interface {
	OwnerID() int64
}

// FindOwned loads a record through find and makes sure it belongs to userID.
// A missing record and a record owned by someone else both yield notFound.
func FindOwned[T any, PT interface {
	*T
	Owned
}](ctx context.Context, find func(ctx context.Context, id, userID int64) (PT, error), id, userID int64, notFound error) (PT, error) {
	record, err := find(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.OwnerID() != userID {
		return nil, notFound
	}
	return record, nil
}

// ValidatePeriod checks a calendar month (1-12) and a four digit year.
func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return Invalid("month", "must be between 1 and 12")
	}
	if year < 1000 || year > 9999 {
		return Invalid("year", "must be a four digit year")
	}
	return nil
}
