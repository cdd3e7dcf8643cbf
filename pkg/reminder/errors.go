package reminder

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable is matched by every error caused by the storage.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrUnavailable is returned when the reminders could not be synchronized at startup.
	ErrUnavailable = errors.New("reminders are unavailable")
)

// StorageError is returned when the storage fails. It matches ErrStorageUnavailable.
type StorageError struct {
	Op  string
	Err error
}

// Error stringifies the error.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error { return e.Err }

// Is reports whether target is ErrStorageUnavailable.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

// InvalidDurationError is returned for an unusable reminder duration.
type InvalidDurationError struct {
	Input  string
	Reason string
}

// Error stringifies the error.
func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid duration %q: %s", e.Input, e.Reason)
}

// NotFoundError is returned when no pending reminder has the given ID.
type NotFoundError struct {
	ID int64
}

// Error stringifies the error.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reminder %d not found", e.ID)
}

// ForbiddenError is returned when a user tries to delete a reminder owned by someone else.
type ForbiddenError struct {
	ID int64
}

// Error stringifies the error.
func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("reminder %d belongs to another user", e.ID)
}
