package command

import (
	"fmt"
	"strings"
)

// UserError is an error caused by the user's input. Its message is sent back
// as is instead of being logged.
type UserError struct {
	Message string
}

// Error stringifies the error.
func (e *UserError) Error() string { return e.Message }

// UserErrorf creates a UserError.
func UserErrorf(format string, args ...interface{}) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// UnknownModuleError is returned when no setup function is registered for a module.
type UnknownModuleError struct {
	ID string
}

// Error stringifies the error.
func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("module %q has no setup function", e.ID)
}

// AlreadyLoadedError is returned when loading a module which is already loaded.
type AlreadyLoadedError struct {
	ID string
}

// Error stringifies the error.
func (e *AlreadyLoadedError) Error() string {
	return fmt.Sprintf("module %q is already loaded", e.ID)
}

// NotLoadedError is returned when unloading or reloading a module which is not loaded.
type NotLoadedError struct {
	ID string
}

// Error stringifies the error.
func (e *NotLoadedError) Error() string {
	return fmt.Sprintf("module %q is not loaded", e.ID)
}

// SetupError wraps a failure of a module's setup function.
type SetupError struct {
	ID  string
	Err error
}

// Error stringifies the error.
func (e *SetupError) Error() string {
	return fmt.Sprintf("setup module %q: %v", e.ID, e.Err)
}

// Unwrap returns the underlying error.
func (e *SetupError) Unwrap() error { return e.Err }

// PanicError is a panic recovered from a module's setup function.
type PanicError struct {
	Value interface{}
}

// Error stringifies the error.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// ConflictError is returned when a module registers a command name already
// owned by another loaded module.
type ConflictError struct {
	ID       string
	Names    []string
	OwnerIDs []string
}

// Error stringifies the error.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("module %q: command(s) %s already registered by %s",
		e.ID, strings.Join(e.Names, ", "), strings.Join(e.OwnerIDs, ", "))
}
