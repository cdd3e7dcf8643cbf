package store

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// NotFoundError is returned when no document matches the given key.
type NotFoundError struct {
	// Resource is the kind of document looked up, e.g. "reminder".
	Resource string
	Key      interface{}
}

// Error stringifies the error.
func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "resource not found"
	}

	return fmt.Sprintf("%s %v not found", e.Resource, e.Key)
}

// AlreadyExistsError is returned when a unique key is already taken.
type AlreadyExistsError struct {
	Resource string
	Key      interface{}
	Err      error
}

// Error stringifies the error.
func (e AlreadyExistsError) Error() string {
	if e.Resource == "" {
		return "resource already exists"
	}

	return fmt.Sprintf("%s %v already exists", e.Resource, e.Key)
}

// Unwrap returns the underlying driver error.
func (e AlreadyExistsError) Unwrap() error { return e.Err }

func duplicate(resource string, key interface{}, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return AlreadyExistsError{Resource: resource, Key: key, Err: err}
	}

	return err
}
