package extension

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when a name matches no extension.
type NotFoundError struct {
	Name string
}

// Error stringifies the error.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf(":x: Could not find the extension `%s`.", e.Name)
}

// AmbiguousError is returned when an unqualified name matches several extensions.
type AmbiguousError struct {
	Name    string
	Matches []string
}

// Error stringifies the error.
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf(
		":x: `%s` is an ambiguous extension name. Please use one of the following fully-qualified names.```\n%s```",
		e.Name, strings.Join(e.Matches, "\n"),
	)
}

// ProtectedError is returned when trying to unload or reload a protected extension.
type ProtectedError struct {
	Action Action
	Names  []string
}

// Error stringifies the error.
func (e *ProtectedError) Error() string {
	return fmt.Sprintf(":x: The following extension(s) may not be %sed:```\n%s```", e.Action, strings.Join(e.Names, "\n"))
}
