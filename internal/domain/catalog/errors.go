package catalog

import "fmt"

// MissingEntryError indicates a lookup for a prototype the catalog does not contain.
//
// Activities are validated against the catalog before they are selected, so hitting this
// during a solve is a programming error and is raised as a panic.
type MissingEntryError struct {
	Kind string
	Name string
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("catalog has no %s named %q", e.Kind, e.Name)
}

// UnknownPrototypeError is the recoverable form, returned when validating user input
type UnknownPrototypeError struct {
	Kind string
	Name string
}

func (e *UnknownPrototypeError) Error() string {
	return fmt.Sprintf("unknown %s: %s (not in catalog)", e.Kind, e.Name)
}
