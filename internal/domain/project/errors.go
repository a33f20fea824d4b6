package project

import (
	"fmt"
	"strings"
)

// ProjectNotFoundError indicates no project matches the id or name
type ProjectNotFoundError struct {
	Ref string
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("project not found: %s", e.Ref)
}

// ProjectNameTakenError indicates a project with the same name already exists
type ProjectNameTakenError struct {
	Name string
}

func (e *ProjectNameTakenError) Error() string {
	return fmt.Sprintf("a project named %q already exists", e.Name)
}

// InvalidProjectError indicates a project that violates its invariants
type InvalidProjectError struct {
	Reason string
}

func (e *InvalidProjectError) Error() string {
	return "invalid project: " + e.Reason
}

// CatalogMismatchError indicates a catalog that lacks processes the project selects
type CatalogMismatchError struct {
	Missing []string
}

func (e *CatalogMismatchError) Error() string {
	return fmt.Sprintf("catalog is missing selected processes: %s", strings.Join(e.Missing, ", "))
}
