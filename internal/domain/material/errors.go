package material

import "fmt"

// MalformedIDError indicates a material identifier that is not "item:<name>" or "fluid:<name>"
type MalformedIDError struct {
	ID     string
	Reason string
}

func (e *MalformedIDError) Error() string {
	return fmt.Sprintf("malformed material id %q: %s", e.ID, e.Reason)
}

// InvalidMaterialError indicates a material line that violates its invariants
type InvalidMaterialError struct {
	Name   string
	Reason string
}

func (e *InvalidMaterialError) Error() string {
	if e.Name == "" {
		return "invalid material: " + e.Reason
	}
	return fmt.Sprintf("invalid material %s: %s", e.Name, e.Reason)
}
