package process

import "fmt"

// InvalidKindError indicates a process kind outside resource, plant and recipe
type InvalidKindError struct {
	Value string
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid process kind %q (expected resource, plant or recipe)", e.Value)
}
