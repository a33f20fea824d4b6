package planning

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
)

var (
	// ErrDuplicateProcess is returned when a process with the same identity is already selected
	ErrDuplicateProcess = errors.New("process already selected")

	// ErrProcessNotSelected is returned when removing or configuring an unselected process
	ErrProcessNotSelected = errors.New("process not selected")

	// ErrNegativeAmount is returned when pinning a negative amount
	ErrNegativeAmount = errors.New("pinned amount must not be negative")
)

// Direction tells whether a pin limits external supply or requires production
type Direction string

const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// ParseDirection parses "input" or "output"
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionInput, DirectionOutput:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid direction %q (expected input or output)", s)
}

// Pin is a pinned material amount
type Pin struct {
	Key    material.Key
	Amount float64
}

// Model is the solvable aggregate: the selected processes and the pinned materials.
//
// Inputs maps a material to the most that may be supplied externally; Outputs maps a
// material to the least that must be produced. A material in neither map is free.
// Solve may write discovered minimal input amounts back into Inputs.
type Model struct {
	Processes []process.Process        `json:"processes"`
	Inputs    map[material.Key]float64 `json:"inputs"`
	Outputs   map[material.Key]float64 `json:"outputs"`
}

// NewModel creates an empty model
func NewModel() *Model {
	return &Model{
		Processes: make([]process.Process, 0),
		Inputs:    make(map[material.Key]float64),
		Outputs:   make(map[material.Key]float64),
	}
}

// ensureMaps initializes nil maps left by decoding
func (m *Model) ensureMaps() {
	if m.Inputs == nil {
		m.Inputs = make(map[material.Key]float64)
	}
	if m.Outputs == nil {
		m.Outputs = make(map[material.Key]float64)
	}
}

// IndexOf returns the position of the process with the given key, or -1
func (m *Model) IndexOf(key process.Key) int {
	for i, p := range m.Processes {
		if p.Key() == key {
			return i
		}
	}
	return -1
}

// HasProcess reports whether a process with the given key is selected
func (m *Model) HasProcess(key process.Key) bool {
	return m.IndexOf(key) >= 0
}

// AddProcess appends p, rejecting a second process with the same identity
func (m *Model) AddProcess(p process.Process) error {
	if m.HasProcess(p.Key()) {
		return fmt.Errorf("%s: %w", p.Key(), ErrDuplicateProcess)
	}
	m.Processes = append(m.Processes, p)
	return nil
}

// RemoveProcess removes the process with the given key, keeping the order of the rest
func (m *Model) RemoveProcess(key process.Key) error {
	i := m.IndexOf(key)
	if i < 0 {
		return fmt.Errorf("%s: %w", key, ErrProcessNotSelected)
	}
	m.Processes = append(m.Processes[:i], m.Processes[i+1:]...)
	return nil
}

// SetProductivity updates the productivity bonus of a selected process
func (m *Model) SetProductivity(key process.Key, productivity float64) error {
	i := m.IndexOf(key)
	if i < 0 {
		return fmt.Errorf("%s: %w", key, ErrProcessNotSelected)
	}
	m.Processes[i].Productivity = productivity
	return nil
}

// PinInput sets the input ceiling of a material
func (m *Model) PinInput(key material.Key, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("input %s = %g: %w", key, amount, ErrNegativeAmount)
	}
	m.ensureMaps()
	m.Inputs[key] = amount
	return nil
}

// PinOutput sets the output floor of a material
func (m *Model) PinOutput(key material.Key, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("output %s = %g: %w", key, amount, ErrNegativeAmount)
	}
	m.ensureMaps()
	m.Outputs[key] = amount
	return nil
}

// UnpinInput removes the input ceiling of a material, if any
func (m *Model) UnpinInput(key material.Key) {
	delete(m.Inputs, key)
}

// UnpinOutput removes the output floor of a material, if any
func (m *Model) UnpinOutput(key material.Key) {
	delete(m.Outputs, key)
}

// Pin pins a material in the given direction
func (m *Model) Pin(direction Direction, key material.Key, amount float64) error {
	if direction == DirectionInput {
		return m.PinInput(key, amount)
	}
	return m.PinOutput(key, amount)
}

// Unpin unpins a material in the given direction
func (m *Model) Unpin(direction Direction, key material.Key) {
	if direction == DirectionInput {
		m.UnpinInput(key)
		return
	}
	m.UnpinOutput(key)
}

// GetInput looks up the input ceiling by material id ("item:<name>" / "fluid:<name>")
func (m *Model) GetInput(id string) (Pin, bool, error) {
	return lookupPin(m.Inputs, id)
}

// GetOutput looks up the output floor by material id
func (m *Model) GetOutput(id string) (Pin, bool, error) {
	return lookupPin(m.Outputs, id)
}

func lookupPin(pins map[material.Key]float64, id string) (Pin, bool, error) {
	key, err := material.ParseKey(id)
	if err != nil {
		return Pin{}, false, err
	}
	amount, ok := pins[key]
	if !ok {
		return Pin{}, false, nil
	}
	return Pin{Key: key, Amount: amount}, true, nil
}

// Validate checks the model invariants: unique processes and nonnegative pins
func (m *Model) Validate() error {
	seen := make(map[process.Key]struct{}, len(m.Processes))
	for _, p := range m.Processes {
		if !p.Kind.IsValid() {
			return &process.InvalidKindError{Value: string(p.Kind)}
		}
		if _, dup := seen[p.Key()]; dup {
			return fmt.Errorf("%s: %w", p.Key(), ErrDuplicateProcess)
		}
		seen[p.Key()] = struct{}{}
	}
	for key, amount := range m.Inputs {
		if amount < 0 {
			return fmt.Errorf("input %s = %g: %w", key, amount, ErrNegativeAmount)
		}
	}
	for key, amount := range m.Outputs {
		if amount < 0 {
			return fmt.Errorf("output %s = %g: %w", key, amount, ErrNegativeAmount)
		}
	}
	return nil
}

// Clone returns a deep copy of the model
func (m *Model) Clone() *Model {
	clone := &Model{
		Processes: append(make([]process.Process, 0, len(m.Processes)), m.Processes...),
		Inputs:    make(map[material.Key]float64, len(m.Inputs)),
		Outputs:   make(map[material.Key]float64, len(m.Outputs)),
	}
	for k, v := range m.Inputs {
		clone.Inputs[k] = v
	}
	for k, v := range m.Outputs {
		clone.Outputs[k] = v
	}
	return clone
}
