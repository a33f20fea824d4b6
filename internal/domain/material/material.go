package material

import (
	"fmt"
	"math"
)

// Kind distinguishes solid items from fluids
type Kind string

const (
	// KindItem is a discrete, stackable material
	KindItem Kind = "item"

	// KindFluid is a continuous material carried in pipes
	KindFluid Kind = "fluid"
)

// IsValid reports whether the kind is one of the known material kinds
func (k Kind) IsValid() bool {
	return k == KindItem || k == KindFluid
}

// Material is an ingredient or product line of an activity.
//
// Exactly one quantity form is populated: either Amount, or the AmountMin/AmountMax
// range. Optional fields are nil when the source data did not declare them.
type Material struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`

	Quality     *uint8   `json:"quality,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"` // fluids only

	Amount    *float64 `json:"amount,omitempty"`
	AmountMin *float64 `json:"amount_min,omitempty"`
	AmountMax *float64 `json:"amount_max,omitempty"`

	Probability           *float64 `json:"probability,omitempty"`
	IgnoredByProductivity *float64 `json:"ignored_by_productivity,omitempty"`
	ExtraCountFraction    *float64 `json:"extra_count_fraction,omitempty"` // items only
}

// NewItem creates an item line with a fixed amount
func NewItem(name string, amount float64) Material {
	return Material{Kind: KindItem, Name: name, Amount: Float(amount)}
}

// NewFluid creates a fluid line with a fixed amount
func NewFluid(name string, amount float64) Material {
	return Material{Kind: KindFluid, Name: name, Amount: Float(amount)}
}

// NewItemRange creates an item line whose amount is drawn from [min, max]
func NewItemRange(name string, min, max float64) Material {
	return Material{Kind: KindItem, Name: name, AmountMin: Float(min), AmountMax: Float(max)}
}

// NewFluidRange creates a fluid line whose amount is drawn from [min, max]
func NewFluidRange(name string, min, max float64) Material {
	return Material{Kind: KindFluid, Name: name, AmountMin: Float(min), AmountMax: Float(max)}
}

// Float returns a pointer to v, for populating optional fields
func Float(v float64) *float64 {
	return &v
}

// Key returns the canonical identity of the material
func (m Material) Key() Key {
	return Key{Kind: m.Kind, Name: m.Name}
}

// Validate checks the structural invariants of a material line
func (m Material) Validate() error {
	if !m.Kind.IsValid() {
		return &InvalidMaterialError{Name: m.Name, Reason: fmt.Sprintf("unknown kind %q", m.Kind)}
	}
	if m.Name == "" {
		return &InvalidMaterialError{Reason: "name is empty"}
	}

	hasFixed := m.Amount != nil
	hasRange := m.AmountMin != nil || m.AmountMax != nil
	switch {
	case hasFixed && hasRange:
		return &InvalidMaterialError{Name: m.Name, Reason: "both amount and amount range are set"}
	case !hasFixed && !hasRange:
		return &InvalidMaterialError{Name: m.Name, Reason: "neither amount nor amount range is set"}
	case hasRange && (m.AmountMin == nil || m.AmountMax == nil):
		return &InvalidMaterialError{Name: m.Name, Reason: "amount range is missing a bound"}
	}

	if hasFixed && *m.Amount < 0 {
		return &InvalidMaterialError{Name: m.Name, Reason: "amount is negative"}
	}
	if hasRange {
		if *m.AmountMin < 0 || *m.AmountMax < 0 {
			return &InvalidMaterialError{Name: m.Name, Reason: "amount range is negative"}
		}
		if *m.AmountMin > *m.AmountMax {
			return &InvalidMaterialError{Name: m.Name, Reason: "amount_min exceeds amount_max"}
		}
	}
	if m.Probability != nil && (*m.Probability < 0 || *m.Probability > 1) {
		return &InvalidMaterialError{Name: m.Name, Reason: "probability outside [0, 1]"}
	}
	if m.ExtraCountFraction != nil && m.Kind == KindFluid {
		return &InvalidMaterialError{Name: m.Name, Reason: "extra_count_fraction on a fluid"}
	}

	return nil
}

// BaseAmount returns the fixed amount, or the midpoint of the amount range
func (m Material) BaseAmount() float64 {
	if m.Amount != nil {
		return *m.Amount
	}
	if m.AmountMin == nil || m.AmountMax == nil {
		return math.NaN()
	}
	return (*m.AmountMin + *m.AmountMax) / 2
}

// AverageAmount returns the expected quantity per activation at the given productivity.
//
//	avg = probability * base * (1 + productivity)
//	      - productivity * ignored_by_productivity
//	      + extra_count_fraction (items only)
//
// The same scaling is applied whether the line is consumed or produced.
func AverageAmount(m Material, productivity float64) float64 {
	probability := 1.0
	if m.Probability != nil {
		probability = *m.Probability
	}
	ignored := 0.0
	if m.IgnoredByProductivity != nil {
		ignored = *m.IgnoredByProductivity
	}

	avg := probability*m.BaseAmount()*(1+productivity) - productivity*ignored

	if m.Kind == KindItem && m.ExtraCountFraction != nil {
		avg += *m.ExtraCountFraction
	}

	return avg
}

// AverageAmount is a method form of the package-level AverageAmount
func (m Material) AverageAmount(productivity float64) float64 {
	return AverageAmount(m, productivity)
}
