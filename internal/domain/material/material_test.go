package material_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
)

func TestAverageAmount_ZeroProductivityIsProbabilityTimesBase(t *testing.T) {
	tests := []struct {
		name     string
		material material.Material
		expected float64
	}{
		{
			name:     "fixed item amount",
			material: material.NewItem("iron-plate", 3),
			expected: 3,
		},
		{
			name:     "fixed fluid amount",
			material: material.NewFluid("water", 1200),
			expected: 1200,
		},
		{
			name:     "item range uses midpoint",
			material: material.NewItemRange("stone", 1, 4),
			expected: 2.5,
		},
		{
			name: "probability scales the base",
			material: func() material.Material {
				m := material.NewItem("uranium-235", 1)
				m.Probability = material.Float(0.007)
				return m
			}(),
			expected: 0.007,
		},
		{
			name: "ignored_by_productivity has no effect at zero productivity",
			material: func() material.Material {
				m := material.NewFluid("heavy-oil", 40)
				m.IgnoredByProductivity = material.Float(40)
				return m
			}(),
			expected: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, material.AverageAmount(tt.material, 0))
		})
	}
}

func TestAverageAmount_AppliesProductivityFormula(t *testing.T) {
	// Arrange
	m := material.NewItem("plastic-bar", 2)
	m.Probability = material.Float(0.5)
	m.IgnoredByProductivity = material.Float(1)
	m.ExtraCountFraction = material.Float(0.25)

	// Act
	avg := m.AverageAmount(0.2)

	// Assert: 0.5*2*1.2 - 0.2*1 + 0.25
	assert.InDelta(t, 1.25, avg, 1e-12)
}

func TestAverageAmount_FluidNeverAddsExtraCountFraction(t *testing.T) {
	// Arrange: a fluid carrying the field anyway (invalid, but must not leak into the average)
	fluid := material.NewFluid("steam", 10)
	fluid.ExtraCountFraction = material.Float(0.5)
	item := material.NewItem("steam", 10)
	item.ExtraCountFraction = material.Float(0.5)

	// Act & Assert
	assert.Equal(t, 10.0, material.AverageAmount(fluid, 0))
	assert.Equal(t, 10.5, material.AverageAmount(item, 0))
}

func TestAverageAmount_NonDecreasingInProductivity(t *testing.T) {
	m := material.NewItem("copper-cable", 2)

	previous := material.AverageAmount(m, 0)
	for p := 0.05; p <= 3.0; p += 0.05 {
		current := material.AverageAmount(m, p)
		assert.GreaterOrEqual(t, current, previous, "productivity %.2f", p)
		previous = current
	}
}

// Productivity scales ingredient lines exactly like product lines. This locks the
// current behavior until reference data shows ingredients should stay unscaled.
func TestAverageAmount_IngredientsScaleWithProductivity(t *testing.T) {
	ingredient := material.NewItem("iron-plate", 2)

	assert.InDelta(t, 2.2, material.AverageAmount(ingredient, 0.1), 1e-12)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		material  material.Material
		wantError string
	}{
		{name: "valid fixed", material: material.NewItem("gear", 1)},
		{name: "valid range", material: material.NewItemRange("stone", 1, 2)},
		{
			name:      "empty name",
			material:  material.Material{Kind: material.KindItem, Amount: material.Float(1)},
			wantError: "name is empty",
		},
		{
			name:      "unknown kind",
			material:  material.Material{Kind: "gas", Name: "x", Amount: material.Float(1)},
			wantError: "unknown kind",
		},
		{
			name: "both forms",
			material: material.Material{
				Kind: material.KindItem, Name: "x",
				Amount: material.Float(1), AmountMin: material.Float(1), AmountMax: material.Float(2),
			},
			wantError: "both amount and amount range",
		},
		{
			name:      "neither form",
			material:  material.Material{Kind: material.KindItem, Name: "x"},
			wantError: "neither amount nor amount range",
		},
		{
			name:      "half range",
			material:  material.Material{Kind: material.KindItem, Name: "x", AmountMin: material.Float(1)},
			wantError: "missing a bound",
		},
		{
			name:      "inverted range",
			material:  material.NewItemRange("x", 3, 1),
			wantError: "amount_min exceeds amount_max",
		},
		{
			name:      "negative amount",
			material:  material.NewFluid("x", -1),
			wantError: "amount is negative",
		},
		{
			name: "probability above one",
			material: func() material.Material {
				m := material.NewItem("x", 1)
				m.Probability = material.Float(1.5)
				return m
			}(),
			wantError: "probability",
		},
		{
			name: "fluid extra count",
			material: func() material.Material {
				m := material.NewFluid("x", 1)
				m.ExtraCountFraction = material.Float(0.1)
				return m
			}(),
			wantError: "extra_count_fraction on a fluid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.material.Validate()
			if tt.wantError == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}
