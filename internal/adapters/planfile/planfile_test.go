package planfile_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/planfile"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
)

func TestLoad_Fixture(t *testing.T) {
	// Act
	plan, err := planfile.Load("testdata/gears.hcl")

	// Assert
	require.NoError(t, err)
	require.Len(t, plan.Processes, 3)

	gear := plan.Processes[0]
	assert.Equal(t, process.KindRecipe, gear.Kind)
	assert.Equal(t, "iron-gear-wheel", gear.Name)
	require.NotNil(t, gear.Settings)
	assert.Equal(t, "assembling-machine-2", gear.Settings.Machine)
	assert.Equal(t, []string{"productivity-module", "productivity-module"}, gear.Settings.Modules)
	assert.Equal(t, []planning.BeaconSettings{{
		Prototype: "beacon",
		Count:     2,
		Modules:   []string{"speed-module", "speed-module"},
	}}, gear.Settings.Beacons)

	assert.Nil(t, plan.Processes[1].Settings)
	assert.Equal(t, process.KindResource, plan.Processes[2].Kind)
	assert.Equal(t, "electric-mining-drill", plan.Processes[2].Settings.Machine)

	require.Len(t, plan.Inputs, 1)
	assert.Equal(t, material.ItemKey("iron-plate"), plan.Inputs[0].Material)
	assert.Equal(t, 500.0, plan.Inputs[0].Amount)
	require.Len(t, plan.Outputs, 1)
	assert.Equal(t, material.ItemKey("iron-gear-wheel"), plan.Outputs[0].Material)
	assert.Equal(t, 100.0, plan.Outputs[0].Amount)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		expect string
	}{
		{"syntax", `process "recipe" {`, "failed to parse"},
		{"unknown block", `factory "x" {}`, "failed to decode"},
		{"missing amount", `output "item:gear" {}`, "failed to decode"},
		{"bad kind", `process "boiler" "steam" {}`, "boiler"},
		{"duplicate process", "process \"recipe\" \"a\" {}\nprocess \"recipe\" \"a\" {}", "declared twice"},
		{"duplicate pin", "input \"item:a\" { limit = 1 }\ninput \"item:a\" { limit = 2 }", "declared twice"},
		{"negative beacon count", "process \"recipe\" \"a\" {\n  beacon \"beacon\" { count = -1 }\n}", "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := planfile.Parse([]byte(tt.src), "plan.hcl")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expect)
		})
	}
}

func TestParse_MalformedMaterial(t *testing.T) {
	_, err := planfile.Parse([]byte(`input "ore:iron" { limit = 5 }`), "plan.hcl")

	var malformed *material.MalformedIDError
	require.True(t, errors.As(err, &malformed), "expected MalformedIDError, got %v", err)
}

func TestParse_NegativeAmount(t *testing.T) {
	_, err := planfile.Parse([]byte(`output "item:gear" { amount = -5 }`), "plan.hcl")

	assert.True(t, errors.Is(err, planning.ErrNegativeAmount))
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := planfile.Loader{}.LoadPlan("testdata/missing.hcl")

	assert.Error(t, err)
}
