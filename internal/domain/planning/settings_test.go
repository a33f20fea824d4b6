package planning_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog/catalogtest"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
)

func TestComputeEffects_ModulesAndBeacons(t *testing.T) {
	// Arrange
	cat := catalogtest.Sample()
	settings := planning.ProcessSettings{
		Machine: "assembling-machine-2",
		Modules: []string{"productivity-module", "productivity-module"},
		Beacons: []planning.BeaconSettings{
			{Prototype: "beacon", Count: 2, Modules: []string{"speed-module"}},
		},
	}

	// Act
	totals, err := planning.ComputeEffects(cat, process.KindRecipe, settings)

	// Assert: modules 2 × 0.04 prod, 2 × -0.05 speed; beacons 2 × 1.5 × 0.2 speed
	require.NoError(t, err)
	assert.InDelta(t, 0.08, totals.Productivity, eps)
	assert.InDelta(t, -0.1+0.6, totals.Speed, eps)
	assert.InDelta(t, 0.8+1.5, totals.Consumption, eps)
}

func TestComputeEffects_ReceiverWithoutModuleEffects(t *testing.T) {
	cat := catalogtest.Sample()
	settings := planning.ProcessSettings{Machine: "offshore-pump", Modules: []string{"productivity-module"}}

	totals, err := planning.ComputeEffects(cat, process.KindResource, settings)

	require.NoError(t, err)
	assert.Equal(t, planning.EffectTotals{}, totals)
}

func TestComputeEffects_BaseEffect(t *testing.T) {
	cat := catalogtest.Sample()
	drill := cat.MiningDrills["electric-mining-drill"]
	drill.EffectReceiver = &catalog.EffectReceiver{
		BaseEffect:        &catalog.Effects{Productivity: floatPtr(0.5)},
		UsesModuleEffects: true,
	}
	cat.MiningDrills["electric-mining-drill"] = drill

	totals, err := planning.ComputeEffects(cat, process.KindResource, planning.ProcessSettings{
		Machine: "electric-mining-drill",
		Modules: []string{"productivity-module"},
		Beacons: []planning.BeaconSettings{{Prototype: "beacon", Count: 1, Modules: []string{"productivity-module"}}},
	})

	require.NoError(t, err)
	assert.InDelta(t, 0.54, totals.Productivity, eps, "beacon effects are not received")
}

func TestComputeEffects_UnknownModule(t *testing.T) {
	_, err := planning.ComputeEffects(catalogtest.Sample(), process.KindRecipe, planning.ProcessSettings{Modules: []string{"nope"}})

	var unknown *catalog.UnknownPrototypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "module", unknown.Kind)
}

func TestValidateSettings(t *testing.T) {
	cat := catalogtest.Sample()
	gear := process.Key{Kind: process.KindRecipe, Name: "iron-gear-wheel"}
	plate := process.Key{Kind: process.KindRecipe, Name: "iron-plate"}
	ore := process.Key{Kind: process.KindResource, Name: "iron-ore"}
	tree := process.Key{Kind: process.KindPlant, Name: "tree-plant"}

	tests := []struct {
		name     string
		process  process.Key
		settings planning.ProcessSettings
		wantErr  bool
	}{
		{"assembler crafts gears", gear, planning.ProcessSettings{Machine: "assembling-machine-2"}, false},
		{"assembler cannot smelt", plate, planning.ProcessSettings{Machine: "assembling-machine-2"}, true},
		{"drill mines ore", ore, planning.ProcessSettings{Machine: "electric-mining-drill", Modules: []string{"speed-module"}}, false},
		{"pump cannot mine ore", ore, planning.ProcessSettings{Machine: "offshore-pump"}, true},
		{"too many modules", gear, planning.ProcessSettings{Machine: "assembling-machine-2", Modules: []string{"speed-module", "speed-module", "speed-module"}}, true},
		{"plant without machine", tree, planning.ProcessSettings{}, false},
		{"plant with machine", tree, planning.ProcessSettings{Machine: "assembling-machine-2"}, true},
		{"unknown beacon", gear, planning.ProcessSettings{Beacons: []planning.BeaconSettings{{Prototype: "lighthouse", Count: 1}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := planning.ValidateSettings(cat, tt.process, tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyProductivity(t *testing.T) {
	cat := catalogtest.Sample()
	model := planning.NewModel()
	require.NoError(t, model.AddProcess(gearRecipe))
	require.NoError(t, model.AddProcess(process.New(process.KindResource, "iron-ore")))
	settings := map[process.Key]planning.ProcessSettings{
		gearRecipe.Key(): {Machine: "assembling-machine-2", Modules: []string{"productivity-module", "productivity-module"}},
	}

	require.NoError(t, planning.ApplyProductivity(cat, model, settings))

	assert.InDelta(t, 0.08, model.Processes[0].Productivity, eps)
	assert.Equal(t, 0.0, model.Processes[1].Productivity)
}

func TestMachineRequirements(t *testing.T) {
	// Arrange
	cat := catalogtest.Sample()
	ore := process.New(process.KindResource, "iron-ore")
	tree := process.New(process.KindPlant, "tree-plant")
	solution := planning.OneSolution{
		Processes: []process.Process{gearRecipe, ore, tree},
		Rates: map[process.Key]float64{
			gearRecipe.Key(): 3,
			ore.Key():        2,
			tree.Key():       1,
		},
	}
	settings := map[process.Key]planning.ProcessSettings{
		gearRecipe.Key(): {Machine: "assembling-machine-2"},
		ore.Key():        {Machine: "electric-mining-drill", Modules: []string{"speed-module"}},
	}

	// Act
	report, err := planning.MachineRequirements(cat, solution, settings)

	// Assert
	require.NoError(t, err)
	require.Len(t, report, 3)

	// 3/s × 0.5s / 0.75
	assert.True(t, report[0].Applicable)
	assert.InDelta(t, 2, report[0].Count, eps)

	// 2/s × 1s / (0.5 + 0.2)
	assert.True(t, report[1].Applicable)
	assert.InDelta(t, 2/0.7, report[1].Count, eps)

	assert.False(t, report[2].Applicable, "plants have no machine")
	assert.Equal(t, 1.0, report[2].Rate)
}

func floatPtr(v float64) *float64 { return &v }
