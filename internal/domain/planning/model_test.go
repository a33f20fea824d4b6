package planning_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
)

func TestModel_AddProcessRejectsDuplicateIdentity(t *testing.T) {
	model := planning.NewModel()
	require.NoError(t, model.AddProcess(gearRecipe))

	err := model.AddProcess(process.Process{Kind: process.KindRecipe, Name: "iron-gear-wheel", Productivity: 0.1})

	assert.True(t, errors.Is(err, planning.ErrDuplicateProcess))
	assert.Len(t, model.Processes, 1)
}

func TestModel_RemoveProcessKeepsOrder(t *testing.T) {
	model := planning.NewModel()
	a := process.New(process.KindResource, "iron-ore")
	b := process.New(process.KindRecipe, "iron-plate")
	c := process.New(process.KindRecipe, "iron-gear-wheel")
	for _, p := range []process.Process{a, b, c} {
		require.NoError(t, model.AddProcess(p))
	}

	require.NoError(t, model.RemoveProcess(b.Key()))

	assert.Equal(t, []process.Process{a, c}, model.Processes)
	assert.True(t, errors.Is(model.RemoveProcess(b.Key()), planning.ErrProcessNotSelected))
}

func TestModel_SetProductivity(t *testing.T) {
	model := planning.NewModel()
	require.NoError(t, model.AddProcess(gearRecipe))

	require.NoError(t, model.SetProductivity(gearRecipe.Key(), 0.3))

	assert.Equal(t, 0.3, model.Processes[0].Productivity)
	assert.Error(t, model.SetProductivity(process.Key{Kind: process.KindPlant, Name: "x"}, 1))
}

func TestModel_PinRejectsNegativeAmounts(t *testing.T) {
	model := planning.NewModel()

	assert.True(t, errors.Is(model.PinInput(plateKey, -1), planning.ErrNegativeAmount))
	assert.True(t, errors.Is(model.PinOutput(gearKey, -0.5), planning.ErrNegativeAmount))
	assert.Empty(t, model.Inputs)
	assert.Empty(t, model.Outputs)
}

func TestModel_PinAndUnpinByDirection(t *testing.T) {
	model := planning.NewModel()

	require.NoError(t, model.Pin(planning.DirectionInput, plateKey, 200))
	require.NoError(t, model.Pin(planning.DirectionOutput, gearKey, 100))
	model.Unpin(planning.DirectionInput, plateKey)

	assert.Empty(t, model.Inputs)
	assert.Equal(t, map[material.Key]float64{gearKey: 100}, model.Outputs)
}

func TestModel_GetInputAndOutput(t *testing.T) {
	model := planning.NewModel()
	require.NoError(t, model.PinInput(plateKey, 200))
	require.NoError(t, model.PinOutput(material.FluidKey("water"), 50))

	tests := []struct {
		name      string
		get       func(string) (planning.Pin, bool, error)
		id        string
		wantFound bool
		wantPin   planning.Pin
		wantErr   bool
	}{
		{"pinned input", model.GetInput, "item:iron-plate", true, planning.Pin{Key: plateKey, Amount: 200}, false},
		{"input not pinned", model.GetInput, "item:copper-plate", false, planning.Pin{}, false},
		{"output is not an input", model.GetInput, "fluid:water", false, planning.Pin{}, false},
		{"pinned output", model.GetOutput, "fluid:water", true, planning.Pin{Key: material.FluidKey("water"), Amount: 50}, false},
		{"malformed id", model.GetOutput, "water", false, planning.Pin{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pin, found, err := tt.get(tt.id)

			if tt.wantErr {
				var malformed *material.MalformedIDError
				assert.True(t, errors.As(err, &malformed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantPin, pin)
		})
	}
}

func TestModel_Validate(t *testing.T) {
	model := planning.NewModel()
	require.NoError(t, model.AddProcess(gearRecipe))
	assert.NoError(t, model.Validate())

	model.Processes = append(model.Processes, gearRecipe)
	assert.True(t, errors.Is(model.Validate(), planning.ErrDuplicateProcess))

	model.Processes = model.Processes[:1]
	model.Inputs[plateKey] = -3
	assert.True(t, errors.Is(model.Validate(), planning.ErrNegativeAmount))
}

func TestModel_CloneIsIndependent(t *testing.T) {
	model := gearModel(t)
	clone := model.Clone()

	require.NoError(t, clone.PinInput(plateKey, 1))
	clone.Processes[0].Productivity = 0.5

	assert.Empty(t, model.Inputs)
	assert.Equal(t, 0.0, model.Processes[0].Productivity)
}

func TestModel_JSONRoundTrip(t *testing.T) {
	model := gearModel(t)
	require.NoError(t, model.PinInput(plateKey, 200))

	data, err := json.Marshal(model)
	require.NoError(t, err)

	var decoded planning.Model
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, model, &decoded)
}

func TestModel_JSONRejectsMalformedMaterial(t *testing.T) {
	var decoded planning.Model
	err := json.Unmarshal([]byte(`{"processes":[],"inputs":{"ore:iron":1},"outputs":{}}`), &decoded)

	var malformed *material.MalformedIDError
	assert.True(t, errors.As(err, &malformed), "got %v", err)
}

func TestParseDirection(t *testing.T) {
	d, err := planning.ParseDirection("output")
	require.NoError(t, err)
	assert.Equal(t, planning.DirectionOutput, d)

	_, err = planning.ParseDirection("sideways")
	assert.Error(t, err)
}
