package material_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
)

func TestKey_IDRoundTrip(t *testing.T) {
	names := []string{"iron-plate", "water", "a", "space science pack", "x-1_2", "ünïcode"}

	for _, name := range names {
		for _, key := range []material.Key{material.ItemKey(name), material.FluidKey(name)} {
			parsed, err := material.ParseKey(key.ID())
			require.NoError(t, err, key.ID())
			assert.Equal(t, key, parsed)
		}
	}
}

func TestKey_ID(t *testing.T) {
	assert.Equal(t, "item:iron-gear-wheel", material.ItemKey("iron-gear-wheel").ID())
	assert.Equal(t, "fluid:water", material.FluidKey("water").ID())
}

func TestParseKey_SplitsOnFirstSeparator(t *testing.T) {
	key, err := material.ParseKey("fluid:steam:165")

	require.NoError(t, err)
	assert.Equal(t, material.KindFluid, key.Kind)
	assert.Equal(t, "steam:165", key.Name)
}

func TestParseKey_Malformed(t *testing.T) {
	for _, id := range []string{"", "iron-plate", "gas:hydrogen", "item:", ":water", "Item:iron"} {
		t.Run(id, func(t *testing.T) {
			_, err := material.ParseKey(id)

			var malformed *material.MalformedIDError
			require.True(t, errors.As(err, &malformed), "expected MalformedIDError, got %v", err)
			assert.Equal(t, id, malformed.ID)
		})
	}
}

func TestKey_AsJSONMapKey(t *testing.T) {
	// Arrange
	pins := map[material.Key]float64{
		material.ItemKey("iron-plate"): 200,
		material.FluidKey("water"):     1200,
	}

	// Act
	data, err := json.Marshal(pins)
	require.NoError(t, err)

	var decoded map[material.Key]float64
	err = json.Unmarshal(data, &decoded)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, pins, decoded)
	assert.JSONEq(t, `{"item:iron-plate":200,"fluid:water":1200}`, string(data))
}

func TestKey_UnmarshalRejectsMalformed(t *testing.T) {
	var decoded map[material.Key]float64
	err := json.Unmarshal([]byte(`{"ore:iron":1}`), &decoded)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "malformed material id")
}

func TestSortedKeys(t *testing.T) {
	m := map[material.Key]int{
		material.ItemKey("b"):  1,
		material.FluidKey("a"): 2,
		material.ItemKey("a"):  3,
	}

	keys := material.SortedKeys(m)

	assert.Equal(t, []material.Key{
		material.FluidKey("a"),
		material.ItemKey("a"),
		material.ItemKey("b"),
	}, keys)
}
