package project_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/simplex"
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog/catalogtest"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
)

func newProject(t *testing.T, clock shared.Clock) *project.Project {
	t.Helper()
	p, err := project.NewProject("proj-1", "gears", catalogtest.Sample(), clock)
	require.NoError(t, err)
	return p
}

func TestNewProject_RequiresName(t *testing.T) {
	_, err := project.NewProject("proj-1", "   ", nil, nil)

	var invalid *project.InvalidProjectError
	assert.True(t, errors.As(err, &invalid))
}

func TestNewProject_Defaults(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})

	p, err := project.NewProject("proj-1", " gears ", nil, clock)

	require.NoError(t, err)
	assert.Equal(t, "gears", p.Name())
	assert.NotNil(t, p.Catalog())
	assert.Empty(t, p.Processes())
	assert.Equal(t, clock.Now(), p.CreatedAt())
	assert.Equal(t, p.CreatedAt(), p.UpdatedAt())
}

func TestProject_AddProcessValidatesAgainstCatalog(t *testing.T) {
	p := newProject(t, nil)

	_, err := p.AddProcess(process.KindRecipe, "rocket-part")

	var unknown *catalog.UnknownPrototypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 0, p.ProcessCount())
}

func TestProject_AddProcessRejectsDuplicates(t *testing.T) {
	p := newProject(t, nil)
	_, err := p.AddProcess(process.KindRecipe, "iron-gear-wheel")
	require.NoError(t, err)

	_, err = p.AddProcess(process.KindRecipe, "iron-gear-wheel")

	assert.True(t, errors.Is(err, planning.ErrDuplicateProcess))
}

func TestProject_MutationsTouchUpdatedAt(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	p := newProject(t, clock)
	clock.Advance(time.Minute)

	require.NoError(t, p.Pin(planning.DirectionOutput, material.ItemKey("iron-gear-wheel"), 100))

	assert.Equal(t, p.CreatedAt().Add(time.Minute), p.UpdatedAt())
}

func TestProject_ConfigureProcessSetsProductivity(t *testing.T) {
	// Arrange
	p := newProject(t, nil)
	gear, err := p.AddProcess(process.KindRecipe, "iron-gear-wheel")
	require.NoError(t, err)

	// Act
	err = p.ConfigureProcess(gear.Key(), planning.ProcessSettings{
		Machine: "assembling-machine-2",
		Modules: []string{"productivity-module", "productivity-module"},
	})

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 0.08, p.Processes()[0].Productivity, 1e-9)
	settings, ok := p.SettingsFor(gear.Key())
	require.True(t, ok)
	assert.Equal(t, "assembling-machine-2", settings.Machine)
}

func TestProject_ConfigureUnselectedProcess(t *testing.T) {
	p := newProject(t, nil)

	err := p.ConfigureProcess(process.Key{Kind: process.KindRecipe, Name: "iron-gear-wheel"}, planning.ProcessSettings{})

	assert.True(t, errors.Is(err, planning.ErrProcessNotSelected))
}

func TestProject_RemoveProcessDropsSettings(t *testing.T) {
	p := newProject(t, nil)
	gear, err := p.AddProcess(process.KindRecipe, "iron-gear-wheel")
	require.NoError(t, err)
	require.NoError(t, p.ConfigureProcess(gear.Key(), planning.ProcessSettings{Machine: "assembling-machine-2"}))

	require.NoError(t, p.RemoveProcess(gear.Key()))

	_, ok := p.SettingsFor(gear.Key())
	assert.False(t, ok)
	assert.Equal(t, 0, p.ProcessCount())
}

func TestProject_ReplaceCatalogKeepsSelectedProcessesResolvable(t *testing.T) {
	p := newProject(t, nil)
	_, err := p.AddProcess(process.KindRecipe, "iron-gear-wheel")
	require.NoError(t, err)
	original := p.Catalog()

	err = p.ReplaceCatalog(catalog.New())

	var mismatch *project.CatalogMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []string{"recipe/iron-gear-wheel"}, mismatch.Missing)
	assert.Same(t, original, p.Catalog())

	replacement := catalogtest.Sample()
	require.NoError(t, p.ReplaceCatalog(replacement))
	assert.Same(t, replacement, p.Catalog())
}

func TestProject_SolveAppliesSettingsAndWritesBackInputs(t *testing.T) {
	// Arrange
	p := newProject(t, nil)
	gear, err := p.AddProcess(process.KindRecipe, "iron-gear-wheel")
	require.NoError(t, err)
	require.NoError(t, p.Pin(planning.DirectionOutput, material.ItemKey("iron-gear-wheel"), 100))
	planner := planning.NewPlanner(simplex.NewSolver(0))

	// Act
	result, diag, err := p.Solve(planner, true)

	// Assert
	require.NoError(t, err)
	one, ok := result.(planning.OneSolution)
	require.True(t, ok, "expected OneSolution, got %#v", result)
	assert.InDelta(t, 100, one.Rate(gear.Key()), 1e-6)
	assert.Equal(t, 1, diag.DiscoveredVars)

	pin, found, err := p.Model().GetInput("item:iron-plate")
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 200, pin.Amount, 1e-6)
}
