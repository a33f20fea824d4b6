package persistence_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
	"github.com/andrescamacho/factory-planner-go/test/helpers"
)

func TestSolveRunRepository_RecordAndList(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSolveRunRepository(db)
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	gear := process.New(process.KindRecipe, "iron-gear-wheel")
	one := planning.OneSolution{
		Rates:     map[process.Key]float64{gear.Key(): 100},
		Processes: []process.Process{gear},
	}
	multiple := planning.MultipleSolutions{
		LowerBounds:  map[material.Key]float64{},
		HigherBounds: map[material.Key]float64{material.FluidKey("water"): math.Inf(1)},
	}

	require.NoError(t, repo.Record(context.Background(),
		project.NewSolveRun("p-1", one, planning.Diagnostics{SolverCalls: 3}, true, 15*time.Millisecond, start)))
	require.NoError(t, repo.Record(context.Background(),
		project.NewSolveRun("p-1", multiple, planning.Diagnostics{SolverCalls: 5}, false, time.Millisecond, start.Add(time.Minute))))
	require.NoError(t, repo.Record(context.Background(),
		project.NewSolveRun("p-2", planning.NoSolution{Reason: "infeasible"}, planning.Diagnostics{}, false, 0, start)))

	// Act
	runs, err := repo.ListByProject(context.Background(), "p-1", 0)

	// Assert
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, planning.ResultMultipleSolutions, runs[0].Outcome)
	assert.True(t, math.IsInf(runs[0].Result.(planning.MultipleSolutions).HigherBounds[material.FluidKey("water")], 1))
	assert.Equal(t, planning.ResultOneSolution, runs[1].Outcome)
	assert.Equal(t, 100.0, runs[1].Result.(planning.OneSolution).Rate(gear.Key()))
	assert.True(t, runs[1].GenerateInputs)
	assert.Equal(t, 3, runs[1].SolverCalls)
	assert.Equal(t, 15*time.Millisecond, runs[1].Duration)
}

func TestSolveRunRepository_ListHonorsLimit(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSolveRunRepository(db)
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := project.NewSolveRun("p-1", planning.NoSolution{Reason: "infeasible"}, planning.Diagnostics{}, false, 0, at.Add(time.Duration(i)*time.Second))
		require.NoError(t, repo.Record(context.Background(), run))
	}

	runs, err := repo.ListByProject(context.Background(), "p-1", 2)

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "infeasible", runs[0].Reason)
	assert.True(t, runs[0].SolvedAt.After(runs[1].SolvedAt))
}
