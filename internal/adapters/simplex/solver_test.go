package simplex_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/simplex"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
)

const eps = 1e-6

func TestSolve_MinimizeWithGreaterEq(t *testing.T) {
	// Arrange: min x + y  s.t. x + 2y >= 4, 3x + y >= 6
	p := &planning.Problem{}
	x := p.AddVariable("x", 0)
	y := p.AddVariable("y", 0)
	p.AddConstraint(planning.Constraint{Terms: []planning.Term{{Var: x, Coef: 1}, {Var: y, Coef: 2}}, Relation: planning.GreaterEq, RHS: 4})
	p.AddConstraint(planning.Constraint{Terms: []planning.Term{{Var: x, Coef: 3}, {Var: y, Coef: 1}}, Relation: planning.GreaterEq, RHS: 6})
	p.Objective = planning.Objective{Sense: planning.Minimize, Terms: []planning.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}}

	// Act
	sol, err := simplex.NewSolver(0).Solve(p)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 1.6, sol.Value(x), eps)
	assert.InDelta(t, 1.2, sol.Value(y), eps)
	assert.InDelta(t, 2.8, sol.Objective, eps)
}

func TestSolve_MaximizeWithLessEq(t *testing.T) {
	// max 3x + 2y  s.t. x + y <= 4, x + 3y <= 6, x <= 3
	p := &planning.Problem{}
	x := p.AddVariable("x", 0)
	y := p.AddVariable("y", 0)
	p.AddConstraint(planning.Constraint{Terms: []planning.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}, Relation: planning.LessEq, RHS: 4})
	p.AddConstraint(planning.Constraint{Terms: []planning.Term{{Var: x, Coef: 1}, {Var: y, Coef: 3}}, Relation: planning.LessEq, RHS: 6})
	p.Variables[x].Upper = 3
	p.Objective = planning.Objective{Sense: planning.Maximize, Terms: []planning.Term{{Var: x, Coef: 3}, {Var: y, Coef: 2}}}

	sol, err := simplex.NewSolver(0).Solve(p)

	require.NoError(t, err)
	assert.InDelta(t, 3, sol.Value(x), eps)
	assert.InDelta(t, 1, sol.Value(y), eps)
	assert.InDelta(t, 11, sol.Objective, eps)
}

func TestSolve_LowerBoundsAreShifted(t *testing.T) {
	// min x  s.t. x - y >= 0, y >= 100
	p := &planning.Problem{}
	x := p.AddVariable("x", 0)
	y := p.AddVariable("y", 100)
	p.AddConstraint(planning.Constraint{Terms: []planning.Term{{Var: x, Coef: 1}, {Var: y, Coef: -1}}, Relation: planning.GreaterEq})
	p.Objective = planning.Objective{Sense: planning.Minimize, Terms: []planning.Term{{Var: x, Coef: 1}}}

	sol, err := simplex.NewSolver(0).Solve(p)

	require.NoError(t, err)
	assert.InDelta(t, 100, sol.Value(x), eps)
	assert.InDelta(t, 100, sol.Value(y), eps)
}

func TestSolve_Infeasible(t *testing.T) {
	// x >= 0, -x >= 5
	p := &planning.Problem{}
	x := p.AddVariable("x", 0)
	p.AddConstraint(planning.Constraint{Terms: []planning.Term{{Var: x, Coef: -1}}, Relation: planning.GreaterEq, RHS: 5})
	p.Objective = planning.Objective{Terms: []planning.Term{{Var: x, Coef: 1}}}

	_, err := simplex.NewSolver(0).Solve(p)

	assert.True(t, errors.Is(err, planning.ErrInfeasible), "got %v", err)
}

func TestSolve_EmptyRowThatCannotHold(t *testing.T) {
	// 0 >= 50
	p := &planning.Problem{}
	p.AddVariable("unused", 0)
	p.AddConstraint(planning.Constraint{Name: "item:gear", Relation: planning.GreaterEq, RHS: 50})

	_, err := simplex.NewSolver(0).Solve(p)

	assert.True(t, errors.Is(err, planning.ErrInfeasible), "got %v", err)
}

func TestSolve_Unbounded(t *testing.T) {
	// max x  s.t. x - y >= 0
	p := &planning.Problem{}
	x := p.AddVariable("x", 0)
	y := p.AddVariable("y", 0)
	p.AddConstraint(planning.Constraint{Terms: []planning.Term{{Var: x, Coef: 1}, {Var: y, Coef: -1}}, Relation: planning.GreaterEq})
	p.Objective = planning.Objective{Sense: planning.Maximize, Terms: []planning.Term{{Var: x, Coef: 1}}}

	_, err := simplex.NewSolver(0).Solve(p)

	assert.True(t, errors.Is(err, planning.ErrUnbounded), "got %v", err)
}

func TestSolve_UnconstrainedVariables(t *testing.T) {
	t.Run("minimized sits at lower bound", func(t *testing.T) {
		p := &planning.Problem{}
		x := p.AddVariable("x", 7)
		p.Objective = planning.Objective{Terms: []planning.Term{{Var: x, Coef: 1}}}

		sol, err := simplex.NewSolver(0).Solve(p)

		require.NoError(t, err)
		assert.Equal(t, 7.0, sol.Value(x))
		assert.Equal(t, 7.0, sol.Objective)
	})

	t.Run("maximized is unbounded", func(t *testing.T) {
		p := &planning.Problem{}
		x := p.AddVariable("x", 0)
		p.Objective = planning.Objective{Sense: planning.Maximize, Terms: []planning.Term{{Var: x, Coef: 1}}}

		_, err := simplex.NewSolver(0).Solve(p)

		assert.True(t, errors.Is(err, planning.ErrUnbounded), "got %v", err)
	})
}

func TestSolve_DoesNotMutateProblem(t *testing.T) {
	p := &planning.Problem{}
	x := p.AddVariable("x", 2)
	p.AddConstraint(planning.Constraint{Terms: []planning.Term{{Var: x, Coef: 1}}, Relation: planning.GreaterEq, RHS: 3})
	p.Objective = planning.Objective{Terms: []planning.Term{{Var: x, Coef: 1}}}
	before := p.Clone()

	_, err := simplex.NewSolver(0).Solve(p)

	require.NoError(t, err)
	assert.Equal(t, before, p)
}

func TestSolve_RejectsInvalidProblem(t *testing.T) {
	p := &planning.Problem{}
	p.AddVariable("x", math.Inf(-1))

	_, err := simplex.NewSolver(0).Solve(p)

	require.Error(t, err)
	assert.False(t, errors.Is(err, planning.ErrInfeasible))
}
