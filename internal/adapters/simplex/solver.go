// Package simplex adapts gonum's simplex implementation to planning.LinearSolver.
package simplex

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
)

// DefaultTolerance is passed to lp.Simplex when no tolerance is configured
const DefaultTolerance = 1e-10

// Solver solves planning.Problems with lp.Simplex. It is stateless.
type Solver struct {
	tol float64
}

// NewSolver creates a solver. A non-positive tol selects DefaultTolerance.
func NewSolver(tol float64) *Solver {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return &Solver{tol: tol}
}

// row is one constraint over the shifted variables y = x - lower
type row struct {
	coefs    map[int]float64
	relation planning.Relation
	rhs      float64
}

// Solve converts p to standard form (A·x = b, x ≥ 0) and runs the simplex method.
//
// Lower bounds are shifted out, finite upper bounds become rows, every inequality gets a
// slack column, and variables that appear in no row are fixed at their lower bound.
func (s *Solver) Solve(p *planning.Problem) (sol *planning.Solution, err error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("simplex: invalid problem: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			sol, err = nil, fmt.Errorf("simplex: backend panic: %v", r)
		}
	}()

	n := len(p.Variables)
	lower := make([]float64, n)
	for j, v := range p.Variables {
		lower[j] = v.Lower
	}

	// Objective in minimization form
	cost := make([]float64, n)
	for _, t := range p.Objective.Terms {
		cost[t.Var] += t.Coef
	}
	if p.Objective.Sense == planning.Maximize {
		for j := range cost {
			cost[j] = -cost[j]
		}
	}

	rows := make([]row, 0, len(p.Constraints)+n)
	for _, c := range p.Constraints {
		r := row{coefs: make(map[int]float64, len(c.Terms)), relation: c.Relation, rhs: c.RHS}
		for _, t := range c.Terms {
			r.coefs[int(t.Var)] += t.Coef
			r.rhs -= t.Coef * lower[t.Var]
		}
		rows = append(rows, r)
	}
	for j, v := range p.Variables {
		if !math.IsInf(v.Upper, 1) {
			rows = append(rows, row{
				coefs:    map[int]float64{j: 1},
				relation: planning.LessEq,
				rhs:      v.Upper - v.Lower,
			})
		}
	}

	// Drop rows with no variables after checking they hold at y = 0
	kept := rows[:0]
	for _, r := range rows {
		if hasNonZero(r.coefs) {
			kept = append(kept, r)
			continue
		}
		if !holdsAtZero(r, s.tol) {
			return nil, planning.ErrInfeasible
		}
	}
	rows = kept

	// Columns for variables that appear in some row; others sit at their lower bound
	column := make([]int, n)
	cols := 0
	for j := range column {
		column[j] = -1
	}
	for _, r := range rows {
		for j, a := range r.coefs {
			if a != 0 && column[j] < 0 {
				column[j] = 0
			}
		}
	}
	for j := range column {
		if column[j] == 0 {
			column[j] = cols
			cols++
			continue
		}
		if cost[j] < 0 {
			return nil, fmt.Errorf("variable %s is unconstrained: %w", p.Variables[j].Name, planning.ErrUnbounded)
		}
	}

	y := make([]float64, n)
	if len(rows) > 0 {
		x, err := s.solveStandardForm(rows, column, cols, cost)
		if err != nil {
			return nil, err
		}
		for j, col := range column {
			if col >= 0 {
				y[j] = x[col]
			}
		}
	}

	values := make([]float64, n)
	objective := 0.0
	for j := range values {
		values[j] = lower[j] + y[j]
	}
	for _, t := range p.Objective.Terms {
		objective += t.Coef * values[t.Var]
	}

	return &planning.Solution{Values: values, Objective: objective}, nil
}

// solveStandardForm builds [A | slacks] x = b with b ≥ 0 and calls lp.Simplex
func (s *Solver) solveStandardForm(rows []row, column []int, cols int, cost []float64) ([]float64, error) {
	slacks := 0
	for _, r := range rows {
		if r.relation != planning.Equal {
			slacks++
		}
	}

	m := len(rows)
	width := cols + slacks
	if m > width {
		return nil, fmt.Errorf("simplex: %d equality rows over %d columns", m, width)
	}

	a := mat.NewDense(m, width, nil)
	b := make([]float64, m)
	c := make([]float64, width)
	for j, col := range column {
		if col >= 0 {
			c[col] = cost[j]
		}
	}

	slack := cols
	for i, r := range rows {
		for j, coef := range r.coefs {
			if coef != 0 {
				a.Set(i, column[j], coef)
			}
		}
		switch r.relation {
		case planning.GreaterEq:
			a.Set(i, slack, -1)
			slack++
		case planning.LessEq:
			a.Set(i, slack, 1)
			slack++
		}
		b[i] = r.rhs

		if b[i] < 0 {
			for k := 0; k < width; k++ {
				a.Set(i, k, -a.At(i, k))
			}
			b[i] = -b[i]
		}
	}

	_, x, err := lp.Simplex(c, a, b, s.tol, nil)
	if err != nil {
		return nil, translate(err)
	}
	return x, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return planning.ErrInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return planning.ErrUnbounded
	}
	return fmt.Errorf("simplex: %w", err)
}

func hasNonZero(coefs map[int]float64) bool {
	for _, a := range coefs {
		if a != 0 {
			return true
		}
	}
	return false
}

// holdsAtZero evaluates an empty row: 0 <relation> rhs
func holdsAtZero(r row, tol float64) bool {
	switch r.relation {
	case planning.GreaterEq:
		return r.rhs <= tol
	case planning.LessEq:
		return r.rhs >= -tol
	}
	return math.Abs(r.rhs) <= tol
}
