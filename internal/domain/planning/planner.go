package planning

import (
	"errors"
	"math"

	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
)

// DefaultTolerance is the spread above which a probed material counts as non-unique
const DefaultTolerance = 1e-6

// Planner solves Models against a catalog using a LinearSolver.
// It holds no per-solve state and may be shared.
type Planner struct {
	solver    LinearSolver
	tolerance float64
}

// Option configures a Planner
type Option func(*Planner)

// WithTolerance overrides DefaultTolerance. Non-positive values are ignored.
func WithTolerance(tolerance float64) Option {
	return func(p *Planner) {
		if tolerance > 0 {
			p.tolerance = tolerance
		}
	}
}

// NewPlanner creates a planner backed by solver
func NewPlanner(solver LinearSolver, opts ...Option) *Planner {
	p := &Planner{solver: solver, tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tolerance returns the configured spread tolerance
func (pl *Planner) Tolerance() float64 {
	return pl.tolerance
}

// Diagnostics describes what a solve did
type Diagnostics struct {
	Variables      int
	Constraints    int
	DiscoveredVars int
	OutputVars     int
	SolverCalls    int
	Spreads        []Spread // every probe, including those within tolerance
	Failure        error    // why the result is NoSolution, if it is
}

// Solve computes the production plan of model.
//
// The caller must hold exclusive access to model for the duration. With generateInputs,
// materials that nothing produces and nobody pinned are supplied externally as needed, and
// their minimal amounts are written back into model.Inputs.
func (pl *Planner) Solve(cat *catalog.Catalog, model *Model, generateInputs bool) Result {
	result, _ := pl.SolveWithDiagnostics(cat, model, generateInputs)
	return result
}

// SolveWithDiagnostics is Solve, also reporting problem size, solver calls and spreads
func (pl *Planner) SolveWithDiagnostics(cat *catalog.Catalog, model *Model, generateInputs bool) (Result, Diagnostics) {
	model.ensureMaps()
	f := formulate(cat, model, generateInputs)

	d := Diagnostics{
		Variables:      len(f.base.Variables),
		Constraints:    len(f.base.Constraints),
		DiscoveredVars: len(f.inputs),
		OutputVars:     len(f.outputs),
	}

	d.SolverCalls++
	primary, err := pl.solver.Solve(f.primary())
	if err != nil {
		d.Failure = err
		return NoSolution{Reason: reason(err)}, d
	}

	inputs, outputs, err := pl.probeAll(f, generateInputs, &d)
	if err != nil {
		d.Failure = err
		return NoSolution{Reason: reason(err)}, d
	}
	d.Spreads = append(append(d.Spreads, inputs...), outputs...)

	if generateInputs {
		for _, s := range inputs {
			model.Inputs[s.Variable.Material] = math.Max(0, s.Min)
		}
	}

	return assemble(model, f, primary, inputs, outputs, pl.tolerance), d
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrInfeasible):
		return "infeasible"
	case errors.Is(err, ErrUnbounded):
		return "unbounded"
	}
	return "solver error: " + err.Error()
}
