package planning

import (
	"errors"
	"fmt"
	"math"

	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
)

// Spread is the achievable range of a probed material variable
type Spread struct {
	Variable  probedVariable
	Direction Direction
	Min       float64
	Max       float64
}

// Material returns the probed material
func (s Spread) Material() material.Key {
	return s.Variable.Material
}

// Width returns Max - Min (+Inf when the maximum is unbounded)
func (s Spread) Width() float64 {
	return s.Max - s.Min
}

// probeRange solves two fresh copies of the system, minimizing then maximizing v.
// With maximize false only the minimum is computed and Max = Min.
// An unbounded maximum is reported as +Inf.
func (pl *Planner) probeRange(f *formulation, v probedVariable, maximize bool, d *Diagnostics) (Spread, error) {
	d.SolverCalls++
	low, err := pl.solver.Solve(f.probe(v.Var, Minimize))
	if err != nil {
		return Spread{}, fmt.Errorf("minimizing %s: %w", v.Material, err)
	}
	spread := Spread{Variable: v, Min: low.Value(v.Var), Max: low.Value(v.Var)}

	if !maximize {
		return spread, nil
	}

	d.SolverCalls++
	high, err := pl.solver.Solve(f.probe(v.Var, Maximize))
	switch {
	case errors.Is(err, ErrUnbounded):
		spread.Max = math.Inf(1)
	case err != nil:
		return Spread{}, fmt.Errorf("maximizing %s: %w", v.Material, err)
	default:
		spread.Max = high.Value(v.Var)
	}
	return spread, nil
}

// probeAll measures every discovered input and every output variable.
// Maximization is skipped while inputs are being generated.
func (pl *Planner) probeAll(f *formulation, generateInputs bool, d *Diagnostics) (inputs, outputs []Spread, err error) {
	for _, v := range f.inputs {
		s, err := pl.probeRange(f, v, !generateInputs, d)
		if err != nil {
			return nil, nil, err
		}
		s.Direction = DirectionInput
		inputs = append(inputs, s)
	}
	for _, v := range f.outputs {
		s, err := pl.probeRange(f, v, !generateInputs, d)
		if err != nil {
			return nil, nil, err
		}
		s.Direction = DirectionOutput
		outputs = append(outputs, s)
	}
	return inputs, outputs, nil
}
