package planning

import (
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
)

// assemble turns the primary solution and probe spreads into a Result.
// Only spreads wider than tolerance are reported; inputs report their minimum and
// outputs their maximum.
func assemble(model *Model, f *formulation, primary *Solution, inputs, outputs []Spread, tolerance float64) Result {
	lower := make(map[material.Key]float64)
	higher := make(map[material.Key]float64)

	for _, s := range inputs {
		if s.Width() > tolerance {
			lower[s.Variable.Material] = s.Min
		}
	}
	for _, s := range outputs {
		if s.Width() > tolerance {
			higher[s.Variable.Material] = s.Max
		}
	}

	if len(lower) > 0 || len(higher) > 0 {
		return MultipleSolutions{LowerBounds: lower, HigherBounds: higher}
	}

	rates := make(map[process.Key]float64, len(model.Processes))
	processes := make([]process.Process, 0, len(model.Processes))
	for i, p := range model.Processes {
		rates[p.Key()] = clampZero(primary.Value(f.rates[i]))
		processes = append(processes, p)
	}
	return OneSolution{Rates: rates, Processes: processes}
}

// clampZero removes tiny negative noise left by the solver
func clampZero(v float64) float64 {
	if v < 0 && v > -1e-9 {
		return 0
	}
	return v
}
