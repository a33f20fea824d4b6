package planning

import (
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
)

// ResultKind names the variant of a Result
type ResultKind string

const (
	ResultNoSolution        ResultKind = "no_solution"
	ResultOneSolution       ResultKind = "one_solution"
	ResultMultipleSolutions ResultKind = "multiple_solutions"
)

// Result is the outcome of a solve: NoSolution, OneSolution or MultipleSolutions.
// The set of variants is closed.
type Result interface {
	Kind() ResultKind
	isResult()
}

// NoSolution reports that the constraints cannot be met
type NoSolution struct {
	// Reason is a short diagnostic (infeasible, unbounded, backend error); not part of identity
	Reason string
}

func (NoSolution) Kind() ResultKind { return ResultNoSolution }
func (NoSolution) isResult()        {}

// OneSolution maps every selected process to its unique activation rate
type OneSolution struct {
	Rates     map[process.Key]float64
	Processes []process.Process
}

func (OneSolution) Kind() ResultKind { return ResultOneSolution }
func (OneSolution) isResult()        {}

// Rate returns the activation rate of a process, 0 if it is not part of the solution
func (s OneSolution) Rate(key process.Key) float64 {
	return s.Rates[key]
}

// MultipleSolutions reports the materials whose optimal amount is not unique.
// LowerBounds holds the minimum for inputs, HigherBounds the maximum for outputs; a
// maximum may be +Inf when production is unbounded.
type MultipleSolutions struct {
	LowerBounds  map[material.Key]float64
	HigherBounds map[material.Key]float64
}

func (MultipleSolutions) Kind() ResultKind { return ResultMultipleSolutions }
func (MultipleSolutions) isResult()        {}
