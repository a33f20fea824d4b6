package project

import (
	"time"

	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
)

// SolveRun is an immutable record of one solve
type SolveRun struct {
	ProjectID      string
	Outcome        planning.ResultKind
	Reason         string
	GenerateInputs bool
	SolverCalls    int
	Duration       time.Duration
	Result         planning.Result
	SolvedAt       time.Time
}

// NewSolveRun captures a solve outcome at the given time
func NewSolveRun(projectID string, result planning.Result, diag planning.Diagnostics, generateInputs bool, duration time.Duration, at time.Time) *SolveRun {
	run := &SolveRun{
		ProjectID:      projectID,
		Outcome:        result.Kind(),
		GenerateInputs: generateInputs,
		SolverCalls:    diag.SolverCalls,
		Duration:       duration,
		Result:         result,
		SolvedAt:       at,
	}
	if ns, ok := result.(planning.NoSolution); ok {
		run.Reason = ns.Reason
	}
	return run
}
