package metrics

import (
	"errors"
	"time"

	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
)

// InstrumentedSolver decorates a LinearSolver with call counts and timings
type InstrumentedSolver struct {
	inner    planning.LinearSolver
	recorder PlanningMetricsRecorder
}

// NewInstrumentedSolver wraps inner. A nil recorder reports through the global collector.
func NewInstrumentedSolver(inner planning.LinearSolver, recorder PlanningMetricsRecorder) *InstrumentedSolver {
	return &InstrumentedSolver{inner: inner, recorder: recorder}
}

// Solve delegates to the wrapped solver and records the outcome
func (s *InstrumentedSolver) Solve(p *planning.Problem) (*planning.Solution, error) {
	start := time.Now()
	sol, err := s.inner.Solve(p)
	elapsed := time.Since(start).Seconds()

	status := lpStatus(err)
	if s.recorder != nil {
		s.recorder.RecordLPCall(status, elapsed)
	} else {
		RecordLPCall(status, elapsed)
	}
	return sol, err
}

func lpStatus(err error) string {
	switch {
	case err == nil:
		return "optimal"
	case errors.Is(err, planning.ErrInfeasible):
		return "infeasible"
	case errors.Is(err, planning.ErrUnbounded):
		return "unbounded"
	default:
		return "error"
	}
}
