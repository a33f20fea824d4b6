package commands

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/andrescamacho/factory-planner-go/internal/application/logging"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
)

// SolveModelCommand solves a project's model.
// With GenerateInputs, inputs nothing produces are discovered and written back into the project.
type SolveModelCommand struct {
	ProjectRef     string
	GenerateInputs bool
}

// SolveModelResponse carries the result, solver diagnostics and, for a unique solution,
// the machines each process needs.
type SolveModelResponse struct {
	ProjectID   string
	Result      planning.Result
	Diagnostics planning.Diagnostics
	Machines    []planning.MachineRequirement
	Duration    time.Duration
}

// SolveModelHandler handles the SolveModel command
type SolveModelHandler struct {
	resolver *services.ProjectResolver
	repo     project.ProjectRepository
	history  project.SolveHistoryRepository
	guard    *services.CatalogGuard
	planner  *planning.Planner
	recorder SolveRecorder
	clock    shared.Clock
}

// NewSolveModelHandler creates a new SolveModelHandler. history and recorder may be nil.
func NewSolveModelHandler(
	resolver *services.ProjectResolver,
	repo project.ProjectRepository,
	history project.SolveHistoryRepository,
	guard *services.CatalogGuard,
	planner *planning.Planner,
	recorder SolveRecorder,
	clock shared.Clock,
) *SolveModelHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SolveModelHandler{
		resolver: resolver,
		repo:     repo,
		history:  history,
		guard:    guard,
		planner:  planner,
		recorder: recorder,
		clock:    clock,
	}
}

// Handle executes the SolveModel command
func (h *SolveModelHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SolveModelCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SolveModelCommand")
	}

	resolved, err := h.resolver.Resolve(ctx, cmd.ProjectRef)
	if err != nil {
		return nil, err
	}

	// Generating writes the discovered inputs back into the project
	lock := h.guard.RLock
	if cmd.GenerateInputs {
		lock = h.guard.Lock
	}
	release := lock(resolved.ID())
	defer release()

	p, err := h.repo.FindByID(ctx, resolved.ID())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, diag, err := p.Solve(h.planner, cmd.GenerateInputs)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare solve: %w", err)
	}
	elapsed := time.Since(start)

	h.logSolve(ctx, p.ID(), cmd.GenerateInputs, result, diag, elapsed)
	if h.recorder != nil {
		h.recorder.RecordSolve(string(result.Kind()), cmd.GenerateInputs, elapsed.Seconds(),
			diag.Variables, diag.Constraints, countSpreads(diag, h.planner.Tolerance()))
	}

	if cmd.GenerateInputs {
		if err := h.repo.Update(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to save generated inputs: %w", err)
		}
	}

	if h.history != nil {
		run := project.NewSolveRun(p.ID(), result, diag, cmd.GenerateInputs, elapsed, h.clock.Now())
		if err := h.history.Record(ctx, run); err != nil {
			logging.LoggerFromContext(ctx).Log("warning", "failed to record solve run", map[string]interface{}{
				"project_id": p.ID(),
				"error":      err.Error(),
			})
		}
	}

	response := &SolveModelResponse{
		ProjectID:   p.ID(),
		Result:      result,
		Diagnostics: diag,
		Duration:    elapsed,
	}
	if one, ok := result.(planning.OneSolution); ok {
		machines, err := planning.MachineRequirements(p.Catalog(), one, p.Settings())
		if err != nil {
			return nil, fmt.Errorf("failed to compute machine report: %w", err)
		}
		response.Machines = machines
	}
	return response, nil
}

func (h *SolveModelHandler) logSolve(ctx context.Context, projectID string, generateInputs bool, result planning.Result, diag planning.Diagnostics, elapsed time.Duration) {
	logger := logging.LoggerFromContext(ctx)

	logger.Log("debug", "model formulated", map[string]interface{}{
		"project_id":      projectID,
		"variables":       diag.Variables,
		"constraints":     diag.Constraints,
		"discovered_vars": diag.DiscoveredVars,
		"output_vars":     diag.OutputVars,
	})
	for _, s := range diag.Spreads {
		max := interface{}(s.Max)
		if math.IsInf(s.Max, 1) {
			max = "unbounded"
		}
		logger.Log("debug", "material probed", map[string]interface{}{
			"project_id": projectID,
			"material":   s.Material().ID(),
			"direction":  string(s.Direction),
			"min":        s.Min,
			"max":        max,
		})
	}

	metadata := map[string]interface{}{
		"project_id":      projectID,
		"outcome":         string(result.Kind()),
		"generate_inputs": generateInputs,
		"solver_calls":    diag.SolverCalls,
		"duration_ms":     elapsed.Milliseconds(),
	}
	if diag.Failure != nil {
		metadata["failure"] = diag.Failure.Error()
		logger.Log("warning", "model has no solution", metadata)
		return
	}
	logger.Log("info", "model solved", metadata)
}

func countSpreads(diag planning.Diagnostics, tolerance float64) int {
	n := 0
	for _, s := range diag.Spreads {
		if s.Width() > tolerance {
			n++
		}
	}
	return n
}
