package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/application/logging"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

// ImportPlanCommand applies a plan file to a project in one step
type ImportPlanCommand struct {
	ProjectRef string
	Path       string
}

// ImportPlanResponse represents the result of applying a plan
type ImportPlanResponse struct {
	ProjectID string
	Processes []process.Process
	Inputs    int
	Outputs   int
}

// ImportPlanHandler handles the ImportPlan command
type ImportPlanHandler struct {
	mutator projectMutator
	loader  PlanLoader
}

// NewImportPlanHandler creates a new ImportPlanHandler
func NewImportPlanHandler(
	resolver *services.ProjectResolver,
	repo project.ProjectRepository,
	guard *services.CatalogGuard,
	loader PlanLoader,
) *ImportPlanHandler {
	return &ImportPlanHandler{
		mutator: projectMutator{resolver: resolver, repo: repo, guard: guard},
		loader:  loader,
	}
}

// Handle executes the ImportPlan command
func (h *ImportPlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportPlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportPlanCommand")
	}
	if cmd.Path == "" {
		return nil, fmt.Errorf("plan path is required")
	}
	if h.loader == nil {
		return nil, fmt.Errorf("plan import is not available")
	}

	plan, err := h.loader.LoadPlan(cmd.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	p, err := h.mutator.mutate(ctx, cmd.ProjectRef, func(p *project.Project) error {
		return p.ApplyPlan(*plan)
	})
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log("info", "plan applied", map[string]interface{}{
		"project_id": p.ID(),
		"path":       cmd.Path,
		"processes":  len(plan.Processes),
	})
	return &ImportPlanResponse{
		ProjectID: p.ID(),
		Processes: p.Processes(),
		Inputs:    len(p.Model().Inputs),
		Outputs:   len(p.Model().Outputs),
	}, nil
}
