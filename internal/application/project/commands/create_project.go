package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/application/logging"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
	"github.com/andrescamacho/factory-planner-go/pkg/utils"
)

// CreateProjectCommand creates an empty project, optionally seeded with a catalog dump
type CreateProjectCommand struct {
	Name        string
	CatalogPath string // optional
}

// CreateProjectResponse represents the result of creating a project
type CreateProjectResponse struct {
	Project *project.Project
}

// CreateProjectHandler handles the CreateProject command
type CreateProjectHandler struct {
	repo   project.ProjectRepository
	loader CatalogLoader
	clock  shared.Clock
}

// NewCreateProjectHandler creates a new CreateProjectHandler
func NewCreateProjectHandler(repo project.ProjectRepository, loader CatalogLoader, clock shared.Clock) *CreateProjectHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CreateProjectHandler{repo: repo, loader: loader, clock: clock}
}

// Handle executes the CreateProject command
func (h *CreateProjectHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateProjectCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateProjectCommand")
	}

	var cat *catalog.Catalog
	if cmd.CatalogPath != "" {
		if h.loader == nil {
			return nil, fmt.Errorf("catalog import is not available")
		}
		loaded, err := h.loader.LoadCatalog(cmd.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		cat = loaded
	}

	p, err := project.NewProject(utils.GenerateProjectID(cmd.Name), cmd.Name, cat, h.clock)
	if err != nil {
		return nil, err
	}
	if err := h.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log("info", "project created", map[string]interface{}{
		"project_id": p.ID(),
		"name":       p.Name(),
	})
	return &CreateProjectResponse{Project: p}, nil
}
