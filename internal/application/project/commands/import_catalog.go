package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/application/logging"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

// ImportCatalogCommand replaces a project's catalog snapshot with a freshly loaded dump.
// Either Path or Catalog must be set; Catalog wins when both are.
type ImportCatalogCommand struct {
	ProjectRef string
	Path       string
	Catalog    *catalog.Catalog
}

// ImportCatalogResponse reports what the new catalog contains
type ImportCatalogResponse struct {
	ProjectID string
	Summary   catalog.Summary
}

// ImportCatalogHandler handles the ImportCatalog command
type ImportCatalogHandler struct {
	mutator projectMutator
	loader  CatalogLoader
}

// NewImportCatalogHandler creates a new ImportCatalogHandler
func NewImportCatalogHandler(
	resolver *services.ProjectResolver,
	repo project.ProjectRepository,
	guard *services.CatalogGuard,
	loader CatalogLoader,
) *ImportCatalogHandler {
	return &ImportCatalogHandler{
		mutator: projectMutator{resolver: resolver, repo: repo, guard: guard},
		loader:  loader,
	}
}

// Handle executes the ImportCatalog command.
// The dump is parsed before the project lock is taken.
func (h *ImportCatalogHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportCatalogCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportCatalogCommand")
	}

	cat := cmd.Catalog
	if cat == nil {
		if cmd.Path == "" {
			return nil, fmt.Errorf("catalog path is required")
		}
		if h.loader == nil {
			return nil, fmt.Errorf("catalog import is not available")
		}
		loaded, err := h.loader.LoadCatalog(cmd.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		cat = loaded
	}

	p, err := h.mutator.mutate(ctx, cmd.ProjectRef, func(p *project.Project) error {
		return p.ReplaceCatalog(cat)
	})
	if err != nil {
		return nil, err
	}

	summary := cat.Summary()
	logging.LoggerFromContext(ctx).Log("info", "catalog imported", map[string]interface{}{
		"project_id": p.ID(),
		"recipes":    summary.Recipes,
		"resources":  summary.Resources,
		"plants":     summary.Plants,
	})
	return &ImportCatalogResponse{ProjectID: p.ID(), Summary: summary}, nil
}
