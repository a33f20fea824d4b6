package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

// DeleteProjectCommand removes a project and its solve history
type DeleteProjectCommand struct {
	ProjectRef string
}

// DeleteProjectResponse represents the result of deleting a project
type DeleteProjectResponse struct {
	ProjectID string
}

// DeleteProjectHandler handles the DeleteProject command
type DeleteProjectHandler struct {
	resolver *services.ProjectResolver
	repo     project.ProjectRepository
	guard    *services.CatalogGuard
}

// NewDeleteProjectHandler creates a new DeleteProjectHandler
func NewDeleteProjectHandler(resolver *services.ProjectResolver, repo project.ProjectRepository, guard *services.CatalogGuard) *DeleteProjectHandler {
	return &DeleteProjectHandler{resolver: resolver, repo: repo, guard: guard}
}

// Handle executes the DeleteProject command
func (h *DeleteProjectHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeleteProjectCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeleteProjectCommand")
	}

	p, err := h.resolver.Resolve(ctx, cmd.ProjectRef)
	if err != nil {
		return nil, err
	}

	release := h.guard.Lock(p.ID())
	err = h.repo.Delete(ctx, p.ID())
	release()
	if err != nil {
		return nil, err
	}
	h.guard.Forget(p.ID())

	return &DeleteProjectResponse{ProjectID: p.ID()}, nil
}
