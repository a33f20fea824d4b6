package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

// GetProjectQuery represents a query to get a project by id or name
type GetProjectQuery struct {
	ProjectRef string
}

// GetProjectResponse represents the result of getting a project
type GetProjectResponse struct {
	Project *project.Project
}

// GetProjectHandler handles the GetProject query
type GetProjectHandler struct {
	resolver *services.ProjectResolver
}

// NewGetProjectHandler creates a new GetProjectHandler
func NewGetProjectHandler(resolver *services.ProjectResolver) *GetProjectHandler {
	return &GetProjectHandler{resolver: resolver}
}

// Handle executes the GetProject query
func (h *GetProjectHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetProjectQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProjectQuery")
	}

	p, err := h.resolver.Resolve(ctx, query.ProjectRef)
	if err != nil {
		return nil, err
	}
	return &GetProjectResponse{Project: p}, nil
}

// ListProjectsQuery lists every project, most recently updated first
type ListProjectsQuery struct{}

// ListProjectsResponse represents the result of listing projects
type ListProjectsResponse struct {
	Projects []*project.Project
}

// ListProjectsHandler handles the ListProjects query
type ListProjectsHandler struct {
	repo project.ProjectRepository
}

// NewListProjectsHandler creates a new ListProjectsHandler
func NewListProjectsHandler(repo project.ProjectRepository) *ListProjectsHandler {
	return &ListProjectsHandler{repo: repo}
}

// Handle executes the ListProjects query
func (h *ListProjectsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListProjectsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListProjectsQuery")
	}

	projects, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return &ListProjectsResponse{Projects: projects}, nil
}
