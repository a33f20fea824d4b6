package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

// ListSolveRunsQuery returns a project's recent solve history
type ListSolveRunsQuery struct {
	ProjectRef string
	Limit      int // 0 means all
}

// ListSolveRunsResponse represents the solve history, newest first
type ListSolveRunsResponse struct {
	ProjectID string
	Runs      []*project.SolveRun
}

// ListSolveRunsHandler handles the ListSolveRuns query
type ListSolveRunsHandler struct {
	resolver *services.ProjectResolver
	history  project.SolveHistoryRepository
}

// NewListSolveRunsHandler creates a new ListSolveRunsHandler
func NewListSolveRunsHandler(resolver *services.ProjectResolver, history project.SolveHistoryRepository) *ListSolveRunsHandler {
	return &ListSolveRunsHandler{resolver: resolver, history: history}
}

// Handle executes the ListSolveRuns query
func (h *ListSolveRunsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListSolveRunsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListSolveRunsQuery")
	}
	if query.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative")
	}

	p, err := h.resolver.Resolve(ctx, query.ProjectRef)
	if err != nil {
		return nil, err
	}
	runs, err := h.history.ListByProject(ctx, p.ID(), query.Limit)
	if err != nil {
		return nil, err
	}
	return &ListSolveRunsResponse{ProjectID: p.ID(), Runs: runs}, nil
}
