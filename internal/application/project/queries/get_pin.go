package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
)

// GetPinQuery looks up the pinned amount of one material
type GetPinQuery struct {
	ProjectRef string
	Direction  string // input or output
	Material   string // material id, e.g. "fluid:water"
}

// GetPinResponse reports the pin; Pinned is false for a free material
type GetPinResponse struct {
	Direction planning.Direction
	Pin       planning.Pin
	Pinned    bool
}

// GetPinHandler handles the GetPin query
type GetPinHandler struct {
	resolver *services.ProjectResolver
}

// NewGetPinHandler creates a new GetPinHandler
func NewGetPinHandler(resolver *services.ProjectResolver) *GetPinHandler {
	return &GetPinHandler{resolver: resolver}
}

// Handle executes the GetPin query. A malformed material id is an error.
func (h *GetPinHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPinQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPinQuery")
	}

	direction, err := planning.ParseDirection(query.Direction)
	if err != nil {
		return nil, err
	}
	p, err := h.resolver.Resolve(ctx, query.ProjectRef)
	if err != nil {
		return nil, err
	}

	var (
		pin    planning.Pin
		pinned bool
	)
	if direction == planning.DirectionInput {
		pin, pinned, err = p.Model().GetInput(query.Material)
	} else {
		pin, pinned, err = p.Model().GetOutput(query.Material)
	}
	if err != nil {
		return nil, err
	}
	return &GetPinResponse{Direction: direction, Pin: pin, Pinned: pinned}, nil
}
