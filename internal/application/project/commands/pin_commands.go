package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

// PinMaterialCommand pins an input limit or an output target
type PinMaterialCommand struct {
	ProjectRef string
	Direction  string // input or output
	Material   string // e.g. "item:iron-plate"
	Amount     float64
}

// UnpinMaterialCommand removes a pin; unpinning a free material is not an error
type UnpinMaterialCommand struct {
	ProjectRef string
	Direction  string
	Material   string
}

// PinResponse is returned by both pin commands
type PinResponse struct {
	ProjectID string
	Direction planning.Direction
	Material  material.Key
	Amount    float64
	Pinned    bool
}

// PinHandler handles PinMaterial and UnpinMaterial
type PinHandler struct {
	mutator projectMutator
}

// NewPinHandler creates a new PinHandler
func NewPinHandler(resolver *services.ProjectResolver, repo project.ProjectRepository, guard *services.CatalogGuard) *PinHandler {
	return &PinHandler{mutator: projectMutator{resolver: resolver, repo: repo, guard: guard}}
}

// Handle executes PinMaterial or UnpinMaterial
func (h *PinHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch cmd := request.(type) {
	case *PinMaterialCommand:
		direction, key, err := parsePin(cmd.Direction, cmd.Material)
		if err != nil {
			return nil, err
		}
		p, err := h.mutator.mutate(ctx, cmd.ProjectRef, func(p *project.Project) error {
			return p.Pin(direction, key, cmd.Amount)
		})
		if err != nil {
			return nil, err
		}
		return &PinResponse{ProjectID: p.ID(), Direction: direction, Material: key, Amount: cmd.Amount, Pinned: true}, nil

	case *UnpinMaterialCommand:
		direction, key, err := parsePin(cmd.Direction, cmd.Material)
		if err != nil {
			return nil, err
		}
		p, err := h.mutator.mutate(ctx, cmd.ProjectRef, func(p *project.Project) error {
			p.Unpin(direction, key)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &PinResponse{ProjectID: p.ID(), Direction: direction, Material: key}, nil

	default:
		return nil, fmt.Errorf("invalid request type: expected a pin command, got %T", request)
	}
}

func parsePin(direction, id string) (planning.Direction, material.Key, error) {
	d, err := planning.ParseDirection(direction)
	if err != nil {
		return "", material.Key{}, err
	}
	key, err := material.ParseKey(id)
	if err != nil {
		return "", material.Key{}, err
	}
	return d, key, nil
}
