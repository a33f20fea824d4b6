package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

// AddProcessCommand selects a catalog activity for the project
type AddProcessCommand struct {
	ProjectRef string
	Kind       string // resource, plant or recipe
	Name       string
}

// RemoveProcessCommand deselects an activity
type RemoveProcessCommand struct {
	ProjectRef string
	Kind       string
	Name       string
}

// ConfigureProcessCommand sets the machine, modules and beacons of a selected activity
type ConfigureProcessCommand struct {
	ProjectRef string
	Kind       string
	Name       string
	Settings   planning.ProcessSettings
}

// ProcessResponse is returned by every process command
type ProcessResponse struct {
	ProjectID string
	Process   process.Process
	Processes []process.Process
}

// ProcessHandler handles AddProcess, RemoveProcess and ConfigureProcess
type ProcessHandler struct {
	mutator projectMutator
}

// NewProcessHandler creates a new ProcessHandler
func NewProcessHandler(resolver *services.ProjectResolver, repo project.ProjectRepository, guard *services.CatalogGuard) *ProcessHandler {
	return &ProcessHandler{mutator: projectMutator{resolver: resolver, repo: repo, guard: guard}}
}

// Handle executes one of the process commands
func (h *ProcessHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	var (
		ref    string
		key    process.Key
		change func(p *project.Project) (process.Process, error)
	)

	switch cmd := request.(type) {
	case *AddProcessCommand:
		k, err := parseProcessKey(cmd.Kind, cmd.Name)
		if err != nil {
			return nil, err
		}
		ref, key = cmd.ProjectRef, k
		change = func(p *project.Project) (process.Process, error) {
			return p.AddProcess(key.Kind, key.Name)
		}

	case *RemoveProcessCommand:
		k, err := parseProcessKey(cmd.Kind, cmd.Name)
		if err != nil {
			return nil, err
		}
		ref, key = cmd.ProjectRef, k
		change = func(p *project.Project) (process.Process, error) {
			return process.New(key.Kind, key.Name), p.RemoveProcess(key)
		}

	case *ConfigureProcessCommand:
		k, err := parseProcessKey(cmd.Kind, cmd.Name)
		if err != nil {
			return nil, err
		}
		ref, key = cmd.ProjectRef, k
		settings := cmd.Settings
		change = func(p *project.Project) (process.Process, error) {
			if err := p.ConfigureProcess(key, settings); err != nil {
				return process.Process{}, err
			}
			for _, proc := range p.Processes() {
				if proc.Key() == key {
					return proc, nil
				}
			}
			return process.Process{}, fmt.Errorf("%s: %w", key, planning.ErrProcessNotSelected)
		}

	default:
		return nil, fmt.Errorf("invalid request type: expected a process command, got %T", request)
	}

	var changed process.Process
	p, err := h.mutator.mutate(ctx, ref, func(p *project.Project) error {
		proc, err := change(p)
		changed = proc
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ProcessResponse{
		ProjectID: p.ID(),
		Process:   changed,
		Processes: p.Processes(),
	}, nil
}

func parseProcessKey(kind, name string) (process.Key, error) {
	k, err := process.ParseKind(kind)
	if err != nil {
		return process.Key{}, err
	}
	if name == "" {
		return process.Key{}, fmt.Errorf("process name is required")
	}
	return process.Key{Kind: k, Name: name}, nil
}
