package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

// projectMutator loads a project under its write lock, applies a change and saves it
type projectMutator struct {
	resolver *services.ProjectResolver
	repo     project.ProjectRepository
	guard    *services.CatalogGuard
}

func (m projectMutator) mutate(ctx context.Context, ref string, change func(p *project.Project) error) (*project.Project, error) {
	resolved, err := m.resolver.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	release := m.guard.Lock(resolved.ID())
	defer release()

	// reload under the lock so concurrent writers do not lose updates
	p, err := m.repo.FindByID(ctx, resolved.ID())
	if err != nil {
		return nil, err
	}
	if err := change(p); err != nil {
		return nil, err
	}
	if err := m.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}
	return p, nil
}
