package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

// ErrNoProjectSpecified is returned when neither a project reference nor a default is given
var ErrNoProjectSpecified = errors.New("no project specified: use --project or set a default with 'project use'")

// ProjectResolver finds a project by id or, failing that, by name
type ProjectResolver struct {
	repo project.ProjectRepository
}

func NewProjectResolver(repo project.ProjectRepository) *ProjectResolver {
	return &ProjectResolver{repo: repo}
}

// Resolve looks ref up as an id first, then as a name
func (r *ProjectResolver) Resolve(ctx context.Context, ref string) (*project.Project, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrNoProjectSpecified
	}

	p, err := r.repo.FindByID(ctx, ref)
	if err == nil {
		return p, nil
	}
	var notFound *project.ProjectNotFoundError
	if !errors.As(err, &notFound) {
		return nil, fmt.Errorf("failed to find project %s: %w", ref, err)
	}

	p, err = r.repo.FindByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	return p, nil
}
