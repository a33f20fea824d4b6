package project

import "context"

// ProjectRepository defines the persistence interface for projects
type ProjectRepository interface {
	// Create persists a new project; the name must be unused
	Create(ctx context.Context, project *Project) error

	// Update persists changes to an existing project
	Update(ctx context.Context, project *Project) error

	// FindByID retrieves a project by ID
	FindByID(ctx context.Context, id string) (*Project, error)

	// FindByName retrieves a project by its unique name
	FindByName(ctx context.Context, name string) (*Project, error)

	// List retrieves every project, most recently updated first
	List(ctx context.Context) ([]*Project, error)

	// Delete removes a project
	Delete(ctx context.Context, id string) error
}

// SolveHistoryRepository records the outcome of each solve of a project
type SolveHistoryRepository interface {
	Record(ctx context.Context, run *SolveRun) error

	// ListByProject returns the newest runs first, at most limit (0 means all)
	ListByProject(ctx context.Context, projectID string, limit int) ([]*SolveRun, error)
}
