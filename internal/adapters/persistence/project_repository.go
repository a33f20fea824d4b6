package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormProjectRepository creates a new GORM project repository.
// If clock is nil, loaded projects use RealClock.
func NewGormProjectRepository(db *gorm.DB, clock shared.Clock) *GormProjectRepository {
	return &GormProjectRepository{db: db, clock: clock}
}

// Create persists a new project
func (r *GormProjectRepository) Create(ctx context.Context, p *project.Project) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ProjectModel{}).Where("name = ?", p.Name()).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check project name: %w", err)
	}
	if count > 0 {
		return &project.ProjectNameTakenError{Name: p.Name()}
	}

	model, err := r.entityToModel(p)
	if err != nil {
		return fmt.Errorf("failed to convert project to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Update persists changes to an existing project
func (r *GormProjectRepository) Update(ctx context.Context, p *project.Project) error {
	model, err := r.entityToModel(p)
	if err != nil {
		return fmt.Errorf("failed to convert project to model: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&ProjectModel{}).Where("id = ?", model.ID).Updates(map[string]interface{}{
		"name":       model.Name,
		"catalog":    model.Catalog,
		"model":      model.Model,
		"settings":   model.Settings,
		"updated_at": model.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &project.ProjectNotFoundError{Ref: p.ID()}
	}
	return nil
}

// FindByID retrieves a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id string) (*project.Project, error) {
	return r.findOne(ctx, id, "id = ?", id)
}

// FindByName retrieves a project by name
func (r *GormProjectRepository) FindByName(ctx context.Context, name string) (*project.Project, error) {
	return r.findOne(ctx, name, "name = ?", name)
}

func (r *GormProjectRepository) findOne(ctx context.Context, ref string, query string, args ...interface{}) (*project.Project, error) {
	var model ProjectModel
	result := r.db.WithContext(ctx).Where(query, args...).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &project.ProjectNotFoundError{Ref: ref}
		}
		return nil, fmt.Errorf("failed to find project: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// List retrieves every project, most recently updated first
func (r *GormProjectRepository) List(ctx context.Context) ([]*project.Project, error) {
	var models []ProjectModel
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*project.Project, 0, len(models))
	for i := range models {
		p, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert project %s: %w", models[i].ID, err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Delete removes a project and its solve history
func (r *GormProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&SolveRunModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete solve runs: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&ProjectModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete project: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return &project.ProjectNotFoundError{Ref: id}
		}
		return nil
	})
}

// entityToModel converts domain entity to database model
func (r *GormProjectRepository) entityToModel(p *project.Project) (*ProjectModel, error) {
	catalogJSON, err := json.Marshal(p.Catalog())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	modelJSON, err := json.Marshal(p.Model())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal model: %w", err)
	}
	settingsJSON, err := json.Marshal(p.Settings())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}

	return &ProjectModel{
		ID:        p.ID(),
		Name:      p.Name(),
		Catalog:   string(catalogJSON),
		Model:     string(modelJSON),
		Settings:  string(settingsJSON),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}, nil
}

// modelToEntity converts database model to domain entity.
// Malformed material ids in the stored model fail the load.
func (r *GormProjectRepository) modelToEntity(model *ProjectModel) (*project.Project, error) {
	cat := catalog.New()
	if model.Catalog != "" {
		if err := json.Unmarshal([]byte(model.Catalog), cat); err != nil {
			return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
		}
	}

	m := planning.NewModel()
	if model.Model != "" {
		if err := json.Unmarshal([]byte(model.Model), m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal model: %w", err)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("stored model is invalid: %w", err)
	}

	settings := make(map[process.Key]planning.ProcessSettings)
	if model.Settings != "" && model.Settings != "null" {
		if err := json.Unmarshal([]byte(model.Settings), &settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
		}
	}

	return project.ReconstituteProject(
		model.ID,
		model.Name,
		cat,
		m,
		settings,
		model.CreatedAt,
		model.UpdatedAt,
		r.clock,
	), nil
}
