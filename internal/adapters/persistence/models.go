package persistence

import (
	"time"
)

// ProjectModel represents the projects table.
// The catalog snapshot, model and settings are stored as JSON text so a project reloads
// exactly as it was saved, independent of later catalog imports.
type ProjectModel struct {
	ID        string    `gorm:"column:id;primaryKey;not null"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Catalog   string    `gorm:"column:catalog;type:text"`  // JSON
	Model     string    `gorm:"column:model;type:text"`    // JSON
	Settings  string    `gorm:"column:settings;type:text"` // JSON keyed by "<kind>/<name>"
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (ProjectModel) TableName() string {
	return "projects"
}

// SolveRunModel represents the solve_runs table: one row per solve of a project
type SolveRunModel struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID      string    `gorm:"column:project_id;index;not null"`
	Outcome        string    `gorm:"column:outcome;not null"`
	Reason         string    `gorm:"column:reason"`
	GenerateInputs bool      `gorm:"column:generate_inputs;not null;default:false"`
	SolverCalls    int       `gorm:"column:solver_calls;not null;default:0"`
	DurationMs     int64     `gorm:"column:duration_ms;not null;default:0"`
	Result         string    `gorm:"column:result;type:text"` // JSON
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
}

func (SolveRunModel) TableName() string {
	return "solve_runs"
}
