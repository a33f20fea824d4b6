package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

// GormSolveRunRepository implements SolveHistoryRepository using GORM
type GormSolveRunRepository struct {
	db *gorm.DB
}

func NewGormSolveRunRepository(db *gorm.DB) *GormSolveRunRepository {
	return &GormSolveRunRepository{db: db}
}

// Record appends a solve run
func (r *GormSolveRunRepository) Record(ctx context.Context, run *project.SolveRun) error {
	resultJSON, err := json.Marshal(planning.EncodeResult(run.Result))
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	model := &SolveRunModel{
		ProjectID:      run.ProjectID,
		Outcome:        string(run.Outcome),
		Reason:         run.Reason,
		GenerateInputs: run.GenerateInputs,
		SolverCalls:    run.SolverCalls,
		DurationMs:     run.Duration.Milliseconds(),
		Result:         string(resultJSON),
		CreatedAt:      run.SolvedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record solve run: %w", err)
	}
	return nil
}

// ListByProject returns the newest runs first
func (r *GormSolveRunRepository) ListByProject(ctx context.Context, projectID string, limit int) ([]*project.SolveRun, error) {
	query := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []SolveRunModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list solve runs: %w", err)
	}

	runs := make([]*project.SolveRun, 0, len(models))
	for i := range models {
		run, err := solveRunToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func solveRunToEntity(model *SolveRunModel) (*project.SolveRun, error) {
	var doc planning.ResultDocument
	if err := json.Unmarshal([]byte(model.Result), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal solve result %d: %w", model.ID, err)
	}
	result, err := doc.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode solve result %d: %w", model.ID, err)
	}

	return &project.SolveRun{
		ProjectID:      model.ProjectID,
		Outcome:        planning.ResultKind(model.Outcome),
		Reason:         model.Reason,
		GenerateInputs: model.GenerateInputs,
		SolverCalls:    model.SolverCalls,
		Duration:       time.Duration(model.DurationMs) * time.Millisecond,
		Result:         result,
		SolvedAt:       model.CreatedAt,
	}, nil
}
