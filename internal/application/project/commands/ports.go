package commands

import (
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

// CatalogLoader reads a catalog from a game data dump
type CatalogLoader interface {
	LoadCatalog(path string) (*catalog.Catalog, error)
}

// PlanLoader reads a declarative plan file
type PlanLoader interface {
	LoadPlan(path string) (*project.Plan, error)
}

// SolveRecorder receives solve metrics; satisfied by the Prometheus planning collector
type SolveRecorder interface {
	RecordSolve(outcome string, generateInputs bool, durationSeconds float64, variables, constraints, spreads int)
}
