package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
	"github.com/andrescamacho/factory-planner-go/internal/domain/shared"
)

// Project is the aggregate root a user works on: a catalog snapshot, the model solved
// against it and the equipment chosen for each selected process.
//
// Invariants:
// - Every selected process exists in the catalog snapshot
// - Settings exist only for selected processes
// - The model's pins are nonnegative
type Project struct {
	id        string
	name      string
	catalog   *catalog.Catalog
	model     *planning.Model
	settings  map[process.Key]planning.ProcessSettings
	createdAt time.Time
	updatedAt time.Time
	clock     shared.Clock
}

// NewProject creates an empty project. A nil catalog starts with an empty one.
// If clock is nil, uses RealClock.
func NewProject(id, name string, cat *catalog.Catalog, clock shared.Clock) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &InvalidProjectError{Reason: "name is required"}
	}
	if id == "" {
		return nil, &InvalidProjectError{Reason: "id is required"}
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if cat == nil {
		cat = catalog.New()
	}

	now := clock.Now()
	return &Project{
		id:        id,
		name:      name,
		catalog:   cat,
		model:     planning.NewModel(),
		settings:  make(map[process.Key]planning.ProcessSettings),
		createdAt: now,
		updatedAt: now,
		clock:     clock,
	}, nil
}

// ReconstituteProject rebuilds a project from persisted state without re-running creation rules
func ReconstituteProject(
	id, name string,
	cat *catalog.Catalog,
	model *planning.Model,
	settings map[process.Key]planning.ProcessSettings,
	createdAt, updatedAt time.Time,
	clock shared.Clock,
) *Project {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if cat == nil {
		cat = catalog.New()
	}
	if model == nil {
		model = planning.NewModel()
	}
	if settings == nil {
		settings = make(map[process.Key]planning.ProcessSettings)
	}
	return &Project{
		id:        id,
		name:      name,
		catalog:   cat,
		model:     model,
		settings:  settings,
		createdAt: createdAt,
		updatedAt: updatedAt,
		clock:     clock,
	}
}

// Getters

func (p *Project) ID() string                { return p.id }
func (p *Project) Name() string              { return p.name }
func (p *Project) Catalog() *catalog.Catalog { return p.catalog }
func (p *Project) Model() *planning.Model    { return p.model }
func (p *Project) CreatedAt() time.Time      { return p.createdAt }
func (p *Project) UpdatedAt() time.Time      { return p.updatedAt }
func (p *Project) ProcessCount() int         { return len(p.model.Processes) }
func (p *Project) Processes() []process.Process {
	return append([]process.Process(nil), p.model.Processes...)
}

// Settings returns a copy of the per-process equipment
func (p *Project) Settings() map[process.Key]planning.ProcessSettings {
	out := make(map[process.Key]planning.ProcessSettings, len(p.settings))
	for k, v := range p.settings {
		out[k] = v
	}
	return out
}

// SettingsFor returns the equipment of one process
func (p *Project) SettingsFor(key process.Key) (planning.ProcessSettings, bool) {
	s, ok := p.settings[key]
	return s, ok
}

func (p *Project) touch() {
	p.updatedAt = p.clock.Now()
}

// Rename changes the display name
func (p *Project) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &InvalidProjectError{Reason: "name is required"}
	}
	p.name = name
	p.touch()
	return nil
}

// ReplaceCatalog swaps the catalog snapshot. Every selected process must still exist in
// the new catalog; otherwise nothing changes.
func (p *Project) ReplaceCatalog(cat *catalog.Catalog) error {
	if cat == nil {
		return &InvalidProjectError{Reason: "catalog is required"}
	}
	var missing []string
	for _, proc := range p.model.Processes {
		if !process.Exists(cat, proc.Kind, proc.Name) {
			missing = append(missing, proc.Key().String())
		}
	}
	if len(missing) > 0 {
		return &CatalogMismatchError{Missing: missing}
	}
	p.catalog = cat
	p.touch()
	return nil
}

// AddProcess selects an activity from the catalog
func (p *Project) AddProcess(kind process.Kind, name string) (process.Process, error) {
	proc := process.New(kind, name)
	if err := process.Validate(p.catalog, proc); err != nil {
		return process.Process{}, err
	}
	if err := p.model.AddProcess(proc); err != nil {
		return process.Process{}, err
	}
	p.touch()
	return proc, nil
}

// RemoveProcess deselects an activity and drops its settings
func (p *Project) RemoveProcess(key process.Key) error {
	if err := p.model.RemoveProcess(key); err != nil {
		return err
	}
	delete(p.settings, key)
	p.touch()
	return nil
}

// ConfigureProcess sets the equipment of a selected process and refreshes its productivity
func (p *Project) ConfigureProcess(key process.Key, s planning.ProcessSettings) error {
	if !p.model.HasProcess(key) {
		return fmt.Errorf("%s: %w", key, planning.ErrProcessNotSelected)
	}
	if err := planning.ValidateSettings(p.catalog, key, s); err != nil {
		return err
	}
	totals, err := planning.ComputeEffects(p.catalog, key.Kind, s)
	if err != nil {
		return err
	}
	p.settings[key] = s
	if err := p.model.SetProductivity(key, totals.Productivity); err != nil {
		return err
	}
	p.touch()
	return nil
}

// Pin pins a material amount in the given direction
func (p *Project) Pin(direction planning.Direction, key material.Key, amount float64) error {
	if err := p.model.Pin(direction, key, amount); err != nil {
		return err
	}
	p.touch()
	return nil
}

// Unpin removes a pin; it is not an error to unpin a free material
func (p *Project) Unpin(direction planning.Direction, key material.Key) {
	p.model.Unpin(direction, key)
	p.touch()
}

// RefreshProductivity recomputes every process's productivity from its settings
func (p *Project) RefreshProductivity() error {
	return planning.ApplyProductivity(p.catalog, p.model, p.settings)
}

// Solve refreshes productivity and solves the model with planner.
// With generateInputs the discovered inputs are written into the model.
func (p *Project) Solve(planner *planning.Planner, generateInputs bool) (planning.Result, planning.Diagnostics, error) {
	if err := p.RefreshProductivity(); err != nil {
		return nil, planning.Diagnostics{}, err
	}
	result, diag := planner.SolveWithDiagnostics(p.catalog, p.model, generateInputs)
	if generateInputs {
		p.touch()
	}
	return result, diag, nil
}

func (p *Project) String() string {
	return fmt.Sprintf("Project[%s, name=%s, processes=%d, inputs=%d, outputs=%d]",
		p.id, p.name, len(p.model.Processes), len(p.model.Inputs), len(p.model.Outputs))
}
