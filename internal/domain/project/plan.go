package project

import (
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
)

// Plan is a declarative description of processes, equipment and pins, typically read
// from a plan file and applied to a project in one step.
type Plan struct {
	Processes []PlannedProcess
	Inputs    []PlannedPin
	Outputs   []PlannedPin
}

// PlannedProcess selects a process; Settings is optional equipment
type PlannedProcess struct {
	Kind     process.Kind
	Name     string
	Settings *planning.ProcessSettings
}

// PlannedPin pins a material amount
type PlannedPin struct {
	Material material.Key
	Amount   float64
}

// ApplyPlan selects the plan's processes (already selected ones are kept), configures
// them and sets its pins. Either the whole plan applies or the project is left unchanged.
func (p *Project) ApplyPlan(plan Plan) error {
	savedModel := p.model.Clone()
	savedSettings := p.Settings()
	savedUpdatedAt := p.updatedAt

	if err := p.applyPlan(plan); err != nil {
		p.model = savedModel
		p.settings = savedSettings
		p.updatedAt = savedUpdatedAt
		return err
	}
	return nil
}

func (p *Project) applyPlan(plan Plan) error {
	for _, planned := range plan.Processes {
		key := process.Key{Kind: planned.Kind, Name: planned.Name}
		if !p.model.HasProcess(key) {
			if _, err := p.AddProcess(planned.Kind, planned.Name); err != nil {
				return err
			}
		}
		if planned.Settings != nil {
			if err := p.ConfigureProcess(key, *planned.Settings); err != nil {
				return err
			}
		}
	}
	for _, pin := range plan.Inputs {
		if err := p.Pin(planning.DirectionInput, pin.Material, pin.Amount); err != nil {
			return err
		}
	}
	for _, pin := range plan.Outputs {
		if err := p.Pin(planning.DirectionOutput, pin.Material, pin.Amount); err != nil {
			return err
		}
	}
	return nil
}
