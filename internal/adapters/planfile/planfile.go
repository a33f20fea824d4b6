// Package planfile reads declarative plan files written in HCL:
//
//	process "recipe" "iron-gear-wheel" {
//	  machine = "assembling-machine-2"
//	  modules = ["productivity-module"]
//	  beacon "beacon" {
//	    count   = 2
//	    modules = ["speed-module"]
//	  }
//	}
//	input  "item:iron-plate"      { limit  = 200 }
//	output "item:iron-gear-wheel" { amount = 100 }
package planfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

// hclPlanFile is the top-level structure of a plan file for decoding
type hclPlanFile struct {
	Processes []*hclProcess `hcl:"process,block"`
	Inputs    []*hclInput   `hcl:"input,block"`
	Outputs   []*hclOutput  `hcl:"output,block"`
}

type hclProcess struct {
	Kind    string       `hcl:"kind,label"`
	Name    string       `hcl:"name,label"`
	Machine *string      `hcl:"machine,optional"`
	Modules []string     `hcl:"modules,optional"`
	Beacons []*hclBeacon `hcl:"beacon,block"`
}

type hclBeacon struct {
	Prototype string   `hcl:"prototype,label"`
	Count     int      `hcl:"count"`
	Modules   []string `hcl:"modules,optional"`
}

type hclInput struct {
	Material string  `hcl:"material,label"`
	Limit    float64 `hcl:"limit"`
}

type hclOutput struct {
	Material string  `hcl:"material,label"`
	Amount   float64 `hcl:"amount"`
}

// Loader reads plan files from disk
type Loader struct{}

// LoadPlan parses the plan file at path
func (Loader) LoadPlan(path string) (*project.Plan, error) {
	return Load(path)
}

// Load parses the plan file at path
func Load(path string) (*project.Plan, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", path, diags)
	}
	return decode(file, path)
}

// Parse decodes plan source; filename is used in diagnostics only
func Parse(src []byte, filename string) (*project.Plan, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", filename, diags)
	}
	return decode(file, filename)
}

func decode(file *hcl.File, filename string) (*project.Plan, error) {
	var parsed hclPlanFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode plan file %s: %w", filename, diags)
	}

	plan := &project.Plan{}
	seenProcesses := make(map[process.Key]struct{}, len(parsed.Processes))
	for _, p := range parsed.Processes {
		planned, err := convertProcess(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		key := process.Key{Kind: planned.Kind, Name: planned.Name}
		if _, dup := seenProcesses[key]; dup {
			return nil, fmt.Errorf("%s: process %s declared twice", filename, key)
		}
		seenProcesses[key] = struct{}{}
		plan.Processes = append(plan.Processes, planned)
	}

	inputs := make([]pinBlock, 0, len(parsed.Inputs))
	for _, in := range parsed.Inputs {
		inputs = append(inputs, pinBlock{material: in.Material, amount: in.Limit})
	}
	pins, err := convertPins(planning.DirectionInput, inputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	plan.Inputs = pins

	outputs := make([]pinBlock, 0, len(parsed.Outputs))
	for _, out := range parsed.Outputs {
		outputs = append(outputs, pinBlock{material: out.Material, amount: out.Amount})
	}
	pins, err = convertPins(planning.DirectionOutput, outputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	plan.Outputs = pins

	return plan, nil
}

func convertProcess(p *hclProcess) (project.PlannedProcess, error) {
	kind, err := process.ParseKind(p.Kind)
	if err != nil {
		return project.PlannedProcess{}, err
	}
	planned := project.PlannedProcess{Kind: kind, Name: p.Name}

	if p.Machine == nil && len(p.Modules) == 0 && len(p.Beacons) == 0 {
		return planned, nil
	}

	settings := &planning.ProcessSettings{Modules: p.Modules}
	if p.Machine != nil {
		settings.Machine = *p.Machine
	}
	for _, b := range p.Beacons {
		if b.Count < 0 {
			return project.PlannedProcess{}, fmt.Errorf("process %s/%s: beacon %s count must not be negative", kind, p.Name, b.Prototype)
		}
		settings.Beacons = append(settings.Beacons, planning.BeaconSettings{
			Prototype: b.Prototype,
			Count:     b.Count,
			Modules:   b.Modules,
		})
	}
	planned.Settings = settings
	return planned, nil
}

type pinBlock struct {
	material string
	amount   float64
}

func convertPins(direction planning.Direction, blocks []pinBlock) ([]project.PlannedPin, error) {
	pins := make([]project.PlannedPin, 0, len(blocks))
	seen := make(map[material.Key]struct{}, len(blocks))
	for _, b := range blocks {
		key, err := material.ParseKey(b.material)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%s %s declared twice", direction, key)
		}
		if b.amount < 0 {
			return nil, fmt.Errorf("%s %s: %w", direction, key, planning.ErrNegativeAmount)
		}
		seen[key] = struct{}{}
		pins = append(pins, project.PlannedPin{Material: key, Amount: b.amount})
	}
	return pins, nil
}
