package planning

import (
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
)

// MachineRequirement is how many machines keep one process running at its solved rate
type MachineRequirement struct {
	Process process.Key
	Rate    float64
	Machine string
	// Count is rate × cycle time / speed; meaningful only when Applicable
	Count      float64
	Applicable bool
}

// cycleTime returns the seconds one activation takes at speed 1
func cycleTime(cat *catalog.Catalog, p process.Key) (float64, bool) {
	switch p.Kind {
	case process.KindResource:
		res, ok := cat.Resource(p.Name)
		return res.Minable.MiningTime, ok
	case process.KindPlant:
		plant, ok := cat.Plant(p.Name)
		return float64(plant.GrowthTicks/60) + plant.Minable.MiningTime, ok
	case process.KindRecipe:
		recipe, ok := cat.Recipe(p.Name)
		return recipe.EnergyRequired, ok
	}
	return 0, false
}

// machineSpeed returns the base speed of the configured machine; plants have none
func machineSpeed(cat *catalog.Catalog, kind process.Kind, machine string) (float64, bool) {
	switch kind {
	case process.KindResource:
		drill, ok := cat.MiningDrill(machine)
		return drill.MiningSpeed, ok
	case process.KindRecipe:
		m, ok := cat.CraftingMachine(machine)
		return m.CraftingSpeed, ok
	}
	return 0, false
}

// MachineRequirements computes the machine count of every process in a unique solution.
// Processes without a configured machine, and plants, are reported as not applicable.
func MachineRequirements(cat *catalog.Catalog, solution OneSolution, settings map[process.Key]ProcessSettings) ([]MachineRequirement, error) {
	report := make([]MachineRequirement, 0, len(solution.Processes))

	for _, p := range solution.Processes {
		key := p.Key()
		s := settings[key]
		req := MachineRequirement{Process: key, Rate: solution.Rates[key], Machine: s.Machine}

		time, ok := cycleTime(cat, key)
		if !ok {
			return nil, &catalog.UnknownPrototypeError{Kind: string(key.Kind), Name: key.Name}
		}

		speed, hasMachine := machineSpeed(cat, key.Kind, s.Machine)
		if hasMachine {
			totals, err := ComputeEffects(cat, key.Kind, s)
			if err != nil {
				return nil, err
			}
			speed += totals.Speed
		}

		if hasMachine && speed > 0 {
			req.Count = req.Rate * time / speed
			req.Applicable = true
		}
		report = append(report, req)
	}

	return report, nil
}
