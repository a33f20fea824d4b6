package planning

import (
	"fmt"

	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
)

// BeaconSettings is a group of identical beacons affecting one process
type BeaconSettings struct {
	Prototype string   `json:"prototype"`
	Count     int      `json:"count"`
	Modules   []string `json:"modules"`
}

// ProcessSettings is the equipment chosen for one process.
// Plants run without a machine, so Machine is empty for them.
type ProcessSettings struct {
	Machine string           `json:"machine,omitempty"`
	Modules []string         `json:"modules,omitempty"`
	Beacons []BeaconSettings `json:"beacons,omitempty"`
}

// EffectTotals is the summed effect of a machine's base effect, modules and beacons
type EffectTotals struct {
	Speed        float64
	Productivity float64
	Consumption  float64
	Quality      float64
}

func (t *EffectTotals) add(e catalog.Effects, scale float64) {
	if e.Speed != nil {
		t.Speed += *e.Speed * scale
	}
	if e.Productivity != nil {
		t.Productivity += *e.Productivity * scale
	}
	if e.Consumption != nil {
		t.Consumption += *e.Consumption * scale
	}
	if e.Quality != nil {
		t.Quality += *e.Quality * scale
	}
}

// receiverFor resolves the effect receiver of the machine configured for kind
func receiverFor(cat *catalog.Catalog, kind process.Kind, s ProcessSettings) (catalog.EffectReceiver, error) {
	switch kind {
	case process.KindPlant:
		return catalog.EffectReceiver{}, nil
	case process.KindResource:
		if s.Machine == "" {
			return catalog.DefaultEffectReceiver(), nil
		}
		drill, ok := cat.MiningDrill(s.Machine)
		if !ok {
			return catalog.EffectReceiver{}, &catalog.UnknownPrototypeError{Kind: "mining drill", Name: s.Machine}
		}
		return catalog.ReceiverOrDefault(drill.EffectReceiver), nil
	case process.KindRecipe:
		if s.Machine == "" {
			return catalog.DefaultEffectReceiver(), nil
		}
		machine, ok := cat.CraftingMachine(s.Machine)
		if !ok {
			return catalog.EffectReceiver{}, &catalog.UnknownPrototypeError{Kind: "crafting machine", Name: s.Machine}
		}
		return catalog.ReceiverOrDefault(machine.EffectReceiver), nil
	}
	return catalog.EffectReceiver{}, &process.InvalidKindError{Value: string(kind)}
}

// ComputeEffects sums the effects acting on a process of the given kind.
//
// Module effects count when the receiver uses module effects. Each beacon group adds
// count × efficiency × its modules' effects when the receiver uses beacon effects.
func ComputeEffects(cat *catalog.Catalog, kind process.Kind, s ProcessSettings) (EffectTotals, error) {
	var totals EffectTotals

	receiver, err := receiverFor(cat, kind, s)
	if err != nil {
		return totals, err
	}
	if receiver.BaseEffect != nil {
		totals.add(*receiver.BaseEffect, 1)
	}

	if receiver.UsesModuleEffects {
		for _, name := range s.Modules {
			module, ok := cat.Module(name)
			if !ok {
				return totals, &catalog.UnknownPrototypeError{Kind: "module", Name: name}
			}
			totals.add(module.Effects, 1)
		}
	}

	if receiver.UsesBeaconEffects {
		for _, group := range s.Beacons {
			beacon, ok := cat.Beacon(group.Prototype)
			if !ok {
				return totals, &catalog.UnknownPrototypeError{Kind: "beacon", Name: group.Prototype}
			}
			scale := float64(group.Count) * beacon.Efficiency
			for _, name := range group.Modules {
				module, ok := cat.Module(name)
				if !ok {
					return totals, &catalog.UnknownPrototypeError{Kind: "module", Name: name}
				}
				totals.add(module.Effects, scale)
			}
		}
	}

	return totals, nil
}

// ValidateSettings checks that the settings fit the process: the machine runs its
// category and the modules fit the slots.
func ValidateSettings(cat *catalog.Catalog, p process.Key, s ProcessSettings) error {
	slots := 0
	switch p.Kind {
	case process.KindPlant:
		if s.Machine != "" || len(s.Modules) > 0 {
			return fmt.Errorf("plant %s takes no machine or modules", p.Name)
		}
	case process.KindResource:
		if s.Machine != "" {
			drill, ok := cat.MiningDrill(s.Machine)
			if !ok {
				return &catalog.UnknownPrototypeError{Kind: "mining drill", Name: s.Machine}
			}
			res, ok := cat.Resource(p.Name)
			if !ok {
				return &catalog.UnknownPrototypeError{Kind: "resource", Name: p.Name}
			}
			if !drill.SupportsCategory(res.Category) {
				return fmt.Errorf("%s cannot mine %s (category %s)", s.Machine, p.Name, res.Category)
			}
			slots = drill.ModuleSlots
		}
	case process.KindRecipe:
		if s.Machine != "" {
			machine, ok := cat.CraftingMachine(s.Machine)
			if !ok {
				return &catalog.UnknownPrototypeError{Kind: "crafting machine", Name: s.Machine}
			}
			recipe, ok := cat.Recipe(p.Name)
			if !ok {
				return &catalog.UnknownPrototypeError{Kind: "recipe", Name: p.Name}
			}
			if !machine.SupportsCategory(recipe.Category) {
				return fmt.Errorf("%s cannot craft %s (category %s)", s.Machine, p.Name, recipe.Category)
			}
			slots = machine.ModuleSlots
		}
	default:
		return &process.InvalidKindError{Value: string(p.Kind)}
	}

	if s.Machine != "" && len(s.Modules) > slots {
		return fmt.Errorf("%s has %d module slots, %d modules given", s.Machine, slots, len(s.Modules))
	}
	for _, group := range s.Beacons {
		beacon, ok := cat.Beacon(group.Prototype)
		if !ok {
			return &catalog.UnknownPrototypeError{Kind: "beacon", Name: group.Prototype}
		}
		if group.Count < 0 {
			return fmt.Errorf("beacon %s: negative count %d", group.Prototype, group.Count)
		}
		if len(group.Modules) > beacon.ModuleSlots {
			return fmt.Errorf("beacon %s has %d module slots, %d modules given", group.Prototype, beacon.ModuleSlots, len(group.Modules))
		}
	}
	return nil
}

// ApplyProductivity writes the productivity implied by each process's settings onto the
// model. Processes without settings keep productivity 0.
func ApplyProductivity(cat *catalog.Catalog, model *Model, settings map[process.Key]ProcessSettings) error {
	for i, p := range model.Processes {
		s := settings[p.Key()]
		totals, err := ComputeEffects(cat, p.Kind, s)
		if err != nil {
			return fmt.Errorf("process %s: %w", p.Key(), err)
		}
		model.Processes[i].Productivity = totals.Productivity
	}
	return nil
}
