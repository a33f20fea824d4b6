// Package catalogtest provides small hand-built catalogs for tests.
package catalogtest

import (
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
)

// Sample returns a catalog with a handful of entries of every kind:
//
//   - recipe iron-gear-wheel: 2 item:iron-plate -> 1 item:iron-gear-wheel
//   - recipe iron-plate: 1 item:iron-ore -> 1 item:iron-plate
//   - recipe electronic-circuit: 1 iron-plate + 3 copper-cable -> 1 electronic-circuit
//   - resource iron-ore: -> 1 item:iron-ore
//   - resource uranium-ore: 1 fluid:sulfuric-acid -> 1 item:uranium-ore
//   - resources water *tile and lake-water *tile: -> 1 fluid:water each
//   - plant tree-plant: seed tree-seed -> 4 item:wood
//   - machines, modules and a beacon
func Sample() *catalog.Catalog {
	cat := catalog.New()

	for _, name := range []string{"iron-ore", "iron-plate", "iron-gear-wheel", "copper-cable",
		"electronic-circuit", "uranium-ore", "wood", "tree-seed"} {
		cat.Items[name] = catalog.ItemPrototype{Name: name, StackSize: 100}
	}
	seed := cat.Items["tree-seed"]
	seed.PlantResult = "tree-plant"
	cat.Items["tree-seed"] = seed

	cat.Fluids["water"] = catalog.FluidPrototype{Name: "water"}
	cat.Fluids["sulfuric-acid"] = catalog.FluidPrototype{Name: "sulfuric-acid"}

	cat.Recipes["iron-gear-wheel"] = catalog.RecipePrototype{
		Name:           "iron-gear-wheel",
		Category:       "crafting",
		Ingredients:    []material.Material{material.NewItem("iron-plate", 2)},
		Results:        []material.Material{material.NewItem("iron-gear-wheel", 1)},
		EnergyRequired: 0.5,
		AllowedEffects: []string{"speed", "productivity", "consumption", "pollution"},
	}
	cat.Recipes["iron-plate"] = catalog.RecipePrototype{
		Name:           "iron-plate",
		Category:       "smelting",
		Ingredients:    []material.Material{material.NewItem("iron-ore", 1)},
		Results:        []material.Material{material.NewItem("iron-plate", 1)},
		EnergyRequired: 3.2,
	}
	cat.Recipes["electronic-circuit"] = catalog.RecipePrototype{
		Name:     "electronic-circuit",
		Category: "crafting",
		Ingredients: []material.Material{
			material.NewItem("iron-plate", 1),
			material.NewItem("copper-cable", 3),
		},
		Results:        []material.Material{material.NewItem("electronic-circuit", 1)},
		EnergyRequired: 0.5,
	}

	cat.Resources["iron-ore"] = catalog.ResourcePrototype{
		Name:     "iron-ore",
		Category: "basic-solid",
		Minable: catalog.Minable{
			MiningTime: 1,
			Results:    []material.Material{material.NewItem("iron-ore", 1)},
		},
	}
	acid := material.NewFluid("sulfuric-acid", 10)
	cat.Resources["uranium-ore"] = catalog.ResourcePrototype{
		Name:     "uranium-ore",
		Category: "basic-solid",
		Minable: catalog.Minable{
			MiningTime: 2,
			Results:    []material.Material{material.NewItem("uranium-ore", 1)},
			InputFluid: &acid,
		},
	}
	for _, name := range []string{"water *tile", "lake-water *tile"} {
		cat.Resources[name] = catalog.ResourcePrototype{
			Name:     name,
			Category: "calculator internal tile",
			Minable: catalog.Minable{
				MiningTime: 1,
				Results:    []material.Material{material.NewFluid("water", 1)},
			},
		}
	}

	cat.Plants["tree-plant"] = catalog.PlantPrototype{
		Name:        "tree-plant",
		GrowthTicks: 600,
		Minable: catalog.Minable{
			MiningTime: 0.5,
			Results:    []material.Material{material.NewItem("wood", 4)},
		},
		Seeds: []string{"tree-seed"},
	}

	cat.CraftingMachines["assembling-machine-2"] = catalog.CraftingMachinePrototype{
		Name:               "assembling-machine-2",
		EnergyUsage:        150000,
		CraftingSpeed:      0.75,
		CraftingCategories: []string{"crafting", "advanced-crafting"},
		EnergySource:       catalog.EnergySource{Type: catalog.EnergySourceElectric},
		ModuleSlots:        2,
	}
	cat.CraftingMachines["stone-furnace"] = catalog.CraftingMachinePrototype{
		Name:               "stone-furnace",
		EnergyUsage:        90000,
		CraftingSpeed:      1,
		CraftingCategories: []string{"smelting"},
		EnergySource:       catalog.EnergySource{Type: catalog.EnergySourceBurner, Effectivity: 1},
	}
	cat.MiningDrills["electric-mining-drill"] = catalog.MiningDrillPrototype{
		Name:               "electric-mining-drill",
		EnergyUsage:        90000,
		MiningSpeed:        0.5,
		EnergySource:       catalog.EnergySource{Type: catalog.EnergySourceElectric},
		ResourceCategories: []string{"basic-solid"},
		ModuleSlots:        3,
	}
	cat.MiningDrills["offshore-pump"] = catalog.MiningDrillPrototype{
		Name:               "offshore-pump",
		MiningSpeed:        20,
		EnergySource:       catalog.EnergySource{Type: catalog.EnergySourceVoid},
		ResourceCategories: []string{"calculator internal tile"},
		EffectReceiver:     &catalog.EffectReceiver{},
	}

	cat.Modules["productivity-module"] = catalog.ModulePrototype{
		Name:     "productivity-module",
		Category: "productivity",
		Effects: catalog.Effects{
			Productivity: material.Float(0.04),
			Speed:        material.Float(-0.05),
			Consumption:  material.Float(0.4),
		},
	}
	cat.Modules["speed-module"] = catalog.ModulePrototype{
		Name:     "speed-module",
		Category: "speed",
		Effects: catalog.Effects{
			Speed:       material.Float(0.2),
			Consumption: material.Float(0.5),
		},
	}
	cat.Beacons["beacon"] = catalog.BeaconPrototype{
		Name:         "beacon",
		EnergySource: catalog.EnergySource{Type: catalog.EnergySourceElectric},
		EnergyUsage:  480000,
		Efficiency:   1.5,
		ModuleSlots:  2,
	}

	return cat
}
