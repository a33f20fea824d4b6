package catalog

import (
	"sort"

	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
)

// Catalog is the read-only registry of every known item, fluid and activity.
//
// A Catalog is built once (by a loader or from a persisted snapshot) and never mutated
// afterwards. Replacing the data means swapping the whole *Catalog, so a reference held
// during a solve stays consistent.
type Catalog struct {
	Items            map[string]ItemPrototype            `json:"items"`
	Fluids           map[string]FluidPrototype           `json:"fluids"`
	Resources        map[string]ResourcePrototype        `json:"resources"`
	Plants           map[string]PlantPrototype           `json:"plants"`
	Recipes          map[string]RecipePrototype          `json:"recipes"`
	MiningDrills     map[string]MiningDrillPrototype     `json:"mining_drills"`
	CraftingMachines map[string]CraftingMachinePrototype `json:"crafting_machines"`
	Modules          map[string]ModulePrototype          `json:"modules"`
	Beacons          map[string]BeaconPrototype          `json:"beacons"`
}

// New creates an empty catalog with all maps initialized
func New() *Catalog {
	return &Catalog{
		Items:            make(map[string]ItemPrototype),
		Fluids:           make(map[string]FluidPrototype),
		Resources:        make(map[string]ResourcePrototype),
		Plants:           make(map[string]PlantPrototype),
		Recipes:          make(map[string]RecipePrototype),
		MiningDrills:     make(map[string]MiningDrillPrototype),
		CraftingMachines: make(map[string]CraftingMachinePrototype),
		Modules:          make(map[string]ModulePrototype),
		Beacons:          make(map[string]BeaconPrototype),
	}
}

// ItemPrototype describes an item
type ItemPrototype struct {
	Name         string  `json:"name"`
	StackSize    int     `json:"stack_size"`
	FuelCategory string  `json:"fuel_category,omitempty"`
	FuelValue    float64 `json:"fuel_value,omitempty"`
	BurntResult  string  `json:"burnt_result,omitempty"`
	SpoilResult  string  `json:"spoil_result,omitempty"`
	PlantResult  string  `json:"plant_result,omitempty"`
}

// FluidPrototype describes a fluid
type FluidPrototype struct {
	Name      string  `json:"name"`
	FuelValue float64 `json:"fuel_value,omitempty"`
}

// Minable holds what an extraction yields and what it needs
type Minable struct {
	MiningTime float64             `json:"mining_time"`
	Results    []material.Material `json:"results"`
	InputFluid *material.Material  `json:"input_fluid,omitempty"`
}

// ResourcePrototype describes a minable resource (ore patch, oil well, fluid tile)
type ResourcePrototype struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Minable  Minable `json:"minable"`
}

// PlantPrototype describes a growable plant; Seeds lists the items that plant it
type PlantPrototype struct {
	Name        string   `json:"name"`
	GrowthTicks int      `json:"growth_ticks"`
	Minable     Minable  `json:"minable"`
	Seeds       []string `json:"seeds"`
}

// RecipePrototype describes a crafting recipe
type RecipePrototype struct {
	Name           string              `json:"name"`
	Category       string              `json:"category"`
	Ingredients    []material.Material `json:"ingredients"`
	Results        []material.Material `json:"results"`
	EnergyRequired float64             `json:"energy_required"`
	AllowedEffects []string            `json:"allowed_effects,omitempty"`
}

// Lookup helpers. Each returns the prototype and whether it exists.

func (c *Catalog) Item(name string) (ItemPrototype, bool) {
	p, ok := c.Items[name]
	return p, ok
}

func (c *Catalog) Fluid(name string) (FluidPrototype, bool) {
	p, ok := c.Fluids[name]
	return p, ok
}

func (c *Catalog) Resource(name string) (ResourcePrototype, bool) {
	p, ok := c.Resources[name]
	return p, ok
}

func (c *Catalog) Plant(name string) (PlantPrototype, bool) {
	p, ok := c.Plants[name]
	return p, ok
}

func (c *Catalog) Recipe(name string) (RecipePrototype, bool) {
	p, ok := c.Recipes[name]
	return p, ok
}

func (c *Catalog) MiningDrill(name string) (MiningDrillPrototype, bool) {
	p, ok := c.MiningDrills[name]
	return p, ok
}

func (c *Catalog) CraftingMachine(name string) (CraftingMachinePrototype, bool) {
	p, ok := c.CraftingMachines[name]
	return p, ok
}

func (c *Catalog) Module(name string) (ModulePrototype, bool) {
	p, ok := c.Modules[name]
	return p, ok
}

func (c *Catalog) Beacon(name string) (BeaconPrototype, bool) {
	p, ok := c.Beacons[name]
	return p, ok
}

// Summary counts the prototypes of each kind
type Summary struct {
	Items            int
	Fluids           int
	Resources        int
	Plants           int
	Recipes          int
	MiningDrills     int
	CraftingMachines int
	Modules          int
	Beacons          int
}

// Summary returns prototype counts, for display after an import
func (c *Catalog) Summary() Summary {
	return Summary{
		Items:            len(c.Items),
		Fluids:           len(c.Fluids),
		Resources:        len(c.Resources),
		Plants:           len(c.Plants),
		Recipes:          len(c.Recipes),
		MiningDrills:     len(c.MiningDrills),
		CraftingMachines: len(c.CraftingMachines),
		Modules:          len(c.Modules),
		Beacons:          len(c.Beacons),
	}
}

// IsEmpty reports whether no activity can be selected from this catalog
func (c *Catalog) IsEmpty() bool {
	return c == nil || (len(c.Resources) == 0 && len(c.Plants) == 0 && len(c.Recipes) == 0)
}

// SortedNames returns the keys of a prototype map in lexical order
func SortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
