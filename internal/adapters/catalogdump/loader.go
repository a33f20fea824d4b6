// Package catalogdump reads a game data dump (the JSON written by the game's
// --dump-data option) into a catalog.
package catalogdump

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
)

const (
	// TileCategory is the resource category of synthetic fluid tile resources
	TileCategory = "calculator internal tile"

	// TileSuffix names the synthetic resource of a fluid tile: "<fluid> *tile"
	TileSuffix = " *tile"

	defaultResourceCategory = "basic-solid"
	defaultRecipeCategory   = "crafting"
	defaultEnergyRequired   = 0.5
	defaultDrainPercent     = 100
)

// itemSections are the prototype types that all describe items
var itemSections = []string{
	"item", "ammo", "capsule", "gun", "module",
	"space-platform-starter-pack", "tool", "armor", "repair-tool",
}

// Load reads and parses the dump at path
func Load(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data dump: %w", err)
	}
	defer f.Close()

	cat, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes a dump. Malformed input yields an error naming the offending prototype.
func Parse(r io.Reader) (*catalog.Catalog, error) {
	var sections map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&sections); err != nil {
		return nil, fmt.Errorf("failed to decode data dump: %w", err)
	}

	l := &loader{sections: sections, cat: catalog.New()}
	steps := []func() error{
		l.loadItems,
		l.loadFluids,
		l.loadResources,
		l.loadTiles,
		l.loadPlants,
		l.loadMiningDrills,
		l.loadOffshorePumps,
		l.loadCraftingMachines,
		l.loadRecipes,
		l.loadModules,
		l.loadBeacons,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return l.cat, nil
}

type loader struct {
	sections map[string]json.RawMessage
	cat      *catalog.Catalog
}

// section decodes one prototype type into a name-indexed map; absent sections are empty
func section[T any](l *loader, name string) (map[string]T, error) {
	raw, ok := l.sections[name]
	if !ok {
		return nil, nil
	}
	var out map[string]T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("section %q: %w", name, err)
	}
	return out, nil
}

func (l *loader) loadItems() error {
	for _, name := range itemSections {
		items, err := section[itemDTO](l, name)
		if err != nil {
			return err
		}
		for key, dto := range items {
			fuel, err := parseFuelValue(dto.FuelValue)
			if err != nil {
				return fmt.Errorf("%s %q: fuel_value: %w", name, key, err)
			}
			l.cat.Items[key] = catalog.ItemPrototype{
				Name:         orKey(dto.Name, key),
				StackSize:    dto.StackSize,
				FuelCategory: dto.FuelCategory,
				FuelValue:    fuel,
				BurntResult:  dto.BurntResult,
				SpoilResult:  dto.SpoilResult,
				PlantResult:  dto.PlantResult,
			}
		}
	}
	return nil
}

func (l *loader) loadFluids() error {
	fluids, err := section[fluidDTO](l, "fluid")
	if err != nil {
		return err
	}
	for key, dto := range fluids {
		fuel, err := parseFuelValue(dto.FuelValue)
		if err != nil {
			return fmt.Errorf("fluid %q: fuel_value: %w", key, err)
		}
		l.cat.Fluids[key] = catalog.FluidPrototype{Name: orKey(dto.Name, key), FuelValue: fuel}
	}
	return nil
}

func (l *loader) loadResources() error {
	resources, err := section[resourceDTO](l, "resource")
	if err != nil {
		return err
	}
	for key, dto := range resources {
		minable, err := convertMinable(dto.Minable)
		if err != nil {
			return fmt.Errorf("resource %q: %w", key, err)
		}
		category := dto.Category
		if category == "" {
			category = defaultResourceCategory
		}
		l.cat.Resources[key] = catalog.ResourcePrototype{
			Name:     orKey(dto.Name, key),
			Category: category,
			Minable:  minable,
		}
	}
	return nil
}

// loadTiles turns every tile that yields a fluid into a synthetic resource mined by pumps
func (l *loader) loadTiles() error {
	tiles, err := section[tileDTO](l, "tile")
	if err != nil {
		return err
	}
	for _, dto := range tiles {
		if dto.Fluid == "" {
			continue
		}
		name := dto.Fluid + TileSuffix
		l.cat.Resources[name] = catalog.ResourcePrototype{
			Name:     name,
			Category: TileCategory,
			Minable: catalog.Minable{
				MiningTime: 1,
				Results:    []material.Material{material.NewFluid(dto.Fluid, 1)},
			},
		}
	}
	return nil
}

// loadPlants reads plants and attaches as seeds every item whose plant_result names them
func (l *loader) loadPlants() error {
	plants, err := section[plantDTO](l, "plant")
	if err != nil {
		return err
	}
	for key, dto := range plants {
		minable, err := convertMinable(dto.Minable)
		if err != nil {
			return fmt.Errorf("plant %q: %w", key, err)
		}
		l.cat.Plants[key] = catalog.PlantPrototype{
			Name:        orKey(dto.Name, key),
			GrowthTicks: dto.GrowthTicks,
			Minable:     minable,
			Seeds:       []string{},
		}
	}

	for _, itemName := range catalog.SortedNames(l.cat.Items) {
		target := l.cat.Items[itemName].PlantResult
		if target == "" {
			continue
		}
		plant, ok := l.cat.Plants[target]
		if !ok {
			return fmt.Errorf("item %q: plant_result %q is not a plant", itemName, target)
		}
		plant.Seeds = append(plant.Seeds, itemName)
		l.cat.Plants[target] = plant
	}
	return nil
}

func (l *loader) loadMiningDrills() error {
	drills, err := section[miningDrillDTO](l, "mining-drill")
	if err != nil {
		return err
	}
	for key, dto := range drills {
		usage, err := parsePower(dto.EnergyUsage)
		if err != nil {
			return fmt.Errorf("mining-drill %q: energy_usage: %w", key, err)
		}
		source, err := convertEnergySource(dto.EnergySource)
		if err != nil {
			return fmt.Errorf("mining-drill %q: %w", key, err)
		}
		drain := defaultDrainPercent
		if dto.ResourceDrainPercent != nil {
			drain = *dto.ResourceDrainPercent
		}
		l.cat.MiningDrills[key] = catalog.MiningDrillPrototype{
			Name:                    orKey(dto.Name, key),
			EnergyUsage:             usage,
			MiningSpeed:             dto.MiningSpeed,
			EnergySource:            source,
			ResourceCategories:      dto.ResourceCategories,
			EffectReceiver:          convertEffectReceiver(dto.EffectReceiver),
			AllowedEffects:          dto.AllowedEffects,
			AllowedModuleCategories: dto.AllowedModuleCategories,
			ModuleSlots:             dto.ModuleSlots,
			ResourceDrainPercent:    drain,
		}
	}
	return nil
}

// loadOffshorePumps registers pumps as drills that mine fluid tiles
func (l *loader) loadOffshorePumps() error {
	pumps, err := section[offshorePumpDTO](l, "offshore-pump")
	if err != nil {
		return err
	}
	for key, dto := range pumps {
		usage, err := parsePower(dto.EnergyUsage)
		if err != nil {
			return fmt.Errorf("offshore-pump %q: energy_usage: %w", key, err)
		}
		source, err := convertEnergySource(dto.EnergySource)
		if err != nil {
			return fmt.Errorf("offshore-pump %q: %w", key, err)
		}
		l.cat.MiningDrills[key] = catalog.MiningDrillPrototype{
			Name:               orKey(dto.Name, key),
			EnergyUsage:        usage,
			MiningSpeed:        dto.PumpingSpeed,
			EnergySource:       source,
			ResourceCategories: []string{TileCategory},
		}
	}
	return nil
}

func (l *loader) loadCraftingMachines() error {
	for _, name := range []string{"assembling-machine", "furnace"} {
		machines, err := section[craftingMachineDTO](l, name)
		if err != nil {
			return err
		}
		for key, dto := range machines {
			usage, err := parsePower(dto.EnergyUsage)
			if err != nil {
				return fmt.Errorf("%s %q: energy_usage: %w", name, key, err)
			}
			source, err := convertEnergySource(dto.EnergySource)
			if err != nil {
				return fmt.Errorf("%s %q: %w", name, key, err)
			}
			l.cat.CraftingMachines[key] = catalog.CraftingMachinePrototype{
				Name:                    orKey(dto.Name, key),
				EnergyUsage:             usage,
				CraftingSpeed:           dto.CraftingSpeed,
				CraftingCategories:      dto.CraftingCategories,
				EnergySource:            source,
				EffectReceiver:          convertEffectReceiver(dto.EffectReceiver),
				AllowedEffects:          dto.AllowedEffects,
				AllowedModuleCategories: dto.AllowedModuleCategories,
				ModuleSlots:             dto.ModuleSlots,
			}
		}
	}
	return nil
}

func (l *loader) loadRecipes() error {
	recipes, err := section[recipeDTO](l, "recipe")
	if err != nil {
		return err
	}
	for key, dto := range recipes {
		ingredients, err := convertMaterials(dto.Ingredients)
		if err != nil {
			return fmt.Errorf("recipe %q: ingredients: %w", key, err)
		}
		results, err := convertMaterials(dto.Results)
		if err != nil {
			return fmt.Errorf("recipe %q: results: %w", key, err)
		}
		category := dto.Category
		if category == "" {
			category = defaultRecipeCategory
		}
		energy := defaultEnergyRequired
		if dto.EnergyRequired != nil {
			energy = *dto.EnergyRequired
		}

		var allowed []string
		for _, flag := range []struct {
			on   bool
			name string
		}{
			{dto.AllowConsumption, "consumption"},
			{dto.AllowSpeed, "speed"},
			{dto.AllowProductivity, "productivity"},
			{dto.AllowQuality, "quality"},
		} {
			if flag.on {
				allowed = append(allowed, flag.name)
			}
		}

		l.cat.Recipes[key] = catalog.RecipePrototype{
			Name:           orKey(dto.Name, key),
			Category:       category,
			Ingredients:    ingredients,
			Results:        results,
			EnergyRequired: energy,
			AllowedEffects: allowed,
		}
	}
	return nil
}

func (l *loader) loadModules() error {
	modules, err := section[moduleDTO](l, "module")
	if err != nil {
		return err
	}
	for key, dto := range modules {
		l.cat.Modules[key] = catalog.ModulePrototype{
			Name:     orKey(dto.Name, key),
			Category: dto.Category,
			Effects:  convertEffects(dto.Effect),
		}
	}
	return nil
}

func (l *loader) loadBeacons() error {
	beacons, err := section[beaconDTO](l, "beacon")
	if err != nil {
		return err
	}
	for key, dto := range beacons {
		usage, err := parsePower(dto.EnergyUsage)
		if err != nil {
			return fmt.Errorf("beacon %q: energy_usage: %w", key, err)
		}
		source, err := convertEnergySource(dto.EnergySource)
		if err != nil {
			return fmt.Errorf("beacon %q: %w", key, err)
		}
		l.cat.Beacons[key] = catalog.BeaconPrototype{
			Name:                    orKey(dto.Name, key),
			EnergySource:            source,
			EnergyUsage:             usage,
			Efficiency:              dto.DistributionEffectivity,
			EfficiencyPerQuality:    dto.EffectivityPerQuality,
			ModuleSlots:             dto.ModuleSlots,
			AllowedEffects:          dto.AllowedEffects,
			AllowedModuleCategories: dto.AllowedModuleCategories,
			Profile:                 dto.Profile,
			BeaconCounter:           dto.BeaconCounter,
		}
	}
	return nil
}

func convertMinable(dto *minableDTO) (catalog.Minable, error) {
	if dto == nil {
		return catalog.Minable{}, fmt.Errorf("missing minable")
	}
	m := catalog.Minable{MiningTime: dto.MiningTime}

	if dto.Result != "" {
		count := 1.0
		if dto.Count != nil {
			count = *dto.Count
		}
		m.Results = []material.Material{material.NewItem(dto.Result, count)}
	} else {
		results, err := convertMaterials(dto.Results)
		if err != nil {
			return catalog.Minable{}, fmt.Errorf("minable results: %w", err)
		}
		m.Results = results
	}

	if dto.RequiredFluid != "" {
		fluid := material.Material{Kind: material.KindFluid, Name: dto.RequiredFluid, Amount: dto.FluidAmount}
		if fluid.Amount == nil {
			fluid.Amount = material.Float(0)
		}
		m.InputFluid = &fluid
	}
	return m, nil
}

func convertMaterials(dtos []materialDTO) ([]material.Material, error) {
	out := make([]material.Material, 0, len(dtos))
	for _, dto := range dtos {
		m := material.Material{
			Kind:                  material.Kind(dto.Type),
			Name:                  dto.Name,
			Amount:                dto.Amount,
			AmountMin:             dto.AmountMin,
			AmountMax:             dto.AmountMax,
			Probability:           dto.Probability,
			IgnoredByProductivity: dto.IgnoredByProductivity,
		}
		switch m.Kind {
		case material.KindItem:
			m.ExtraCountFraction = dto.ExtraCountFraction
			if m.Amount == nil && m.AmountMin == nil && m.AmountMax == nil {
				m.Amount = material.Float(1)
			}
		case material.KindFluid:
			m.Temperature = dto.Temperature
		default:
			return nil, fmt.Errorf("unknown material type %q for %q", dto.Type, dto.Name)
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func convertEnergySource(dto energySourceDTO) (catalog.EnergySource, error) {
	source := catalog.EnergySource{Type: catalog.EnergySourceType(dto.Type)}
	switch source.Type {
	case catalog.EnergySourceElectric:
		drain, err := parsePower(dto.Drain)
		if err != nil {
			return source, fmt.Errorf("energy_source drain: %w", err)
		}
		source.Drain = drain
	case catalog.EnergySourceBurner:
		source.Effectivity = valueOr(dto.Effectivity, 1)
		source.FuelCategories = dto.FuelCategories
	case catalog.EnergySourceFluid:
		source.Effectivity = valueOr(dto.Effectivity, 1)
		source.BurnsFluid = dto.BurnsFluid
		source.FluidUsagePerTick = dto.FluidUsagePerTick
		source.ScaleFluidUsage = dto.ScaleFluidUsage
	case catalog.EnergySourceHeat, catalog.EnergySourceVoid:
	default:
		return source, fmt.Errorf("unknown energy source type %q", dto.Type)
	}
	return source, nil
}

func convertEffects(dto effectsDTO) catalog.Effects {
	return catalog.Effects{
		Consumption:  dto.Consumption,
		Speed:        dto.Speed,
		Productivity: dto.Productivity,
		Quality:      dto.Quality,
	}
}

func convertEffectReceiver(dto *effectReceiverDTO) *catalog.EffectReceiver {
	if dto == nil {
		return nil
	}
	receiver := &catalog.EffectReceiver{
		UsesModuleEffects:  dto.UsesModuleEffects,
		UsesBeaconEffects:  dto.UsesBeaconEffects,
		UsesSurfaceEffects: dto.UsesSurfaceEffects,
	}
	if dto.BaseEffect != nil {
		effects := convertEffects(*dto.BaseEffect)
		receiver.BaseEffect = &effects
	}
	return receiver
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func orKey(name, key string) string {
	if name == "" {
		return key
	}
	return name
}

// FileLoader loads catalogs from dump files on disk
type FileLoader struct{}

// LoadCatalog reads and converts the dump at path
func (FileLoader) LoadCatalog(path string) (*catalog.Catalog, error) {
	return Load(path)
}
