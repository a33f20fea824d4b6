package catalogdump

import "encoding/json"

// DTOs mirror the subset of the data dump the loader reads. Optional numbers are
// pointers so "absent" and "zero" stay distinguishable.

type itemDTO struct {
	Name         string          `json:"name"`
	StackSize    int             `json:"stack_size"`
	FuelCategory string          `json:"fuel_category"`
	FuelValue    json.RawMessage `json:"fuel_value"`
	BurntResult  string          `json:"burnt_result"`
	SpoilResult  string          `json:"spoil_result"`
	PlantResult  string          `json:"plant_result"`
}

type fluidDTO struct {
	Name      string          `json:"name"`
	FuelValue json.RawMessage `json:"fuel_value"`
}

type materialDTO struct {
	Type                  string   `json:"type"`
	Name                  string   `json:"name"`
	Amount                *float64 `json:"amount"`
	AmountMin             *float64 `json:"amount_min"`
	AmountMax             *float64 `json:"amount_max"`
	Probability           *float64 `json:"probability"`
	IgnoredByProductivity *float64 `json:"ignored_by_productivity"`
	ExtraCountFraction    *float64 `json:"extra_count_fraction"`
	Temperature           *float64 `json:"temperature"`
}

type minableDTO struct {
	MiningTime    float64       `json:"mining_time"`
	Result        string        `json:"result"`
	Count         *float64      `json:"count"`
	Results       []materialDTO `json:"results"`
	RequiredFluid string        `json:"required_fluid"`
	FluidAmount   *float64      `json:"fluid_amount"`
}

type resourceDTO struct {
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Minable  *minableDTO `json:"minable"`
}

type tileDTO struct {
	Name  string `json:"name"`
	Fluid string `json:"fluid"`
}

type plantDTO struct {
	Name        string      `json:"name"`
	GrowthTicks int         `json:"growth_ticks"`
	Minable     *minableDTO `json:"minable"`
}

type effectsDTO struct {
	Consumption  *float64 `json:"consumption"`
	Speed        *float64 `json:"speed"`
	Productivity *float64 `json:"productivity"`
	Quality      *float64 `json:"quality"`
}

type effectReceiverDTO struct {
	BaseEffect         *effectsDTO `json:"base_effect"`
	UsesModuleEffects  bool        `json:"uses_module_effects"`
	UsesBeaconEffects  bool        `json:"uses_beacon_effects"`
	UsesSurfaceEffects bool        `json:"uses_surface_effects"`
}

type energySourceDTO struct {
	Type              string   `json:"type"`
	Drain             string   `json:"drain"`
	Effectivity       *float64 `json:"effectivity"`
	FuelCategories    []string `json:"fuel_categories"`
	BurnsFluid        bool     `json:"burns_fluid"`
	FluidUsagePerTick float64  `json:"fluid_usage_per_tick"`
	ScaleFluidUsage   bool     `json:"scale_fluid_usage"`
}

type miningDrillDTO struct {
	Name                    string             `json:"name"`
	EnergyUsage             string             `json:"energy_usage"`
	MiningSpeed             float64            `json:"mining_speed"`
	EnergySource            energySourceDTO    `json:"energy_source"`
	ResourceCategories      []string           `json:"resource_categories"`
	EffectReceiver          *effectReceiverDTO `json:"effect_receiver"`
	AllowedEffects          []string           `json:"allowed_effects"`
	AllowedModuleCategories []string           `json:"allowed_module_categories"`
	ModuleSlots             int                `json:"module_slots"`
	ResourceDrainPercent    *int               `json:"resource_drain_rate_percent"`
}

type offshorePumpDTO struct {
	Name         string          `json:"name"`
	EnergyUsage  string          `json:"energy_usage"`
	PumpingSpeed float64         `json:"pumping_speed"`
	EnergySource energySourceDTO `json:"energy_source"`
}

type craftingMachineDTO struct {
	Name                    string             `json:"name"`
	EnergyUsage             string             `json:"energy_usage"`
	CraftingSpeed           float64            `json:"crafting_speed"`
	CraftingCategories      []string           `json:"crafting_categories"`
	EnergySource            energySourceDTO    `json:"energy_source"`
	EffectReceiver          *effectReceiverDTO `json:"effect_receiver"`
	AllowedEffects          []string           `json:"allowed_effects"`
	AllowedModuleCategories []string           `json:"allowed_module_categories"`
	ModuleSlots             int                `json:"module_slots"`
}

type recipeDTO struct {
	Name              string        `json:"name"`
	Category          string        `json:"category"`
	Ingredients       []materialDTO `json:"ingredients"`
	Results           []materialDTO `json:"results"`
	EnergyRequired    *float64      `json:"energy_required"`
	AllowConsumption  bool          `json:"allow_consumption"`
	AllowSpeed        bool          `json:"allow_speed"`
	AllowProductivity bool          `json:"allow_productivity"`
	AllowQuality      bool          `json:"allow_quality"`
}

type moduleDTO struct {
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Effect   effectsDTO `json:"effect"`
}

type beaconDTO struct {
	Name                    string          `json:"name"`
	EnergySource            energySourceDTO `json:"energy_source"`
	EnergyUsage             string          `json:"energy_usage"`
	DistributionEffectivity float64         `json:"distribution_effectivity"`
	EffectivityPerQuality   float64         `json:"distribution_effectivity_bonus_per_quality_level"`
	ModuleSlots             int             `json:"module_slots"`
	AllowedEffects          []string        `json:"allowed_effects"`
	AllowedModuleCategories []string        `json:"allowed_module_categories"`
	Profile                 []float64       `json:"profile"`
	BeaconCounter           string          `json:"beacon_counter"`
}
