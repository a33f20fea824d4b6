package catalog

// EnergySourceType is the kind of power a machine draws
type EnergySourceType string

const (
	EnergySourceElectric EnergySourceType = "electric"
	EnergySourceBurner   EnergySourceType = "burner"
	EnergySourceHeat     EnergySourceType = "heat"
	EnergySourceFluid    EnergySourceType = "fluid"
	EnergySourceVoid     EnergySourceType = "void"
)

// EnergySource describes how a machine is powered. Only the fields relevant to Type are set.
type EnergySource struct {
	Type EnergySourceType `json:"type"`

	// Electric
	Drain float64 `json:"drain,omitempty"`

	// Burner and fluid
	Effectivity    float64  `json:"effectivity,omitempty"`
	FuelCategories []string `json:"fuel_categories,omitempty"`

	// Fluid
	BurnsFluid        bool    `json:"burns_fluid,omitempty"`
	FluidUsagePerTick float64 `json:"fluid_usage_per_tick,omitempty"`
	ScaleFluidUsage   bool    `json:"scale_fluid_usage,omitempty"`
}

// MiningDrillPrototype describes a machine that runs Resource activities
type MiningDrillPrototype struct {
	Name                    string          `json:"name"`
	EnergyUsage             float64         `json:"energy_usage"`
	MiningSpeed             float64         `json:"mining_speed"`
	EnergySource            EnergySource    `json:"energy_source"`
	ResourceCategories      []string        `json:"resource_categories"`
	EffectReceiver          *EffectReceiver `json:"effect_receiver,omitempty"`
	AllowedEffects          []string        `json:"allowed_effects,omitempty"`
	AllowedModuleCategories []string        `json:"allowed_module_categories,omitempty"`
	ModuleSlots             int             `json:"module_slots"`
	ResourceDrainPercent    int             `json:"resource_drain_rate_percent"`
}

// CraftingMachinePrototype describes a machine that runs Recipe activities
type CraftingMachinePrototype struct {
	Name                    string          `json:"name"`
	EnergyUsage             float64         `json:"energy_usage"`
	CraftingSpeed           float64         `json:"crafting_speed"`
	CraftingCategories      []string        `json:"crafting_categories"`
	EnergySource            EnergySource    `json:"energy_source"`
	EffectReceiver          *EffectReceiver `json:"effect_receiver,omitempty"`
	AllowedEffects          []string        `json:"allowed_effects,omitempty"`
	AllowedModuleCategories []string        `json:"allowed_module_categories,omitempty"`
	ModuleSlots             int             `json:"module_slots"`
}

// ModulePrototype describes an insertable module
type ModulePrototype struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Effects  Effects `json:"effects"`
}

// BeaconPrototype describes a beacon that broadcasts module effects to nearby machines
type BeaconPrototype struct {
	Name                    string       `json:"name"`
	EnergySource            EnergySource `json:"energy_source"`
	EnergyUsage             float64      `json:"energy_usage"`
	Efficiency              float64      `json:"efficiency"`
	EfficiencyPerQuality    float64      `json:"efficiency_per_quality,omitempty"`
	ModuleSlots             int          `json:"module_slots"`
	AllowedEffects          []string     `json:"allowed_effects,omitempty"`
	AllowedModuleCategories []string     `json:"allowed_module_categories,omitempty"`
	Profile                 []float64    `json:"profile,omitempty"`
	BeaconCounter           string       `json:"beacon_counter,omitempty"`
}

// SupportsCategory reports whether the machine can run recipes of the given category
func (m CraftingMachinePrototype) SupportsCategory(category string) bool {
	return contains(m.CraftingCategories, category)
}

// SupportsCategory reports whether the drill can mine resources of the given category
func (m MiningDrillPrototype) SupportsCategory(category string) bool {
	return contains(m.ResourceCategories, category)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
