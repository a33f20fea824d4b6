package config

// SolverConfig controls the planner and its linear-programming backend
type SolverConfig struct {
	// Backend selects the LP implementation; only "simplex" is built in
	Backend string `mapstructure:"backend" validate:"required,oneof=simplex"`

	// Tolerance is the probe width above which a material is reported as spreading
	Tolerance float64 `mapstructure:"tolerance" validate:"gt=0"`

	// PrimitiveTolerance is handed to the simplex implementation
	PrimitiveTolerance float64 `mapstructure:"primitive_tolerance" validate:"gt=0"`
}
