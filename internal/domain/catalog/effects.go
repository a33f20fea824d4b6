package catalog

// Effects is a set of additive modifiers. Nil fields contribute nothing.
type Effects struct {
	Consumption  *float64 `json:"consumption,omitempty"`
	Speed        *float64 `json:"speed,omitempty"`
	Productivity *float64 `json:"productivity,omitempty"`
	Quality      *float64 `json:"quality,omitempty"`
}

// ProductivityOrZero returns the productivity modifier or 0
func (e Effects) ProductivityOrZero() float64 {
	if e.Productivity == nil {
		return 0
	}
	return *e.Productivity
}

// SpeedOrZero returns the speed modifier or 0
func (e Effects) SpeedOrZero() float64 {
	if e.Speed == nil {
		return 0
	}
	return *e.Speed
}

// EffectReceiver describes which effect sources a machine accepts
type EffectReceiver struct {
	BaseEffect         *Effects `json:"base_effect,omitempty"`
	UsesModuleEffects  bool     `json:"uses_module_effects"`
	UsesBeaconEffects  bool     `json:"uses_beacon_effects"`
	UsesSurfaceEffects bool     `json:"uses_surface_effects"`
}

// DefaultEffectReceiver is used for machines that do not declare a receiver
func DefaultEffectReceiver() EffectReceiver {
	return EffectReceiver{
		UsesModuleEffects:  true,
		UsesBeaconEffects:  true,
		UsesSurfaceEffects: true,
	}
}

// ReceiverOrDefault dereferences r, falling back to DefaultEffectReceiver
func ReceiverOrDefault(r *EffectReceiver) EffectReceiver {
	if r == nil {
		return DefaultEffectReceiver()
	}
	return *r
}
