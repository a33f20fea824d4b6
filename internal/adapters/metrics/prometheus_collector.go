package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "factory_planner"
	// Subsystem for planner metrics
	subsystem = "planner"
)

var (
	// Registry is the Prometheus registry for all metrics; nil when metrics are disabled
	Registry *prometheus.Registry

	// globalPlanningCollector is set by SetGlobalPlanningCollector when metrics are enabled
	globalPlanningCollector PlanningMetricsRecorder
)

// PlanningMetricsRecorder records planner activity. Application code depends on this
// interface, never on Prometheus types.
type PlanningMetricsRecorder interface {
	RecordSolve(outcome string, generateInputs bool, durationSeconds float64, variables, constraints, spreads int)
	RecordLPCall(status string, durationSeconds float64)
}

// InitRegistry initializes the Prometheus registry.
// Should be called once at startup if metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the registry, nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalPlanningCollector sets the process-wide planning recorder
func SetGlobalPlanningCollector(collector PlanningMetricsRecorder) {
	globalPlanningCollector = collector
}

// RecordSolve records a completed solve globally
func RecordSolve(outcome string, generateInputs bool, durationSeconds float64, variables, constraints, spreads int) {
	if globalPlanningCollector != nil {
		globalPlanningCollector.RecordSolve(outcome, generateInputs, durationSeconds, variables, constraints, spreads)
	}
}

// RecordLPCall records one linear-program solve globally
func RecordLPCall(status string, durationSeconds float64) {
	if globalPlanningCollector != nil {
		globalPlanningCollector.RecordLPCall(status, durationSeconds)
	}
}
