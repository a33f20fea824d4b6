package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PlanningMetricsCollector holds solve and LP metrics
type PlanningMetricsCollector struct {
	solvesTotal   *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	problemSize   *prometheus.GaugeVec
	spreadsTotal  prometheus.Counter

	lpCallsTotal  *prometheus.CounterVec
	lpCallSeconds prometheus.Histogram
}

// NewPlanningMetricsCollector creates a new planning metrics collector
func NewPlanningMetricsCollector() *PlanningMetricsCollector {
	return &PlanningMetricsCollector{
		solvesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solves_total",
				Help:      "Total number of model solves by outcome",
			},
			[]string{"outcome", "generate_inputs"},
		),
		solveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Model solve duration including all probes",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"outcome"},
		),
		problemSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "last_problem_size",
				Help:      "Variables and constraints of the most recent formulation",
			},
			[]string{"dimension"},
		),
		spreadsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "spreads_total",
				Help:      "Materials reported with a non-unique optimal amount",
			},
		),
		lpCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "lp_calls_total",
				Help:      "Linear programs handed to the backend by status",
			},
			[]string{"status"},
		),
		lpCallSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "lp_call_duration_seconds",
				Help:      "Duration of a single linear-program solve",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),
	}
}

// Register registers all planning metrics with the Prometheus registry
func (c *PlanningMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	for _, metric := range []prometheus.Collector{
		c.solvesTotal,
		c.solveDuration,
		c.problemSize,
		c.spreadsTotal,
		c.lpCallsTotal,
		c.lpCallSeconds,
	} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordSolve records one completed solve
func (c *PlanningMetricsCollector) RecordSolve(outcome string, generateInputs bool, durationSeconds float64, variables, constraints, spreads int) {
	c.solvesTotal.WithLabelValues(outcome, strconv.FormatBool(generateInputs)).Inc()
	c.solveDuration.WithLabelValues(outcome).Observe(durationSeconds)
	c.problemSize.WithLabelValues("variables").Set(float64(variables))
	c.problemSize.WithLabelValues("constraints").Set(float64(constraints))
	c.spreadsTotal.Add(float64(spreads))
}

// RecordLPCall records one backend call; status is "optimal", "infeasible", "unbounded" or "error"
func (c *PlanningMetricsCollector) RecordLPCall(status string, durationSeconds float64) {
	c.lpCallsTotal.WithLabelValues(status).Inc()
	c.lpCallSeconds.Observe(durationSeconds)
}
