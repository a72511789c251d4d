// Package metrics defines the prometheus collectors for the planning
// service surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the collectors owned by one server instance.
type Metrics struct {
	Registry *prometheus.Registry

	PlansTotal   *prometheus.CounterVec
	PlanDuration prometheus.Histogram
	HubsPerPlan  prometheus.Histogram
}

// New creates the collectors on a private registry, so tests and
// embedded servers never fight over the global one.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		PlansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strata_plans_total",
				Help: "Planning requests by outcome.",
			},
			[]string{"outcome"},
		),
		PlanDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "strata_plan_duration_seconds",
				Help:    "Wall time spent computing one layout plan.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		HubsPerPlan: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "strata_hubs_per_plan",
				Help:    "Number of hubs in a computed plan.",
				Buckets: prometheus.LinearBuckets(1, 2, 10),
			},
		),
	}
	m.Registry.MustRegister(m.PlansTotal, m.PlanDuration, m.HubsPerPlan)
	return m
}
