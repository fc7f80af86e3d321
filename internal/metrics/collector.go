// Package metrics exposes Prometheus instrumentation for engine runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "mixrng"

// Run outcomes used as the "outcome" label of mixrng_runs_total.
const (
	OutcomeSuccess  = "success"
	OutcomeResource = "resource_error"
	OutcomeContract = "contract_error"
)

// Collector records engine runs. A nil *Collector is valid and records nothing.
type Collector struct {
	gatherer   prometheus.Gatherer
	runs       *prometheus.CounterVec
	workers    prometheus.Counter
	iterations prometheus.Counter
	duration   prometheus.Histogram
}

// NewCollector registers the run metrics on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c, err := NewCollectorWith(reg, reg)
	if err != nil {
		// A fresh registry cannot hold conflicting collectors.
		panic(err)
	}
	return c
}

// NewCollectorWith registers the run metrics on reg. gatherer is used by
// WriteTextfile and is usually the same registry.
func NewCollectorWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) (*Collector, error) {
	c := &Collector{
		gatherer: gatherer,
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Engine runs that passed validation, by outcome.",
		}, []string{"outcome"}),
		workers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "workers_total",
			Help:      "Workers that ran to completion.",
		}),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "iterations_total",
			Help:      "Mixing steps applied across all completed workers.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of engine runs.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
		}),
	}
	for _, col := range []prometheus.Collector{c.runs, c.workers, c.iterations, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveRun records one run. Workers and loops are counted only on success.
func (c *Collector) ObserveRun(outcome string, workers, loops int, d time.Duration) {
	if c == nil {
		return
	}
	c.runs.WithLabelValues(outcome).Inc()
	c.duration.Observe(d.Seconds())
	if outcome == OutcomeSuccess {
		c.workers.Add(float64(workers))
		c.iterations.Add(float64(workers) * float64(loops))
	}
}

// Gatherer returns the gatherer backing this collector.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.gatherer
}

// WriteTextfile writes the current metrics to path in the text exposition
// format read by the node exporter's textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.gatherer)
}
