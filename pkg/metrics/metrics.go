// Package metrics defines the Prometheus metric collectors used to compare
// operation counts between the classical and quantum matchers.
package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds all Prometheus collectors for the search pipeline.
type Metrics struct {
	GateOpsTotal               *prometheus.CounterVec
	OracleApplicationsTotal    prometheus.Counter
	DiffusionApplicationsTotal prometheus.Counter
	TrialsTotal                *prometheus.CounterVec
	GroverIterations           prometheus.Histogram
	KMPComparisonsTotal        prometheus.Counter
	SearchDuration             *prometheus.HistogramVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Default returns the process-wide metrics instance, registering the
// collectors on first use.
func Default() *Metrics {
	once.Do(func() {
		defaultMetrics = newMetrics()
	})
	return defaultMetrics
}

// newMetrics creates and registers all Prometheus metrics.
func newMetrics() *Metrics {
	m := &Metrics{
		GateOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qsim_gate_ops_total",
				Help: "Total simulated gate applications by gate type.",
			},
			[]string{"gate"},
		),
		OracleApplicationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "grover_oracle_applications_total",
				Help: "Total phase-oracle applications across all trials.",
			},
		),
		DiffusionApplicationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "grover_diffusion_applications_total",
				Help: "Total diffusion-operator applications across all trials.",
			},
		),
		TrialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grover_trials_total",
				Help: "Total measurement trials by outcome (hit, miss, padding).",
			},
			[]string{"outcome"},
		),
		GroverIterations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "grover_iterations_per_search",
				Help:    "Grover iteration count per search instance.",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 34},
			},
		),
		KMPComparisonsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "kmp_comparisons_total",
				Help: "Total symbol comparisons performed by the classical matcher.",
			},
		),
		SearchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_duration_seconds",
				Help:    "Wall-clock search duration by matcher (classical, quantum).",
				Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"matcher"},
		),
	}

	prometheus.MustRegister(
		m.GateOpsTotal,
		m.OracleApplicationsTotal,
		m.DiffusionApplicationsTotal,
		m.TrialsTotal,
		m.GroverIterations,
		m.KMPComparisonsTotal,
		m.SearchDuration,
	)

	return m
}

// Dump renders every registered metric family in the Prometheus text
// exposition format. There is no scrape server; the CLI prints this at the
// end of a run.
func Dump() (string, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	enc := expfmt.NewEncoder(&sb, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}
