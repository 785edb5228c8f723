package sweep

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Evaluation status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics records sweep activity on a private registry so that concurrent
// runs in one process never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	Evaluations        *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	CacheHits          prometheus.Counter
}

// NewMetrics registers the sweep collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "southpole_sweep_evaluations_total",
				Help: "Scenario evaluations by outcome",
			},
			[]string{"status"},
		),
		EvaluationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "southpole_sweep_evaluation_duration_seconds",
				Help:    "Time to evaluate one scenario",
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
			},
		),
		CacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "southpole_sweep_cache_hits_total",
				Help: "Scenario evaluations served from the memoisation cache",
			},
		),
	}
}

// Gatherer exposes the registry for scraping or inspection.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the current metrics in the Prometheus text format,
// suitable for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Gatherer())
}
