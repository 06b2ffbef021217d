package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the Prometheus collectors for the scanner
type Registry struct {
	registry *prometheus.Registry

	// Scan outcomes and latency
	Scans        *prometheus.CounterVec
	ScanDuration *prometheus.HistogramVec

	// Per-symbol results
	PriceSources *prometheus.CounterVec
	Signals      *prometheus.CounterVec

	// Single-symbol analyses
	Analyses *prometheus.CounterVec
}

// New creates a registry with every collector registered on a private
// prometheus.Registry, so tests can build as many as they like.
func New() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		Scans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scanner_scans_total",
				Help: "Total number of batch scans by outcome (live or fallback)",
			},
			[]string{"outcome"},
		),

		ScanDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scanner_scan_duration_seconds",
				Help:    "Duration of batch scans in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"outcome"},
		),

		PriceSources: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scanner_price_source_total",
				Help: "Scanned symbols by price data source",
			},
			[]string{"source"},
		),

		Signals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scanner_signals_total",
				Help: "Recommendations produced by signal",
			},
			[]string{"signal"},
		),

		Analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scanner_analyses_total",
				Help: "Single-symbol analyses by outcome",
			},
			[]string{"outcome"},
		),
	}

	r.registry.MustRegister(
		r.Scans,
		r.ScanDuration,
		r.PriceSources,
		r.Signals,
		r.Analyses,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Gatherer exposes the underlying registry for tests
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Outcome maps a fallback flag to a label value
func Outcome(fallback bool) string {
	if fallback {
		return "fallback"
	}
	return "live"
}
