package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder has the same method set as nn.Recorder, the narrow interface
// pkg/nn's indices accept to optionally report search and rebuild activity
// (so the core package never imports Prometheus). Metrics satisfies both.
type Recorder interface {
	RecordSearch(indexKind string, duration time.Duration)
	RecordRebuild(indexKind string)
}

// Metrics holds the Prometheus collectors for a generation run and its
// optional control plane.
type Metrics struct {
	registry *prometheus.Registry

	// PlacementsTotal counts pixels successfully placed onto the canvas.
	PlacementsTotal prometheus.Counter

	// TreeRebuildsTotal counts index builds reported through RecordRebuild,
	// by index kind: a kd or vp tree reports once when its recorder is
	// attached, a forest once per sub-index it builds.
	TreeRebuildsTotal *prometheus.CounterVec

	// SearchDuration records nearest-neighbor search latency, by index
	// kind (exhaustive, kd, vp, forest).
	SearchDuration *prometheus.HistogramVec

	// FrontierSize tracks the current number of live candidate pixels in
	// the active frontier.
	FrontierSize prometheus.Gauge
}

// NewMetrics creates a Metrics bound to a fresh registry, so repeated calls
// in tests don't collide with a shared default registerer.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		PlacementsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pixelforest_placements_total",
				Help: "Total number of pixels placed onto the canvas",
			},
		),
		TreeRebuildsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pixelforest_tree_rebuilds_total",
				Help: "Total number of index rebuilds, by index kind",
			},
			[]string{"index_kind"},
		),
		SearchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pixelforest_search_duration_seconds",
				Help:    "Nearest-neighbor search latency in seconds, by index kind",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"index_kind"},
		),
		FrontierSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pixelforest_frontier_size",
				Help: "Current number of live candidate pixels in the frontier",
			},
		),
	}
}

// Registry returns the registry Metrics' collectors are registered with, for
// wiring into an HTTP handler (promhttp.HandlerFor).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordPlacement records a single successful placement.
func (m *Metrics) RecordPlacement() {
	m.PlacementsTotal.Inc()
}

// RecordSearch implements Recorder.
func (m *Metrics) RecordSearch(indexKind string, duration time.Duration) {
	m.SearchDuration.WithLabelValues(indexKind).Observe(duration.Seconds())
}

// RecordRebuild implements Recorder.
func (m *Metrics) RecordRebuild(indexKind string) {
	m.TreeRebuildsTotal.WithLabelValues(indexKind).Inc()
}

// UpdateFrontierSize sets the current frontier size.
func (m *Metrics) UpdateFrontierSize(size int) {
	m.FrontierSize.Set(float64(size))
}
