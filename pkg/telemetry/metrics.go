package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics for agentkit.
type Metrics struct {
	config MetricsConfig

	// Discovery metrics
	componentsDiscovered *prometheus.GaugeVec

	// Resolution metrics
	resolutionsTotal   *prometheus.CounterVec
	cyclesDetected     prometheus.Counter
	resolutionDuration prometheus.Histogram

	// Install metrics
	installsTotal   *prometheus.CounterVec
	installDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector with the given configuration.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		// Return a no-op metrics instance
		return &Metrics{config: cfg}, nil
	}

	namespace := cfg.Namespace
	buckets := cfg.DefaultHistogramBuckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		componentsDiscovered: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "components_discovered",
				Help:      "Number of components discovered in the last scan",
			},
			[]string{"category"},
		),
		resolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Total number of dependency resolutions performed",
			},
			[]string{"outcome"},
		),
		cyclesDetected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cycles_detected_total",
				Help:      "Total number of circular dependencies detected",
			},
		),
		resolutionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "resolution_duration_seconds",
				Help:      "Duration of dependency resolution in seconds",
				Buckets:   buckets,
			},
		),
		installsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "installs_total",
				Help:      "Total number of install runs",
			},
			[]string{"status"},
		),
		installDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "install_duration_seconds",
				Help:      "Duration of install runs in seconds",
				Buckets:   buckets,
			},
		),
	}

	collectors := []prometheus.Collector{
		m.componentsDiscovered,
		m.resolutionsTotal,
		m.cyclesDetected,
		m.resolutionDuration,
		m.installsTotal,
		m.installDuration,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// SetComponentsDiscovered records the component count for a category.
func (m *Metrics) SetComponentsDiscovered(category string, count int) {
	if m.registry == nil {
		return
	}
	m.componentsDiscovered.WithLabelValues(category).Set(float64(count))
}

// RecordResolution records the outcome and duration of a resolution call.
func (m *Metrics) RecordResolution(outcome string, seconds float64) {
	if m.registry == nil {
		return
	}
	m.resolutionsTotal.WithLabelValues(outcome).Inc()
	m.resolutionDuration.Observe(seconds)
}

// RecordCycleDetected counts a detected circular dependency.
func (m *Metrics) RecordCycleDetected() {
	if m.registry == nil {
		return
	}
	m.cyclesDetected.Inc()
}

// RecordInstall records the status and duration of an install run.
func (m *Metrics) RecordInstall(status string, seconds float64) {
	if m.registry == nil {
		return
	}
	m.installsTotal.WithLabelValues(status).Inc()
	m.installDuration.Observe(seconds)
}

// Handler returns an HTTP handler exposing the metrics in Prometheus
// exposition format, or nil when metrics are disabled.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return nil
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
