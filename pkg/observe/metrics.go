package observe

import (
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dwijnand/servo/pkg/link"
)

// MetricsConfig configures the Prometheus monitor.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "servo").
	Namespace string

	// Subsystem is the metrics subsystem (default: "link").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus monitor.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "servo",
		Subsystem: "link",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a link.Monitor backed by Prometheus. One instance may serve
// any number of link elements; register it on each via link.WithMonitor.
type Metrics struct {
	requestsTotal prometheus.Counter
	loadsStarted  prometheus.Counter
	loadsFinished *prometheus.CounterVec
	batchesTotal  *prometheus.CounterVec
	staleDiscards prometheus.Counter
	iconNotices   prometheus.Counter
	pendingLoads  prometheus.Gauge
}

// Prometheus creates a Prometheus-backed monitor.
//
// Metrics collected:
//   - servo_link_requests_total: Counter of load generations issued
//   - servo_link_loads_started_total: Counter of sub-loads entering flight
//   - servo_link_loads_finished_total: Counter of sub-load completions by result
//   - servo_link_batches_total: Counter of completed batches by outcome
//   - servo_link_stale_discards_total: Counter of completions discarded unused
//   - servo_link_icon_notices_total: Counter of icon notices sent to the embedder
//   - servo_link_pending_loads: Gauge of sub-loads currently in flight
//
// Example:
//
//	mon := observe.Prometheus(observe.WithNamespace("myapp"))
//	el := link.New(doc, loader, link.WithMonitor(mon))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		requestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of stylesheet load generations issued",
			ConstLabels: config.ConstLabels,
		}),

		loadsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "loads_started_total",
			Help:        "Total number of sub-loads entering flight",
			ConstLabels: config.ConstLabels,
		}),

		loadsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "loads_finished_total",
			Help:        "Total number of sub-load completions by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		batchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "batches_total",
			Help:        "Total number of completed load batches by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		staleDiscards: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "stale_discards_total",
			Help:        "Total number of completed resources discarded unused",
			ConstLabels: config.ConstLabels,
		}),

		iconNotices: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "icon_notices_total",
			Help:        "Total number of icon notices dispatched to the embedder",
			ConstLabels: config.ConstLabels,
		}),

		pendingLoads: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pending_loads",
			Help:        "Number of sub-loads currently in flight",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RequestStarted implements link.Monitor.
func (m *Metrics) RequestStarted(gen link.GenerationID, u *url.URL) {
	m.requestsTotal.Inc()
}

// LoadStarted implements link.Monitor.
func (m *Metrics) LoadStarted(gen link.GenerationID) {
	m.loadsStarted.Inc()
	m.pendingLoads.Inc()
}

// LoadFinished implements link.Monitor.
func (m *Metrics) LoadFinished(gen link.GenerationID, succeeded bool) {
	result := "success"
	if !succeeded {
		result = "failure"
	}
	m.loadsFinished.WithLabelValues(result).Inc()
	m.pendingLoads.Dec()
}

// BatchCompleted implements link.Monitor.
func (m *Metrics) BatchCompleted(gen link.GenerationID, anyFailed bool) {
	outcome := "clean"
	if anyFailed {
		outcome = "degraded"
	}
	m.batchesTotal.WithLabelValues(outcome).Inc()
}

// StaleDiscard implements link.Monitor.
func (m *Metrics) StaleDiscard(gen link.GenerationID) {
	m.staleDiscards.Inc()
}

// IconNotified implements link.Monitor.
func (m *Metrics) IconNotified(u *url.URL) {
	m.iconNotices.Inc()
}
