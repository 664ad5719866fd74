// Package metrics provides Prometheus metrics for the coinrng service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// batchSizeBuckets cover the accepted batch range [2, 101).
var batchSizeBuckets = []float64{2, 5, 10, 25, 50, 75, 100} //nolint:gochecknoglobals // fixed bucket layout

// Manager manages all Prometheus metrics for the coinrng service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Coin Metrics
	flips              *prometheus.CounterVec
	batchSize          prometheus.Histogram
	validationFailures *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "coinrng",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	// Coin Metrics - what the service hands out
	m.flips = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "coin_flips_total",
			Help:        "Total number of coin flips by resulting side",
			ConstLabels: m.constLabels,
		},
		[]string{"side"},
	)

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "coin_batch_size",
		Help:        "Number of flips requested per batch",
		Buckets:     batchSizeBuckets,
		ConstLabels: m.constLabels,
	})

	m.validationFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "validation_failures_total",
			Help:        "Total number of rejected path parameters by violated constraint",
			ConstLabels: m.constLabels,
		},
		[]string{"constraint"},
	)

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds (user experience)",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_in_flight",
		Help:        "Number of HTTP requests currently being served",
		ConstLabels: m.constLabels,
	})

	// Error Metrics
	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Total number of errors by type",
			ConstLabels: m.constLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Total number of errors by endpoint",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.constLabels,
	})
}

// Enabled reports whether recording is active for this manager.
func (m *Manager) Enabled() bool { return m.enabled }

// RecordFlip increments the flip counter for side.
func (m *Manager) RecordFlip(side string) {
	if !m.enabled {
		return
	}
	m.flips.WithLabelValues(side).Inc()
}

// RecordBatchSize observes the size of a requested batch.
func (m *Manager) RecordBatchSize(n int) {
	if !m.enabled {
		return
	}
	m.batchSize.Observe(float64(n))
}

// RecordValidationFailure increments the rejected-parameter counter.
func (m *Manager) RecordValidationFailure(constraint string) {
	if !m.enabled {
		return
	}
	m.validationFailures.WithLabelValues(constraint).Inc()
}

// RecordHTTPRequest records an HTTP request with its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// AddInFlight adjusts the in-flight request gauge by delta.
func (m *Manager) AddInFlight(delta int) {
	if !m.enabled {
		return
	}
	m.httpInFlight.Add(float64(delta))
}

// RecordError records an error by endpoint and by type/severity.
func (m *Manager) RecordError(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystem sets memory and goroutine gauges and observes the average GC pause.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int, avgGCPauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if avgGCPauseMs > 0 {
		m.systemGCPauseTime.Observe(avgGCPauseMs)
	}
}

// Global helpers delegate to the process-wide manager.

// RecordFlip increments the flip counter for side.
func RecordFlip(side string) { globalManager.RecordFlip(side) }

// RecordBatchSize observes the size of a requested batch.
func RecordBatchSize(n int) { globalManager.RecordBatchSize(n) }

// RecordValidationFailure increments the rejected-parameter counter.
func RecordValidationFailure(constraint string) { globalManager.RecordValidationFailure(constraint) }

// RecordHTTPRequest records an HTTP request with its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// AddInFlight adjusts the in-flight request gauge by delta.
func AddInFlight(delta int) { globalManager.AddInFlight(delta) }

// RecordError records an error by endpoint and by type/severity.
func RecordError(endpoint, method, errorType, severity string) {
	globalManager.RecordError(endpoint, method, errorType, severity)
}

// UpdateSystem sets process-level gauges.
func UpdateSystem(memBytes uint64, goroutines int, avgGCPauseMs float64) {
	globalManager.UpdateSystem(memBytes, goroutines, avgGCPauseMs)
}

// SetEnabled toggles recording on the process-wide manager.
func SetEnabled(enabled bool) { globalManager.enabled = enabled }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
