// Package metrics provides Prometheus metrics for the tuna catalog service.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Catalog tables tracked by the row gauges.
const (
	TableArtists    = "artists"
	TableSongs      = "songs"
	TableGenres     = "genres"
	TableSongGenres = "song_genres"
)

var catalogTables = []string{TableArtists, TableSongs, TableGenres, TableSongGenres}

// LatencyBucketsMs are the histogram buckets for latencies recorded in milliseconds.
var LatencyBucketsMs = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// Row store
	repositoryQueryLatency *prometheus.HistogramVec
	repositoryErrors       *prometheus.CounterVec

	// Catalog
	catalogRows      *prometheus.GaugeVec
	catalogMutations *prometheus.CounterVec
	notFound         *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // avoids default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(
		WithPrometheusRegistry(customRegistry),
		WithHistogramBuckets(LatencyBucketsMs),
	)
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tuna",
		subsystem:        "catalog",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint, method and status",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

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

	m.repositoryQueryLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "repository_query_latency_milliseconds",
			Help:        "Row store operation latency in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"operation"},
	)

	m.repositoryErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "repository_errors_total",
			Help:        "Row store operations that failed for reasons other than a missing row",
			ConstLabels: m.constLabels,
		},
		[]string{"operation"},
	)

	m.catalogRows = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "rows",
			Help:        "Number of rows per catalog table",
			ConstLabels: m.constLabels,
		},
		[]string{"table"},
	)

	m.catalogMutations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "mutations_total",
			Help:        "Successful create, update and delete operations by entity",
			ConstLabels: m.constLabels,
		},
		[]string{"entity", "action"},
	)

	m.notFound = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "not_found_total",
			Help:        "Lookups that did not match any row, by entity",
			ConstLabels: m.constLabels,
		},
		[]string{"entity"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError records a failed request by endpoint and by type.
func (m *Manager) RecordError(endpoint, method, errorType, severity string) {
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordRepositoryQuery records the latency of a row store operation.
func (m *Manager) RecordRepositoryQuery(operation string, latencyMs float64, failed bool) {
	m.repositoryQueryLatency.WithLabelValues(operation).Observe(latencyMs)
	if failed {
		m.repositoryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordMutation counts a successful write on entity.
func (m *Manager) RecordMutation(entity, action string) {
	m.catalogMutations.WithLabelValues(entity, action).Inc()
}

// RecordNotFound counts a lookup miss on entity.
func (m *Manager) RecordNotFound(entity string) {
	m.notFound.WithLabelValues(entity).Inc()
}

// SetCatalogRows sets the row gauge of a catalog table.
func (m *Manager) SetCatalogRows(table string, rows int64) error {
	for _, t := range catalogTables {
		if t == table {
			m.catalogRows.WithLabelValues(table).Set(float64(rows))
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownTable, table)
}

// UpdateSystem sets memory and goroutine gauges.
func (m *Manager) UpdateSystem(heapBytes uint64, goroutines int) {
	m.systemMemoryUsage.Set(float64(heapBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordError records a failed request on the global manager.
func RecordError(endpoint, method, errorType, severity string) {
	globalManager.RecordError(endpoint, method, errorType, severity)
}

// RecordRepositoryQuery records a row store operation on the global manager.
func RecordRepositoryQuery(operation string, latencyMs float64, failed bool) {
	globalManager.RecordRepositoryQuery(operation, latencyMs, failed)
}

// RecordMutation counts a write on the global manager.
func RecordMutation(entity, action string) {
	globalManager.RecordMutation(entity, action)
}

// RecordNotFound counts a lookup miss on the global manager.
func RecordNotFound(entity string) {
	globalManager.RecordNotFound(entity)
}

// SetCatalogRows sets a row gauge on the global manager.
func SetCatalogRows(table string, rows int64) error {
	return globalManager.SetCatalogRows(table, rows)
}

// UpdateSystem sets the system gauges on the global manager.
func UpdateSystem(heapBytes uint64, goroutines int) {
	globalManager.UpdateSystem(heapBytes, goroutines)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
