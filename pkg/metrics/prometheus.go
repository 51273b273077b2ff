// Package metrics provides Prometheus metrics for the wcarank service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcome label values.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeDecode   = "decode_error"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Dataset metrics
	datasetRows         *prometheus.GaugeVec
	mergedRows          prometheus.Gauge
	datasetLoadDuration prometheus.Histogram
	datasetLoadErrors   *prometheus.CounterVec
	datasetLastLoadUnix prometheus.Gauge
	datasetCacheHits    prometheus.Counter
	datasetCacheMisses  prometheus.Counter

	// Query metrics
	rankQueries      *prometheus.CounterVec
	rankQueryLatency prometheus.Histogram
	decodeErrors     *prometheus.CounterVec
	indexGroups      prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "wcarank",
		subsystem:        "rankings",
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

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels, Buckets: buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.datasetRows = auto.NewGaugeVec(m.gaugeOpts("dataset_rows", "Rows read per source dataset"), []string{"dataset"})
	m.mergedRows = auto.NewGauge(m.gaugeOpts("merged_rows", "Rows in the joined dataset"))
	m.datasetLoadDuration = auto.NewHistogram(m.histogramOpts(
		"dataset_load_duration_milliseconds", "Time spent fetching and parsing the datasets",
		[]float64{10, 50, 100, 500, 1000, 5000, 10000, 30000, 60000},
	))
	m.datasetLoadErrors = auto.NewCounterVec(m.counterOpts("dataset_load_errors_total", "Dataset load failures by kind"), []string{"kind"})
	m.datasetLastLoadUnix = auto.NewGauge(m.gaugeOpts("dataset_last_load_unix", "Unix time of the last successful load"))
	m.datasetCacheHits = auto.NewCounter(m.counterOpts("dataset_cache_hits_total", "Dataset loads answered from cache"))
	m.datasetCacheMisses = auto.NewCounter(m.counterOpts("dataset_cache_misses_total", "Dataset loads that went to the source"))

	m.rankQueries = auto.NewCounterVec(m.counterOpts("rank_queries_total", "Rank lookups by outcome"), []string{"outcome"})
	m.rankQueryLatency = auto.NewHistogram(m.histogramOpts(
		"rank_query_latency_milliseconds", "Rank lookup latency in milliseconds", m.histogramBuckets,
	))
	m.decodeErrors = auto.NewCounterVec(m.counterOpts("decode_errors_total", "Result values that could not be decoded"), []string{"event"})
	m.indexGroups = auto.NewGauge(m.gaugeOpts("index_groups", "Distinct (event, region) groups in the store"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// UpdateDatasetRows sets the row count read from a source dataset.
func UpdateDatasetRows(dataset string, rows int) {
	globalManager.datasetRows.WithLabelValues(dataset).Set(float64(rows))
}

// UpdateMergedRows sets the row count of the joined dataset.
func UpdateMergedRows(rows int) {
	globalManager.mergedRows.Set(float64(rows))
}

// RecordDatasetLoad records a successful load and its duration.
func RecordDatasetLoad(durationMs float64, unix int64) {
	globalManager.datasetLoadDuration.Observe(durationMs)
	globalManager.datasetLastLoadUnix.Set(float64(unix))
}

// RecordDatasetLoadError counts a failed load by kind (fetch, empty, ...).
func RecordDatasetLoadError(kind string) {
	globalManager.datasetLoadErrors.WithLabelValues(kind).Inc()
}

// RecordCacheHit increments the dataset cache hit counter.
func RecordCacheHit() {
	globalManager.datasetCacheHits.Inc()
}

// RecordCacheMiss increments the dataset cache miss counter.
func RecordCacheMiss() {
	globalManager.datasetCacheMisses.Inc()
}

// RecordRankQuery counts a rank lookup by outcome and records its latency.
func RecordRankQuery(outcome string, latencyMs float64) {
	globalManager.rankQueries.WithLabelValues(outcome).Inc()
	globalManager.rankQueryLatency.Observe(latencyMs)
}

// RecordDecodeError counts a result value that failed to decode.
func RecordDecodeError(eventID string) {
	globalManager.decodeErrors.WithLabelValues(eventID).Inc()
}

// UpdateIndexGroups sets the number of (event, region) groups indexed.
func UpdateIndexGroups(groups int) {
	globalManager.indexGroups.Set(float64(groups))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
