// Package metrics provides Prometheus metrics for the competency dashboard.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultRefreshInterval = 10 * time.Second

// Label values shared by callers.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultFound    = "found"
	ResultNotFound = "not_found"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Dataset metrics
	datasetLoads          *prometheus.CounterVec
	datasetLoadDuration   *prometheus.HistogramVec
	datasetRecords        *prometheus.GaugeVec
	datasetLastLoadUnix   *prometheus.GaugeVec
	datasetMissingColumns *prometheus.GaugeVec

	// Business metrics
	lookups            *prometheus.CounterVec
	lookupLatency      prometheus.Histogram
	aggregationLatency prometheus.Histogram
	aggregatedRows     prometheus.Gauge
	surveyQueries      prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var (
	globalMu       sync.RWMutex //nolint:gochecknoglobals // guards the singleton below
	globalManager  *Manager     //nolint:gochecknoglobals // intentional global for singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "competency",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// SetGlobal replaces the manager used by the package-level recorders.
func SetGlobal(m *Manager) {
	if m == nil {
		return
	}
	globalMu.Lock()
	globalManager = m
	globalMu.Unlock()
}

// Global returns the manager used by the package-level recorders.
func Global() *Manager {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalManager
}

// Gatherer returns the registry the collectors were registered on, or the
// default gatherer when that registry cannot be gathered.
func (m *Manager) Gatherer() prometheus.Gatherer {
	if g, ok := m.registry.(prometheus.Gatherer); ok {
		return g
	}
	return prometheus.DefaultGatherer
}

// Enabled reports whether recording is on.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often system gauges should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.datasetLoads = auto.NewCounterVec(
		m.counterOpts("dataset_loads_total", "Dataset load attempts by dataset and result"),
		[]string{"dataset", "result"},
	)
	m.datasetLoadDuration = auto.NewHistogramVec(
		m.histogramOpts("dataset_load_duration_milliseconds", "Dataset load duration in milliseconds", m.histogramBuckets),
		[]string{"dataset"},
	)
	m.datasetRecords = auto.NewGaugeVec(
		m.gaugeOpts("dataset_records", "Records in the current dataset snapshot"),
		[]string{"dataset"},
	)
	m.datasetLastLoadUnix = auto.NewGaugeVec(
		m.gaugeOpts("dataset_last_load_unix", "Unix time of the last successful dataset load"),
		[]string{"dataset"},
	)
	m.datasetMissingColumns = auto.NewGaugeVec(
		m.gaugeOpts("dataset_missing_columns", "Expected score columns absent from the dataset header"),
		[]string{"dataset"},
	)

	m.lookups = auto.NewCounterVec(
		m.counterOpts("lookups_total", "Employee lookups by result"),
		[]string{"result"},
	)
	m.lookupLatency = auto.NewHistogram(
		m.histogramOpts("lookup_latency_milliseconds", "Employee lookup latency in milliseconds", m.histogramBuckets),
	)
	m.aggregationLatency = auto.NewHistogram(
		m.histogramOpts("aggregation_latency_milliseconds", "Aggregation latency in milliseconds", m.histogramBuckets),
	)
	m.aggregatedRows = auto.NewGauge(
		m.gaugeOpts("aggregated_rows", "Rows produced by the last aggregation"),
	)
	m.surveyQueries = auto.NewCounter(
		m.counterOpts("survey_queries_total", "Survey choice count queries"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordDatasetLoad counts a load attempt and observes its duration.
func (m *Manager) RecordDatasetLoad(dataset, result string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.datasetLoads.WithLabelValues(dataset, result).Inc()
	m.datasetLoadDuration.WithLabelValues(dataset).Observe(durationMs)
	if result == ResultSuccess {
		m.datasetLastLoadUnix.WithLabelValues(dataset).Set(float64(time.Now().Unix()))
	}
}

// UpdateDatasetRecords sets the record count of a dataset.
func (m *Manager) UpdateDatasetRecords(dataset string, count int) {
	if m.enabled {
		m.datasetRecords.WithLabelValues(dataset).Set(float64(count))
	}
}

// UpdateDatasetMissingColumns sets how many expected columns a dataset lacks.
func (m *Manager) UpdateDatasetMissingColumns(dataset string, count int) {
	if m.enabled {
		m.datasetMissingColumns.WithLabelValues(dataset).Set(float64(count))
	}
}

// RecordLookup counts a lookup by outcome and observes its latency.
func (m *Manager) RecordLookup(found bool, latencyMs float64) {
	if !m.enabled {
		return
	}
	result := ResultNotFound
	if found {
		result = ResultFound
	}
	m.lookups.WithLabelValues(result).Inc()
	m.lookupLatency.Observe(latencyMs)
}

// RecordAggregationLatency observes one aggregation pass.
func (m *Manager) RecordAggregationLatency(latencyMs float64) {
	if m.enabled {
		m.aggregationLatency.Observe(latencyMs)
	}
}

// RecordAggregatedRows sets the row count of the last aggregation.
func (m *Manager) RecordAggregatedRows(count int) {
	if m.enabled {
		m.aggregatedRows.Set(float64(count))
	}
}

// RecordSurveyQuery counts a survey choice query.
func (m *Manager) RecordSurveyQuery() {
	if m.enabled {
		m.surveyQueries.Inc()
	}
}

// RecordHTTPRequest counts an HTTP request and observes its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method string, statusCode int, durationMs float64) {
	if !m.enabled {
		return
	}
	code := strconv.Itoa(statusCode)
	m.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(durationMs)
}

// RecordErrorByComponent records an error with component and type labels.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if m.enabled {
		m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByEndpoint records an error with endpoint, method and type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m.enabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.enabled {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if m.enabled {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	if m.enabled {
		m.systemGCPauseTime.Observe(pauseMs)
	}
}

// Package-level recorders delegate to the global manager.

func RecordDatasetLoad(dataset, result string, durationMs float64) {
	Global().RecordDatasetLoad(dataset, result, durationMs)
}

func UpdateDatasetRecords(dataset string, count int) { Global().UpdateDatasetRecords(dataset, count) }

func UpdateDatasetMissingColumns(dataset string, count int) {
	Global().UpdateDatasetMissingColumns(dataset, count)
}

func RecordLookup(found bool, latencyMs float64) { Global().RecordLookup(found, latencyMs) }

func RecordAggregationLatency(latencyMs float64) { Global().RecordAggregationLatency(latencyMs) }

func RecordAggregatedRows(count int) { Global().RecordAggregatedRows(count) }

func RecordSurveyQuery() { Global().RecordSurveyQuery() }

func RecordHTTPRequest(endpoint, method string, statusCode int, durationMs float64) {
	Global().RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

func RecordErrorByComponent(component, errorType string) {
	Global().RecordErrorByComponent(component, errorType)
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	Global().RecordErrorByEndpoint(endpoint, method, errorType)
}

func UpdateSystemMemoryUsage(bytes uint64) { Global().UpdateSystemMemoryUsage(bytes) }

func UpdateSystemGoroutineCount(count int) { Global().UpdateSystemGoroutineCount(count) }

func RecordSystemGCPauseTime(pauseMs float64) { Global().RecordSystemGCPauseTime(pauseMs) }

// GetRegistry returns the gatherer of the global manager, for /healthz.
func GetRegistry() prometheus.Gatherer {
	return Global().Gatherer()
}

// Configure builds a manager on a fresh registry, installs it as the global
// manager, and returns it. Options may override the registry.
func Configure(opts ...Option) *Manager {
	m := NewManager(append([]Option{WithPrometheusRegistry(prometheus.NewRegistry())}, opts...)...)
	SetGlobal(m)
	return m
}
