// Package metrics provides Prometheus metrics for the demon list service.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Document kinds used as label values.
const (
	KindList    = "list"
	KindLevel   = "level"
	KindEditors = "editors"
	KindPacks   = "packs"
)

// Fetch outcomes used as label values.
const (
	OutcomeOK          = "ok"
	OutcomeFetchError  = "fetch_error"
	OutcomeSchemaError = "schema_error"
	OutcomeDecodeError = "decode_error"
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Loader
	documentFetches      *prometheus.CounterVec
	documentFetchLatency *prometheus.HistogramVec
	levelFailures        prometheus.Counter
	listUnavailable      prometheus.Counter
	sourceUp             prometheus.Gauge

	// Aggregation
	aggregationDuration prometheus.Histogram
	aggregations        prometheus.Counter
	leaderboardUsers    prometheus.Gauge
	listLevels          prometheus.Gauge
	packsCompleted      prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance and the custom registry it registers on,
// kept apart from the default Go metrics.
var (
	globalManager  atomic.Pointer[Manager]             //nolint:gochecknoglobals // singleton metrics manager
	customRegistry atomic.Pointer[prometheus.Registry] //nolint:gochecknoglobals // metrics registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	Init()
}

// Init replaces the global manager with one built from opts on a fresh
// custom registry. Call it at startup, before GetRegistry is handed to an
// HTTP handler.
func Init(opts ...Option) *Manager {
	registry := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry.Store(registry)
	globalManager.Store(m)
	return m
}

func current() *Manager { return globalManager.Load() }

// RefreshInterval is how often the global manager's gauges should be
// sampled. It is zero when sampling or recording is switched off.
func RefreshInterval() time.Duration {
	m := current()
	if !m.enabled {
		return 0
	}
	return m.refreshInterval
}

// NewManager creates a new metrics manager. Collectors are registered on the
// configured registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "dlist",
		subsystem:        "leaderboard",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
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

func (m *Manager) name(n string) string {
	if m.metricPrefix != "" {
		return m.metricPrefix + "_" + n
	}
	return n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.documentFetches = auto.NewCounterVec(
		m.counterOpts("document_fetches_total", "Documents fetched from the static store by kind and outcome"),
		[]string{"kind", "outcome"},
	)
	m.documentFetchLatency = auto.NewHistogramVec(
		m.histogramOpts("document_fetch_latency_milliseconds", "Document fetch latency in milliseconds", m.histogramBuckets),
		[]string{"kind"},
	)
	m.levelFailures = auto.NewCounter(
		m.counterOpts("level_failures_total", "Level documents that could not be loaded and were kept as error slots"),
	)
	m.listUnavailable = auto.NewCounter(
		m.counterOpts("list_unavailable_total", "Loads that failed because the manifest could not be read"),
	)
	m.sourceUp = auto.NewGauge(
		m.gaugeOpts("source_up", "1 when the last store probe could read the manifest"),
	)

	m.aggregationDuration = auto.NewHistogram(
		m.histogramOpts("aggregation_duration_milliseconds", "Leaderboard aggregation duration in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100}),
	)
	m.aggregations = auto.NewCounter(
		m.counterOpts("aggregations_total", "Leaderboard aggregation passes"),
	)
	m.leaderboardUsers = auto.NewGauge(
		m.gaugeOpts("users", "Users on the last aggregated leaderboard"),
	)
	m.listLevels = auto.NewGauge(
		m.gaugeOpts("levels", "Slots in the last loaded list, failed slots included"),
	)
	m.packsCompleted = auto.NewCounter(
		m.counterOpts("pack_completions_total", "Pack completions awarded across aggregation passes"),
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
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// Enabled reports whether recording is switched on.
func (m *Manager) Enabled() bool { return m.enabled }

// RecordDocumentFetch counts one document fetch and observes its latency.
func RecordDocumentFetch(kind, outcome string, latencyMs float64) {
	if !current().enabled {
		return
	}
	current().documentFetches.WithLabelValues(kind, outcome).Inc()
	current().documentFetchLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordLevelFailure counts a level slot kept as an error marker.
func RecordLevelFailure() {
	if !current().enabled {
		return
	}
	current().levelFailures.Inc()
}

// RecordListUnavailable counts a fatal manifest failure.
func RecordListUnavailable() {
	if !current().enabled {
		return
	}
	current().listUnavailable.Inc()
}

// UpdateSourceUp sets the store probe gauge.
func UpdateSourceUp(up bool) {
	if !current().enabled {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	current().sourceUp.Set(v)
}

// RecordAggregation observes one aggregation pass.
func RecordAggregation(durationMs float64, users, levels, packCompletions int) {
	if !current().enabled {
		return
	}
	current().aggregations.Inc()
	current().aggregationDuration.Observe(durationMs)
	current().leaderboardUsers.Set(float64(users))
	current().listLevels.Set(float64(levels))
	current().packsCompleted.Add(float64(packCompletions))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !current().enabled {
		return
	}
	current().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !current().enabled {
		return
	}
	current().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if !current().enabled {
		return
	}
	current().errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !current().enabled {
		return
	}
	current().errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !current().enabled {
		return
	}
	current().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !current().enabled {
		return
	}
	current().errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !current().enabled {
		return
	}
	current().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if !current().enabled {
		return
	}
	current().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if !current().enabled {
		return
	}
	current().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry.Load()
}
