// Package metrics provides Prometheus metrics for the cupline benchmark service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Scoring metrics
	playersEvaluated *prometheus.CounterVec
	playersExcluded  *prometheus.CounterVec
	scoringLatency   prometheus.Histogram

	// Roster metrics
	rosterEvaluations        *prometheus.CounterVec
	rosterEvaluationDuration prometheus.Histogram

	// Benchmark metrics
	benchmarkRoles         prometheus.Gauge
	benchmarkBuilds        *prometheus.CounterVec
	benchmarkBuildDuration prometheus.Histogram
	benchmarkLastBuildUnix prometheus.Gauge
	benchmarkLoadErrors    prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Worker metrics
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

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
		namespace:        "cupline",
		subsystem:        "benchmark",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)
	ms := []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}
	constLabels := prometheus.Labels(m.customLabels)

	m.playersEvaluated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("players_evaluated_total"),
		Help: "Players scored against a benchmark, by severity tier",
	}, []string{"severity"})

	m.playersExcluded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("players_excluded_total"),
		Help: "Players left out of scoring, by exclusion reason",
	}, []string{"reason"})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("scoring_latency_milliseconds"),
		Help:    "Per-player normalize, classify and score latency in milliseconds",
		Buckets: ms,
	})

	m.rosterEvaluations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("roster_evaluations_total"),
		Help: "Roster evaluations by outcome (ok, unavailable, not_found, error)",
	}, []string{"outcome"})

	m.rosterEvaluationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("roster_evaluation_duration_milliseconds"),
		Help:    "Roster evaluation duration in milliseconds",
		Buckets: m.histogramBuckets,
	})

	m.benchmarkRoles = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("roles"),
		Help: "Number of roles in the active benchmark store",
	})

	m.benchmarkBuilds = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("builds_total"),
		Help: "Benchmark builds by outcome",
	}, []string{"outcome"})

	m.benchmarkBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("build_duration_milliseconds"),
		Help:    "Benchmark build duration in milliseconds",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
	})

	m.benchmarkLastBuildUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("last_build_unix"),
		Help: "Unix time the active benchmark store was built or loaded",
	})

	m.benchmarkLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("load_errors_total"),
		Help: "Failed attempts to load the serialized benchmark store",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("http_requests_total"),
		Help: "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("http_request_duration_milliseconds"),
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("worker_count"),
		Help: "Configured number of scoring workers",
	})

	m.workerProcessingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("worker_processing_latency_milliseconds"),
		Help:    "Time a worker spends on one task in milliseconds",
		Buckets: ms,
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("worker_errors_total"),
		Help: "Tasks that returned an error",
	})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("errors_by_component_total"),
		Help: "Errors by component and error type",
	}, []string{"component", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("errors_by_type_total"),
		Help: "Errors by type and severity",
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("errors_by_endpoint_total"),
		Help: "HTTP errors by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("error_latency_milliseconds"),
		Help:    "Latency of failed operations in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("system_memory_bytes"),
		Help: "Allocated heap bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("system_goroutines"),
		Help: "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("system_gc_pause_milliseconds"),
		Help:    "Average GC pause in milliseconds",
		Buckets: ms,
	})
}

// Enabled reports whether recording is on for this manager.
func (m *Manager) Enabled() bool { return m.enabled }

// RecordPlayerEvaluated counts a scored player in its severity tier.
func RecordPlayerEvaluated(severity string) {
	if globalManager.enabled {
		globalManager.playersEvaluated.WithLabelValues(severity).Inc()
	}
}

// RecordPlayerExcluded counts an excluded player by reason.
func RecordPlayerExcluded(reason string) {
	if globalManager.enabled {
		globalManager.playersExcluded.WithLabelValues(reason).Inc()
	}
}

// RecordScoringLatency records per-player scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.scoringLatency.Observe(latencyMs)
	}
}

// RecordRosterEvaluation counts a roster evaluation by outcome and records its duration.
func RecordRosterEvaluation(outcome string, durationMs float64) {
	if globalManager.enabled {
		globalManager.rosterEvaluations.WithLabelValues(outcome).Inc()
		globalManager.rosterEvaluationDuration.Observe(durationMs)
	}
}

// UpdateBenchmarkRoles sets the number of roles in the active store.
func UpdateBenchmarkRoles(count int) {
	if globalManager.enabled {
		globalManager.benchmarkRoles.Set(float64(count))
	}
}

// RecordBenchmarkBuild counts a build by outcome and records its duration.
func RecordBenchmarkBuild(outcome string, durationMs float64) {
	if globalManager.enabled {
		globalManager.benchmarkBuilds.WithLabelValues(outcome).Inc()
		globalManager.benchmarkBuildDuration.Observe(durationMs)
	}
}

// MarkBenchmarkLoaded stamps the time the active store was installed.
func MarkBenchmarkLoaded(t time.Time) {
	if globalManager.enabled {
		globalManager.benchmarkLastBuildUnix.Set(float64(t.Unix()))
	}
}

// RecordBenchmarkLoadError counts a failed store load.
func RecordBenchmarkLoadError() {
	if globalManager.enabled {
		globalManager.benchmarkLoadErrors.Inc()
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	if globalManager.enabled {
		globalManager.workerCount.Set(float64(count))
	}
}

// RecordWorkerProcessingLatency records per-task latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.workerProcessingLatency.Observe(latencyMs)
	}
}

// RecordWorkerError increments the worker errors counter.
func RecordWorkerError() {
	if globalManager.enabled {
		globalManager.workerErrors.Inc()
	}
}

// RecordErrorByComponent records an error by component and type.
func RecordErrorByComponent(component, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	if globalManager.enabled {
		globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint records an HTTP error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RecordErrorLatency records the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if globalManager.enabled {
		globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
	}
}

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// GetRegistry returns the registry the global manager writes to.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval is how often polled gauges should be refreshed.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}
