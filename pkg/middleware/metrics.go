package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inertia-go/inertia/pkg/protocol"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "inertia").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
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

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "inertia",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for Inertia traffic.
type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	conflictsTotal  prometheus.Counter
	partialReloads  *prometheus.CounterVec
	ssrFallbacks    *prometheus.CounterVec
}

// globalMetrics is the singleton metrics instance.
// Created on the first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of page requests by visit kind, client mode and status",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "hydrated", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "Page request duration in seconds by visit kind",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		conflictsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "version_conflicts_total",
			Help:        "Total number of stale-version conflicts forcing a full refresh",
			ConstLabels: config.ConstLabels,
		}),

		partialReloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "partial_reloads_total",
			Help:        "Total number of partial reloads by component",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		ssrFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ssr_fallbacks_total",
			Help:        "Total number of SSR renders that fell back to client hydration",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for
// Inertia traffic.
//
// Metrics collected:
//   - inertia_requests_total: Counter of requests by kind, hydrated, status
//   - inertia_request_duration_seconds: Histogram of request duration by kind
//   - inertia_version_conflicts_total: Counter of forced refreshes
//   - inertia_partial_reloads_total: Counter of partial reloads by component
//   - inertia_ssr_fallbacks_total: Counter of SSR fallbacks by component
//     (recorded via RecordSSRFallback)
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus(
//	    middleware.WithNamespace("myapp"),
//	))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Initialize metrics once
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			kind := "standard"
			var component string
			if k, err := protocol.Classify(r.Header); err == nil && k.IsPartial() {
				kind = "partial"
				component = k.Partial().Component
			}
			hydrated := strconv.FormatBool(protocol.IsInertiaRequest(r.Header))

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			m.requestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

			status := rec.Status()
			m.requestsTotal.WithLabelValues(kind, hydrated, strconv.Itoa(status)).Inc()
			if component != "" {
				m.partialReloads.WithLabelValues(component).Inc()
			}
			if status == http.StatusConflict && rec.Header().Get(protocol.HeaderLocation) != "" {
				m.conflictsTotal.Inc()
			}
		})
	}
}

// =============================================================================
// Metrics Recording Functions
// =============================================================================

// RecordSSRFallback records one SSR render that fell back to client
// hydration. The fallback happens inside the controller, out of the
// middleware's sight; wire the controller's hook to this function:
//
//	inertia.Config{OnSSRFallback: middleware.RecordSSRFallback}
//
// Safe to call before Prometheus() has initialized the metrics; it is a
// no-op then.
func RecordSSRFallback(component string) {
	if globalMetrics != nil {
		globalMetrics.ssrFallbacks.WithLabelValues(component).Inc()
	}
}

// =============================================================================
// Status Recorder
// =============================================================================

// statusRecorder captures the response status for after-the-fact
// recording. A handler that writes a body without calling WriteHeader
// implicitly answers 200.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Status returns the recorded status, defaulting to 200 when the handler
// never wrote anything.
func (w *statusRecorder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Unwrap supports http.ResponseController.
func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
