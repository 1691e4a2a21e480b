// Package metrics exposes prometheus instrumentation for resolution, graph
// building, querying and validation.
package metrics

import (
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// Resolution metrics
	ResolutionsTotal   *prometheus.CounterVec
	ResolutionDuration prometheus.Histogram
	LayersResolved     prometheus.Histogram

	// Graph build metrics
	GraphBuildsTotal   prometheus.Counter
	GraphBuildDuration prometheus.Histogram
	GraphNodes         prometheus.Gauge
	GraphEdges         prometheus.Gauge

	// Query metrics
	QueriesTotal  *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec

	// Validation metrics
	ValidationsTotal      prometheus.Counter
	ValidationIssuesTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// System metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry  *prometheus.Registry
	startTime time.Time
	mu        sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry:  reg,
		startTime: time.Now(),
	}

	r.ResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "biztrace_resolutions_total",
		Help: "Business document resolutions by status",
	}, []string{"status"})
	r.ResolutionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "biztrace_resolution_duration_seconds",
		Help:    "Time spent resolving a business document and its layers",
		Buckets: prometheus.DefBuckets,
	})
	r.LayersResolved = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "biztrace_layers_resolved",
		Help:    "Optional layers resolved per business document",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 6},
	})

	r.GraphBuildsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "biztrace_graph_builds_total",
		Help: "Traceability graph builds",
	})
	r.GraphBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "biztrace_graph_build_duration_seconds",
		Help:    "Time spent building the traceability graph",
		Buckets: prometheus.DefBuckets,
	})
	r.GraphNodes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "biztrace_graph_nodes",
		Help: "Nodes in the most recently built graph",
	})
	r.GraphEdges = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "biztrace_graph_edges",
		Help: "Edges in the most recently built graph",
	})

	r.QueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "biztrace_queries_total",
		Help: "Graph queries by kind",
	}, []string{"kind"})
	r.QueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "biztrace_query_duration_seconds",
		Help:    "Graph query latency by kind",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	r.ValidationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "biztrace_validations_total",
		Help: "Cross-layer validation passes",
	})
	r.ValidationIssuesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "biztrace_validation_issues_total",
		Help: "Cross-layer validation issues by severity",
	}, []string{"severity"})

	r.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "biztrace_http_requests_total",
		Help: "HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})
	r.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "biztrace_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	r.UptimeSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "biztrace_uptime_seconds",
		Help: "Process uptime",
	})
	r.GoRoutines = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "biztrace_goroutines",
		Help: "Current goroutine count",
	})
	r.MemoryAllocBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "biztrace_memory_alloc_bytes",
		Help: "Bytes of allocated heap objects",
	})

	reg.MustRegister(
		r.ResolutionsTotal, r.ResolutionDuration, r.LayersResolved,
		r.GraphBuildsTotal, r.GraphBuildDuration, r.GraphNodes, r.GraphEdges,
		r.QueriesTotal, r.QueryDuration,
		r.ValidationsTotal, r.ValidationIssuesTotal,
		r.HTTPRequestsTotal, r.HTTPRequestDuration,
		r.UptimeSeconds, r.GoRoutines, r.MemoryAllocBytes,
	)

	return r
}

// RecordResolution records one resolution attempt.
func (r *Registry) RecordResolution(status string, layers int, duration time.Duration) {
	r.ResolutionsTotal.WithLabelValues(status).Inc()
	r.ResolutionDuration.Observe(duration.Seconds())
	r.LayersResolved.Observe(float64(layers))
}

// RecordGraphBuild records one graph build and the resulting graph size.
func (r *Registry) RecordGraphBuild(nodes, edges int, duration time.Duration) {
	r.GraphBuildsTotal.Inc()
	r.GraphBuildDuration.Observe(duration.Seconds())
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// RecordQuery records a graph query execution.
func (r *Registry) RecordQuery(kind string, duration time.Duration) {
	r.QueriesTotal.WithLabelValues(kind).Inc()
	r.QueryDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordValidation records one cross-layer validation pass.
func (r *Registry) RecordValidation(errors, warnings int) {
	r.ValidationsTotal.Inc()
	r.ValidationIssuesTotal.WithLabelValues("error").Add(float64(errors))
	r.ValidationIssuesTotal.WithLabelValues("warning").Add(float64(warnings))
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// UpdateSystemMetrics refreshes the uptime/runtime gauges.
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UptimeSeconds.Set(time.Since(r.startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	r.MemoryAllocBytes.Set(float64(mem.Alloc))
}

// Handler returns the HTTP handler serving this registry in the prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying prometheus registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
