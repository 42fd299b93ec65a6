// Package metric provides Prometheus metrics for tokmint.
package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tokmint"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Generation metrics
	TokensGenerated  *prometheus.CounterVec
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	EntropyFailures  prometheus.Counter
	ParameterDrift   *prometheus.CounterVec
	AssemblyDuration prometheus.Histogram

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Configuration metrics
	ConfigReloads *prometheus.CounterVec
	Scopes        prometheus.Gauge
}

// NewRegistry creates a registry with every tokmint metric registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Registry{
		registry: reg,

		TokensGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_generated_total",
			Help:      "Tokens freshly generated, by encoding format.",
		}, []string{"format"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Token values served from the TTL cache.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "TTL cache lookups that required a fresh token.",
		}),
		EntropyFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entropy_failures_total",
			Help:      "Token definitions skipped because the random source failed.",
		}),
		ParameterDrift: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parameter_drift_total",
			Help:      "Out-of-range parameters replaced with defaults at generation time.",
		}, []string{"field"}),
		AssemblyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assembly_duration_seconds",
			Help:      "Time to assemble all tokens of one request.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}),

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests served, by method and status.",
		}, []string{"method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),

		ConfigReloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_reloads_total",
			Help:      "Configuration reload attempts, by result.",
		}, []string{"result"}),
		Scopes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scopes",
			Help:      "Configured token scopes.",
		}),
	}
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Handler returns an HTTP handler for the global registry.
func Handler() http.Handler {
	return Global().Handler()
}

// Handler returns an HTTP handler exposing r in Prometheus text format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordGenerated counts a freshly generated token.
func (r *Registry) RecordGenerated(format string) {
	if r == nil {
		return
	}
	r.TokensGenerated.WithLabelValues(format).Inc()
}

// RecordCacheHit counts a cache hit.
func (r *Registry) RecordCacheHit() {
	if r == nil {
		return
	}
	r.CacheHits.Inc()
}

// RecordCacheMiss counts a cache miss.
func (r *Registry) RecordCacheMiss() {
	if r == nil {
		return
	}
	r.CacheMisses.Inc()
}

// RecordEntropyFailure counts a definition dropped for lack of entropy.
func (r *Registry) RecordEntropyFailure() {
	if r == nil {
		return
	}
	r.EntropyFailures.Inc()
}

// RecordDrift counts a clamped parameter.
func (r *Registry) RecordDrift(field string) {
	if r == nil {
		return
	}
	r.ParameterDrift.WithLabelValues(field).Inc()
}

// ObserveAssembly records the duration of one assembly in seconds.
func (r *Registry) ObserveAssembly(seconds float64) {
	if r == nil {
		return
	}
	r.AssemblyDuration.Observe(seconds)
}

// RecordRequest counts an HTTP request.
func (r *Registry) RecordRequest(method, status string) {
	if r == nil {
		return
	}
	r.RequestsTotal.WithLabelValues(method, status).Inc()
}

// ObserveRequestDuration records HTTP request latency in seconds.
func (r *Registry) ObserveRequestDuration(method string, seconds float64) {
	if r == nil {
		return
	}
	r.RequestDuration.WithLabelValues(method).Observe(seconds)
}

// RecordReload counts a configuration reload ("ok" or "error").
func (r *Registry) RecordReload(result string) {
	if r == nil {
		return
	}
	r.ConfigReloads.WithLabelValues(result).Inc()
}

// SetScopes sets the number of configured scopes.
func (r *Registry) SetScopes(n int) {
	if r == nil {
		return
	}
	r.Scopes.Set(float64(n))
}
