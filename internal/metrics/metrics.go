// Package metrics exposes Prometheus instruments for analyses, module
// generation and the report cache.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tca"

// Manager owns a registry and the instruments registered on it.
type Manager struct {
	registry *prometheus.Registry

	analyses        *prometheus.CounterVec
	analysisLatency prometheus.Histogram
	moduleFailures  *prometheus.CounterVec
	generations     *prometheus.CounterVec
	generationCost  prometheus.Counter
	cacheLookups    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// New creates a Manager on a fresh registry with Go and process collectors.
func New() *Manager {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(reg)

	return &Manager{
		registry: reg,
		analyses: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Comprehensive analyses by outcome (ok, cached or error kind).",
		}, []string{"outcome"}),
		analysisLatency: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of a comprehensive analysis.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}),
		moduleFailures: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "module_failures_total",
			Help:      "Module failures that blocked report assembly.",
		}, []string{"module", "kind"}),
		generations: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_calls_total",
			Help:      "Upstream module generation calls by outcome.",
		}, []string{"module", "outcome"}),
		generationCost: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_cost_usd_total",
			Help:      "Estimated USD spent on module generation.",
		}),
		cacheLookups: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_lookups_total",
			Help:      "Report cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
	}
}

// ObserveAnalysis records one analysis. outcome is "ok", "cached" or an
// error kind.
func (m *Manager) ObserveAnalysis(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(outcome).Inc()
	m.analysisLatency.Observe(elapsed.Seconds())
}

// ModuleFailed counts a module that blocked assembly.
func (m *Manager) ModuleFailed(module, kind string) {
	if m == nil {
		return
	}
	m.moduleFailures.WithLabelValues(module, kind).Inc()
}

// Generation records one upstream generation call and its estimated cost.
func (m *Manager) Generation(module, outcome string, costUSD float64) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(module, outcome).Inc()
	if costUSD > 0 {
		m.generationCost.Add(costUSD)
	}
}

// CacheLookup counts a report cache lookup.
func (m *Manager) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// HTTPRequest counts a served request.
func (m *Manager) HTTPRequest(route, status string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, status).Inc()
}

// Registry returns the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
