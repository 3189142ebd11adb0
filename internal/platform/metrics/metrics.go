// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "subtrack"

// Registry holds all Prometheus metrics for the service.
// A nil *Registry is valid and records nothing, so components can be built without metrics.
type Registry struct {
	gatherer prometheus.Gatherer

	CacheLookups     *prometheus.CounterVec
	ProviderRequests *prometheus.CounterVec
	ProviderLatency  *prometheus.HistogramVec
	RateResolutions  *prometheus.CounterVec
	BreakerState     *prometheus.GaugeVec
	ScheduleRolls    prometheus.Counter
	HTTPRequests     *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewWithRegisterer(reg, reg)
}

// NewWithRegisterer creates the collectors and registers them on r.
func NewWithRegisterer(r prometheus.Registerer, g prometheus.Gatherer) *Registry {
	m := &Registry{
		gatherer: g,
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_cache_lookups_total",
			Help:      "Rate cache lookups by result (hit, miss, expired, stale).",
		}, []string{"result"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_provider_requests_total",
			Help:      "Requests to the exchange-rate provider by operation and outcome.",
		}, []string{"provider", "op", "outcome"}),
		ProviderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rate_provider_request_duration_seconds",
			Help:      "Latency of exchange-rate provider requests.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider", "op"}),
		RateResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_resolutions_total",
			Help:      "Rate snapshots served, by the strategy that produced them.",
		}, []string{"source"}),
		BreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rate_provider_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open).",
		}, []string{"provider"}),
		ScheduleRolls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_rolls_total",
			Help:      "Subscriptions whose expired next payment was rolled forward.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
	}
	r.MustRegister(
		m.CacheLookups,
		m.ProviderRequests,
		m.ProviderLatency,
		m.RateResolutions,
		m.BreakerState,
		m.ScheduleRolls,
		m.HTTPRequests,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Registry) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RecordCacheLookup counts a cache lookup; result is hit, miss, expired or stale.
func (m *Registry) RecordCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RecordProviderRequest counts one provider call and observes its latency.
func (m *Registry) RecordProviderRequest(provider, op string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ProviderRequests.WithLabelValues(provider, op, outcome).Inc()
	m.ProviderLatency.WithLabelValues(provider, op).Observe(time.Since(started).Seconds())
}

// RecordRateResolution counts which strategy served a rate request.
func (m *Registry) RecordRateResolution(source string) {
	if m == nil {
		return
	}
	m.RateResolutions.WithLabelValues(source).Inc()
}

// SetBreakerState publishes the numeric breaker state of a provider.
func (m *Registry) SetBreakerState(provider string, state float64) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(provider).Set(state)
}

// AddScheduleRolls adds n rolled subscriptions.
func (m *Registry) AddScheduleRolls(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ScheduleRolls.Add(float64(n))
}

// RecordHTTPRequest counts one served request.
func (m *Registry) RecordHTTPRequest(method, route, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
}
