package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "ytmeta"

// Metrics holds the Prometheus collectors of the HTTP facade.
//
// Collectors are registered on a private registry so several instances can coexist in one process.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	DegradedTotal   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers the facade's collectors, along with the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		DegradedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "degraded_lookups_total",
				Help:      "Upstream failures answered with an empty result or a message",
			},
			[]string{"operation"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.DegradedTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordDegraded counts a swallowed upstream failure for operation.
func (m *Metrics) RecordDegraded(operation string) {
	m.DegradedTotal.WithLabelValues(operation).Inc()
}

// Middleware returns middleware recording request counts and latency.
//
// Requests are labelled with the route template (e.g. /artists/{id}/songs) rather than the raw path.
func (m *Metrics) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			route := routeTemplate(r)
			m.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rw.statusCode)).Inc()
			m.RequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

// MetricsHandler exposes a [Metrics] registry in the Prometheus text format.
type MetricsHandler struct {
	handler http.Handler
}

// NewMetricsHandler creates a handler serving the given metrics.
func NewMetricsHandler(m *Metrics) *MetricsHandler {
	return &MetricsHandler{
		handler: promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry}),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *MetricsHandler) Routes() []string {
	return []string{"/metrics"}
}

// ServeHTTP writes the current metric values.
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}
