package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// =============================================================================
// METRICS
// =============================================================================

// Metrics holds the API's prometheus collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	requests           *prometheus.CounterVec
	duration           *prometheus.HistogramVec
	schedulesGenerated *prometheus.CounterVec
	scheduleDates      prometheus.Histogram
	cacheLookups       *prometheus.CounterVec
}

// NewMetrics registers the collectors on a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "date_engine",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "date_engine",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		schedulesGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "date_engine",
			Name:      "schedules_generated_total",
			Help:      "Schedules generated by kind.",
		}, []string{"kind"}),
		scheduleDates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "date_engine",
			Name:      "schedule_dates",
			Help:      "Number of dates per generated schedule.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "date_engine",
			Name:      "preview_cache_lookups_total",
			Help:      "Preview cache lookups by result (hit or miss).",
		}, []string{"result"}),
	}
	m.Registry.MustRegister(m.requests, m.duration, m.schedulesGenerated, m.scheduleDates, m.cacheLookups)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Middleware counts requests by chi route pattern. Unmatched paths are
// reported as "unmatched" to keep label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) observeSchedule(kind string, count int) {
	m.schedulesGenerated.WithLabelValues(kind).Inc()
	m.scheduleDates.Observe(float64(count))
}

func (m *Metrics) observeCache(hit bool) {
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}
