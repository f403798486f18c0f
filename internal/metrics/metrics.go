// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"strconv"
	"time"

	"rentalog/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry and the collectors registered on it.
type Metrics struct {
	registry         *prometheus.Registry
	requestCount     *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	changeLogEntries *prometheus.CounterVec
}

// New creates the collectors and registers them with Go runtime and process
// collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rentalog",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rentalog",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		changeLogEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rentalog",
			Name:      "rental_log_entries_total",
			Help:      "Committed rental log entries by action.",
		}, []string{"action"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestCount,
		m.requestDuration,
		m.changeLogEntries,
	)
	return m
}

// Registry returns the registry backing the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordLogEntries counts n committed log entries of the given action.
func (m *Metrics) RecordLogEntries(action models.LogAction, n int) {
	if n <= 0 {
		return
	}
	m.changeLogEntries.WithLabelValues(string(action)).Add(float64(n))
}

// Middleware records request count and latency. Unmatched routes are
// grouped under one label to keep cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestCount.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// GetHandler mounts the scrape endpoint on router.
func GetHandler(router *gin.RouterGroup, m *Metrics) {
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})))
}
