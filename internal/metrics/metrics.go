// Package metrics provides Prometheus metrics collection for the pizza cart service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CartOperationsTotal tracks cart mutations by operation and outcome.
	CartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total number of cart operations",
		},
		[]string{"operation", "status"},
	)

	// OrderPublishTotal tracks order submissions by outcome.
	OrderPublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_publish_total",
			Help: "Total number of order submissions",
		},
		[]string{"status"},
	)

	// OrderPublishDuration tracks the latency of order submissions.
	OrderPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_publish_duration_seconds",
			Help:    "Order submission duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
	)

	// ActiveSessions tracks the number of carts held in memory.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_sessions_active",
			Help: "Number of cart sessions held in memory",
		},
	)

	// SessionEvictionsTotal tracks session evictions by reason.
	SessionEvictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_session_evictions_total",
			Help: "Total number of evicted cart sessions",
		},
		[]string{"reason"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CircuitBreakerState tracks breaker state (0 closed, 1 open, 2 half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state: 0 closed, 1 open, 2 half-open",
		},
		[]string{"name"},
	)

	// EventsPublishedTotal tracks broker publications by event type and outcome.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published to the broker",
		},
		[]string{"event", "status"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordCartOperation records a cart mutation.
func RecordCartOperation(operation, status string) {
	CartOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordOrderPublish records metrics for an order submission.
func RecordOrderPublish(duration time.Duration, status string) {
	OrderPublishDuration.Observe(duration.Seconds())
	OrderPublishTotal.WithLabelValues(status).Inc()
}

// SetActiveSessions updates the active session gauge.
func SetActiveSessions(n int) {
	ActiveSessions.Set(float64(n))
}

// RecordSessionEviction records a session eviction.
func RecordSessionEviction(reason string) {
	SessionEvictionsTotal.WithLabelValues(reason).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// SetCircuitBreakerState updates the breaker state gauge.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordEventPublished records a broker publication.
func RecordEventPublished(event, status string) {
	EventsPublishedTotal.WithLabelValues(event, status).Inc()
}
