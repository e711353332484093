// Package metrics collects Prometheus metrics for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// requestCounter counts all HTTP requests with labels.
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	// requestDuration records request duration in seconds.
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	// statusCategory counts responses by status class.
	statusCategory = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
		},
		[]string{"service", "category", "method", "path"},
	)

	// publishCounter counts publish/finalize transitions by role and outcome.
	publishCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_publish_total",
			Help: "Total number of onboarding publish/finalize attempts",
		},
		[]string{"service", "role", "outcome"},
	)
)

// HTTP holds configuration for HTTP metrics collection.
type HTTP struct {
	ServiceName string
}

// NewHTTP registers the collectors and returns a metrics middleware
// factory for the given service name.
func NewHTTP(serviceName string) *HTTP {
	prometheus.MustRegister(requestCounter, requestDuration, statusCategory, publishCounter)
	return &HTTP{ServiceName: serviceName}
}

// Middleware creates an Echo middleware that records request metrics.
func (m *HTTP) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			requestCounter.WithLabelValues(m.ServiceName, method, path, statusStr).Inc()
			if cat := category(status); cat != "" {
				statusCategory.WithLabelValues(m.ServiceName, cat, method, path).Inc()
			}
			requestDuration.WithLabelValues(m.ServiceName, method, path, statusStr).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// ObservePublish records one publish/finalize attempt.
func (m *HTTP) ObservePublish(role, outcome string) {
	publishCounter.WithLabelValues(m.ServiceName, role, outcome).Inc()
}

func category(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}

// Handler returns the HTTP handler exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
