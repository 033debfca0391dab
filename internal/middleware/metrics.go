package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"code", "method", "path"},
	)
)

// unmatchedRoute labels requests that hit no route so scanners can't blow up cardinality.
const unmatchedRoute = "unmatched"

// normalizePath replaces numeric path segments with :id. It is the fallback
// when the framework cannot report the matched route template.
func normalizePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if _, err := strconv.ParseUint(part, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func observe(status int, method, path string, start time.Time) {
	code := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(code, method, path).Inc()
	httpRequestDuration.WithLabelValues(code, method, path).Observe(time.Since(start).Seconds())
}

// statusFromFiberError picks the status fiber's error handler will write for err.
func statusFromFiberError(err error, current int) int {
	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		return fiberError.Code
	}
	if current < http.StatusBadRequest {
		return http.StatusInternalServerError
	}
	return current
}

// MetricsMiddlewareFiber creates a Fiber middleware for collecting Prometheus metrics.
func MetricsMiddlewareFiber() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		statusCode := c.Response().StatusCode()
		if err != nil {
			statusCode = statusFromFiberError(err, statusCode)
		}

		path := c.Route().Path
		switch {
		case statusCode == http.StatusNotFound && (path == "" || path == "/"):
			path = unmatchedRoute
		case path == "" || path == "/" || strings.Contains(path, "*"):
			path = normalizePath(c.Path())
		}

		observe(statusCode, c.Method(), path, start)
		return err
	}
}

// MetricsMiddlewareGin creates a Gin middleware for collecting Prometheus metrics.
func MetricsMiddlewareGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// FullPath is the route template, e.g. /journal/:id; empty when nothing matched.
		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		observe(c.Writer.Status(), c.Request.Method, path, start)
	}
}
