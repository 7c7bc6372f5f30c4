package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/audioscribe/internal/observability"
)

// RequestRecorder records a completed HTTP request.
type RequestRecorder interface {
	RecordRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// RequestMetrics returns middleware that records per-request counters and
// durations. Health-check paths are skipped, matching the request logger.
func RequestMetrics(rec RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rec == nil || isHealthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		rec.RecordRequest(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// Tracing returns middleware that opens a server span per request and marks
// 5xx responses as span errors. Spans are no-ops when telemetry is disabled.
func Tracing(name string) gin.HandlerFunc {
	tracer := observability.Tracer(name)
	return func(c *gin.Context) {
		if isHealthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if status >= 500 {
			observability.SetSpanError(ctx, fmt.Errorf("request failed with status %d", status))
		}
	}
}
