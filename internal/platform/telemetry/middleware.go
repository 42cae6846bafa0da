package telemetry

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/builder-service/internal/platform/logging"
)

// InstrumentationName identifies this service's meters and tracers.
const InstrumentationName = "github.com/jsamuelsen/builder-service"

// TraceHeader carries the trace ID of a traced request back to the caller.
const TraceHeader = "X-Trace-ID"

// internalPrefix marks operational routes that are never traced.
const internalPrefix = "/-/"

// instruments are the HTTP server instruments recorded per request.
type instruments struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
	inflight metric.Int64UpDownCounter
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	duration, errDuration := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration."),
		metric.WithUnit("s"),
	)
	requests, errRequests := meter.Int64Counter("http.server.request.count",
		metric.WithDescription("HTTP requests served."),
	)
	inflight, errInflight := meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("HTTP requests in flight."),
	)

	if err := errors.Join(errDuration, errRequests, errInflight); err != nil {
		return nil, err
	}

	return &instruments{duration: duration, requests: requests, inflight: inflight}, nil
}

// Middleware tags each traced request with its trace ID, on the response
// header and on the request logger, and records HTTP metrics. It must run
// after TracingMiddleware.
func Middleware() gin.HandlerFunc {
	inst, err := newInstruments(otel.Meter(InstrumentationName))
	if err != nil {
		// Reported to the otel error handler; requests still flow.
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			id := sc.TraceID().String()
			c.Header(TraceHeader, id)

			ctx = logging.WithTraceID(ctx, id)
			c.Request = c.Request.WithContext(ctx)
		}

		if inst == nil {
			c.Next()
			return
		}

		method := attribute.String("http.request.method", c.Request.Method)
		route := attribute.String("http.route", c.FullPath())

		inst.inflight.Add(ctx, 1, metric.WithAttributes(method, route))
		defer inst.inflight.Add(ctx, -1, metric.WithAttributes(method, route))

		start := time.Now()

		c.Next()

		done := metric.WithAttributes(method, route, attribute.Int("http.response.status_code", c.Writer.Status()))
		inst.duration.Record(ctx, time.Since(start).Seconds(), done)
		inst.requests.Add(ctx, 1, done)
	}
}

// TracingMiddleware starts a server span per request using otelgin.
// Requests under /-/ are not traced.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, otelgin.WithGinFilter(func(c *gin.Context) bool {
		return !strings.HasPrefix(c.Request.URL.Path, internalPrefix)
	}))
}

// Tracer returns the service tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
