package observe

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dwijnand/servo/pkg/link"
)

// Default tracer name for stylesheet load traces.
const defaultTracerName = "servo/link"

// TracingConfig configures the OpenTelemetry monitor.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "servo/link").
	TracerName string

	// Filter determines which requests to trace, by resolved URL.
	// Return true to trace the request, false to skip.
	// If nil, all requests are traced.
	Filter func(u *url.URL) bool

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TracingOption configures the OpenTelemetry monitor.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(u *url.URL) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// Tracing is a link.Monitor that emits one OpenTelemetry span per load
// generation, from request issue to batch completion. Sub-load activity
// is recorded as span events.
//
// All callbacks arrive on the element's execution context, so the span
// map needs no locking. Use one Tracing instance per element.
type Tracing struct {
	config TracingConfig
	spans  map[link.GenerationID]trace.Span
}

// OpenTelemetry creates a tracing monitor.
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before issuing loads:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return &Tracing{
		config: config,
		spans:  make(map[link.GenerationID]trace.Span),
	}
}

// RequestStarted implements link.Monitor.
func (t *Tracing) RequestStarted(gen link.GenerationID, u *url.URL) {
	if t.config.Filter != nil && !t.config.Filter(u) {
		return
	}

	_, span := t.config.tracer.Start(
		context.Background(),
		fmt.Sprintf("link.load %s", u.Path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithTimestamp(time.Now()),
		trace.WithAttributes(
			attribute.Int64("servo.generation", int64(gen)),
			attribute.String("servo.url", u.String()),
		),
	)
	t.spans[gen] = span
}

// LoadStarted implements link.Monitor.
func (t *Tracing) LoadStarted(gen link.GenerationID) {
	if span, ok := t.spans[gen]; ok {
		span.AddEvent("load started")
	}
}

// LoadFinished implements link.Monitor.
func (t *Tracing) LoadFinished(gen link.GenerationID, succeeded bool) {
	if span, ok := t.spans[gen]; ok {
		span.AddEvent("load finished",
			trace.WithAttributes(attribute.Bool("servo.succeeded", succeeded)))
	}
}

// BatchCompleted implements link.Monitor.
func (t *Tracing) BatchCompleted(gen link.GenerationID, anyFailed bool) {
	span, ok := t.spans[gen]
	if !ok {
		return
	}
	delete(t.spans, gen)

	if anyFailed {
		span.SetStatus(codes.Error, "one or more sub-loads failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// StaleDiscard implements link.Monitor.
func (t *Tracing) StaleDiscard(gen link.GenerationID) {
	if span, ok := t.spans[gen]; ok {
		span.AddEvent("resource discarded")
	}
}

// IconNotified implements link.Monitor.
func (t *Tracing) IconNotified(u *url.URL) {}
