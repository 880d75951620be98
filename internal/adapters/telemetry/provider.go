// Package telemetry records batch entries as OpenTelemetry spans and forwards
// them to a progress renderer.
package telemetry

import (
	"bytes"
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/replay/internal/core/ports"
)

// InstrumentationName names the tracer that records batch spans.
const InstrumentationName = "go.trai.ch/replay"

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
// Span lifecycle reaches the renderer through a Bridge; span output is handed
// to the renderer as it is written.
type OTelTracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	renderer ports.Renderer
}

// NewOTelTracer creates a tracer whose spans are rendered by renderer.
// Spans are processed synchronously so the renderer sees them in order.
func NewOTelTracer(renderer ports.Renderer) *OTelTracer {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(NewBridge(renderer)),
	)

	return &OTelTracer{
		provider: provider,
		tracer:   provider.Tracer(InstrumentationName),
		renderer: renderer,
	}
}

// Provider returns the underlying tracer provider.
func (t *OTelTracer) Provider() *sdktrace.TracerProvider {
	return t.provider
}

// Shutdown flushes and stops the tracer provider.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)

	return ctx, &OTelSpan{
		span:     span,
		spanID:   span.SpanContext().SpanID().String(),
		renderer: t.renderer,
	}
}

// EmitPlan records the planned entries on the current span and announces them to the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, entries []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("entries", entries),
		))
	}

	if t.renderer != nil {
		t.renderer.OnPlanEmit(entries)
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span     trace.Span
	spanID   string
	renderer ports.Renderer
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records an error for the span and marks it failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write hands p to the renderer, or records it as a span event without one.
// Entry output arrives whole once its process exits, so nothing is buffered here.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	if s.renderer != nil {
		s.renderer.OnEntryLog(s.spanID, bytes.Clone(p))
		return len(p), nil
	}
	s.span.AddEvent("output", trace.WithAttributes(attribute.String("output.text", string(p))))
	return len(p), nil
}
