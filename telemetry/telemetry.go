// Package telemetry wires OpenTelemetry tracing into the sweep. Spans are
// exported through the structured logger rather than a network collector:
// a single-shot diagnostic tool has no backend to ship traces to, but the
// per-check spans still give operators timing visibility at debug level.
package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// LogSpanExporter implements the OpenTelemetry SpanExporter interface and
// emits completed spans through a slog.Logger at debug level. Export never
// fails: logging problems must not break the trace pipeline.
type LogSpanExporter struct {
	logger *slog.Logger
}

// NewLogSpanExporter creates a span exporter backed by the given logger.
func NewLogSpanExporter(logger *slog.Logger) *LogSpanExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSpanExporter{logger: logger}
}

// ExportSpans logs a batch of completed spans.
// It is called automatically by the SDK when spans end.
func (e *LogSpanExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		attrs := make([]any, 0, 4+2*len(span.Attributes()))
		attrs = append(attrs,
			"span", span.Name(),
			"duration", span.EndTime().Sub(span.StartTime()).String(),
		)
		for _, kv := range span.Attributes() {
			attrs = append(attrs, string(kv.Key), kv.Value.Emit())
		}
		e.logger.Debug("span", attrs...)
	}
	return nil
}

// Shutdown implements the SpanExporter interface; there is nothing to
// flush or close.
func (e *LogSpanExporter) Shutdown(context.Context) error {
	return nil
}

// NewTracerProvider creates a TracerProvider configured with a
// LogSpanExporter.
//
// The provider uses a SimpleSpanProcessor for immediate export without
// batching: the process exits right after the sweep, so there is no point
// building up batches.
func NewTracerProvider(logger *slog.Logger) *sdktrace.TracerProvider {
	exporter := NewLogSpanExporter(logger)
	processor := sdktrace.NewSimpleSpanProcessor(exporter)

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String("hostmedic"),
		),
	)
	if err != nil {
		res = resource.Default()
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(processor),
		sdktrace.WithResource(res),
	)
}
