package utils

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// logExporter writes finished spans to a logger at debug level
type logExporter struct {
	logger *logrus.Logger
}

func (e *logExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		fields := logrus.Fields{
			"span":        span.Name(),
			"trace_id":    span.SpanContext().TraceID().String(),
			"duration_ms": span.EndTime().Sub(span.StartTime()).Milliseconds(),
		}
		if status := span.Status(); status.Code == codes.Error {
			fields["error"] = status.Description
			e.logger.WithFields(fields).Debug("Span failed")
			continue
		}
		e.logger.WithFields(fields).Debug("Span finished")
	}
	return nil
}

func (e *logExporter) Shutdown(ctx context.Context) error {
	return nil
}

// NewTracerProvider installs a global tracer provider that logs spans
// through logger. Spans are only recorded when debug logging is on.
func NewTracerProvider(logger *logrus.Logger) *sdktrace.TracerProvider {
	sampler := sdktrace.NeverSample()
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		sampler = sdktrace.AlwaysSample()
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler),
		sdktrace.WithSyncer(&logExporter{logger: logger}),
	)
	otel.SetTracerProvider(tp)
	return tp
}
