// Package trace owns the process-wide span exporter used by the scan and
// analysis decorators and by the logger's trace_id/span_id fields.
package trace

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName = "ai-stock-scanner"

	// EnvTracing switches span export on. Any strconv.ParseBool value works.
	EnvTracing = "LOG_TRACING_ENABLED"
)

// Span attribute keys shared by the scanner decorators.
const (
	AttrSymbol    = attribute.Key("scanner.symbol")
	AttrRequested = attribute.Key("scanner.requested")
	AttrResults   = attribute.Key("scanner.results")
	AttrFallback  = attribute.Key("scanner.fallback")
)

var (
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	enabled  bool
)

// Init installs a stdout span exporter tagged with the scanner's name and
// version. Tracing stays off unless EnvTracing parses as true; a failed setup
// leaves it off too.
func Init(version string) error {
	enabled = false
	if !requested() {
		return nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("stdout span exporter: %w", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return fmt.Errorf("trace resource: %w", err)
	}

	provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(provider)
	tracer = provider.Tracer(ServiceName)
	enabled = true
	return nil
}

// Shutdown flushes pending scan spans. Safe to call when Init never enabled
// tracing.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	provider = nil
	tracer = nil
	enabled = false
	return err
}

// StartSpan opens a child span, or hands back the span already on ctx when
// tracing is off.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !enabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// RecordOutcome marks a scan or analysis span with whether the synthetic
// fallback answered, and the cause when it did.
func RecordOutcome(span trace.Span, results int, fallback bool, cause error) {
	span.SetAttributes(AttrResults.Int(results), AttrFallback.Bool(fallback))
	if fallback && cause != nil {
		span.RecordError(cause)
		span.SetStatus(codes.Error, cause.Error())
	}
}

func Enabled() bool {
	return enabled
}

// GetTraceFields returns hex ids for the span on ctx, for log correlation.
func GetTraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	if !enabled {
		return "", "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}

func requested() bool {
	on, err := strconv.ParseBool(os.Getenv(EnvTracing))
	return err == nil && on
}
