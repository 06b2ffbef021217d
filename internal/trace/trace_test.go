package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDisabledByDefault(t *testing.T) {
	t.Setenv(EnvTracing, "")
	require.NoError(t, Init("test"))
	assert.False(t, Enabled())

	ctx := context.Background()
	got, span := StartSpan(ctx, "scanner.Scan")
	assert.Equal(t, ctx, got)
	assert.False(t, span.SpanContext().IsValid())

	_, _, ok := GetTraceFields(got)
	assert.False(t, ok)
	assert.NoError(t, Shutdown(ctx))
}

func TestEnabledSpansCarryIDs(t *testing.T) {
	t.Setenv(EnvTracing, "1")
	require.NoError(t, Init("test"))
	t.Cleanup(func() { Shutdown(context.Background()) })
	require.True(t, Enabled())

	ctx, span := StartSpan(context.Background(), "scanner.Analyze")
	defer span.End()

	traceID, spanID, ok := GetTraceFields(ctx)
	require.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)

	require.NoError(t, Shutdown(context.Background()))
	assert.False(t, Enabled())
}

func TestRecordOutcome(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	tr := tp.Tracer(ServiceName)

	_, live := tr.Start(context.Background(), "scanner.Scan")
	RecordOutcome(live, 5, false, nil)
	live.End()

	_, fb := tr.Start(context.Background(), "scanner.Analyze")
	RecordOutcome(fb, 1, true, errors.New("upstream down"))
	fb.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), AttrResults.Int(5))
	assert.Contains(t, spans[0].Attributes(), AttrFallback.Bool(false))

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "upstream down", spans[1].Status().Description)
	assert.Contains(t, spans[1].Attributes(), AttrFallback.Bool(true))
	assert.Len(t, spans[1].Events(), 1)
}
