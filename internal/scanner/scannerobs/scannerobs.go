package scannerobs

import (
	"context"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"

	"ai-stock-scanner/internal/interfaces"
	"ai-stock-scanner/internal/logger"
	"ai-stock-scanner/internal/metrics"
	"ai-stock-scanner/internal/trace"
	"ai-stock-scanner/internal/types"
)

type observableScanner struct {
	scanner interfaces.Scanner
	metrics *metrics.Registry
}

var _ interfaces.Scanner = (*observableScanner)(nil)

// Wrap adds spans, logs and metrics around a Scanner. m may be nil.
func Wrap(s interfaces.Scanner, m *metrics.Registry) interfaces.Scanner {
	return &observableScanner{
		scanner: s,
		metrics: m,
	}
}

func (o *observableScanner) Scan(ctx context.Context, symbols []string) types.Result[types.ScanBatch] {
	ctx, span := trace.StartSpan(ctx, "scanner.Scan", oteltrace.WithAttributes(trace.AttrRequested.Int(len(symbols))))
	defer span.End()

	start := time.Now()
	logger.Info(ctx, "Starting scan", "requested", len(symbols))

	res := o.scanner.Scan(ctx, symbols)
	duration := time.Since(start)
	trace.RecordOutcome(span, len(res.Value), res.Fallback, res.Cause)

	if res.Fallback {
		logger.ErrorWithErr(ctx, "Scan failed, serving simulated batch", res.Cause,
			"results", len(res.Value),
			"duration_ms", duration.Milliseconds(),
		)
	} else {
		logger.Info(ctx, "Scan completed",
			"results", len(res.Value),
			"duration_ms", duration.Milliseconds(),
		)
	}

	if o.metrics != nil {
		outcome := metrics.Outcome(res.Fallback)
		o.metrics.Scans.WithLabelValues(outcome).Inc()
		o.metrics.ScanDuration.WithLabelValues(outcome).Observe(duration.Seconds())
		for _, r := range res.Value {
			o.metrics.PriceSources.WithLabelValues(r.DataSource).Inc()
			o.metrics.Signals.WithLabelValues(string(r.Recommendation.Signal)).Inc()
		}
	}

	return res
}

func (o *observableScanner) Analyze(ctx context.Context, symbol string) types.Result[types.StockAnalysis] {
	ctx, span := trace.StartSpan(ctx, "scanner.Analyze", oteltrace.WithAttributes(trace.AttrSymbol.String(symbol)))
	defer span.End()

	start := time.Now()
	res := o.scanner.Analyze(ctx, symbol)
	trace.RecordOutcome(span, 1, res.Fallback, res.Cause)

	if res.Fallback {
		logger.ErrorWithErr(ctx, "Analysis failed, serving simulated result", res.Cause,
			"symbol", symbol,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	} else {
		logger.Info(ctx, "Analysis completed",
			"symbol", res.Value.Symbol,
			"signal", res.Value.Recommendation.Signal,
			"probability", res.Value.Recommendation.Probability,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	if o.metrics != nil {
		o.metrics.Analyses.WithLabelValues(metrics.Outcome(res.Fallback)).Inc()
		o.metrics.PriceSources.WithLabelValues(res.Value.DataSource).Inc()
		o.metrics.Signals.WithLabelValues(string(res.Value.Recommendation.Signal)).Inc()
	}

	return res
}
