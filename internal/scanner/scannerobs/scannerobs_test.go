package scannerobs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"ai-stock-scanner/internal/metrics"
	"ai-stock-scanner/internal/types"
)

type stubScanner struct {
	batch    types.Result[types.ScanBatch]
	analysis types.Result[types.StockAnalysis]
}

func (s stubScanner) Scan(context.Context, []string) types.Result[types.ScanBatch] {
	return s.batch
}

func (s stubScanner) Analyze(context.Context, string) types.Result[types.StockAnalysis] {
	return s.analysis
}

func row(source string, signal types.Signal) types.ScanResult {
	return types.ScanResult{DataSource: source, Recommendation: types.Recommendation{Signal: signal}}
}

func TestWrapRecordsScanMetrics(t *testing.T) {
	m := metrics.New()
	s := Wrap(stubScanner{batch: types.LiveResult(types.ScanBatch{
		row("twelvedata", types.SignalBuy),
		row("advanced-simulation", types.SignalBuy),
		row("twelvedata", types.SignalSell),
	})}, m)

	res := s.Scan(context.Background(), nil)
	assert.Len(t, res.Value, 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Scans.WithLabelValues("live")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Scans.WithLabelValues("fallback")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PriceSources.WithLabelValues("twelvedata")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PriceSources.WithLabelValues("advanced-simulation")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Signals.WithLabelValues("BUY")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Signals.WithLabelValues("SELL")))
}

func TestWrapRecordsFallback(t *testing.T) {
	m := metrics.New()
	s := Wrap(stubScanner{
		batch:    types.FallbackResult(types.ScanBatch{row(types.DataSourceSimulation, types.SignalHold)}, errors.New("boom")),
		analysis: types.FallbackResult(types.StockAnalysis{DataSource: types.DataSourceSimulation}, errors.New("boom")),
	}, m)

	res := s.Scan(context.Background(), nil)
	assert.True(t, res.Fallback)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Scans.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PriceSources.WithLabelValues(types.DataSourceSimulation)))

	a := s.Analyze(context.Background(), "TCS")
	assert.True(t, a.Fallback)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Analyses.WithLabelValues("fallback")))
}

func TestWrapWithoutMetrics(t *testing.T) {
	s := Wrap(stubScanner{batch: types.LiveResult(types.ScanBatch{row("twelvedata", types.SignalBuy)})}, nil)
	assert.NotPanics(t, func() {
		s.Scan(context.Background(), []string{"TCS"})
		s.Analyze(context.Background(), "TCS")
	})
}
