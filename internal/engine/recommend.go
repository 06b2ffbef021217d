package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"ai-stock-scanner/internal/types"
)

const TimeFrame = "1-3 days"

// strict greater-than at every threshold
const (
	buyAbove     = 55.0
	sellBelow    = 45.0
	lowRiskAbove = 70.0
)

// Builder turns a probability and a price into a trade recommendation.
type Builder struct {
	rng Rand
	now func() time.Time
}

type BuilderOption func(*Builder)

// WithClock overrides the generatedAt timestamp source.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

func NewBuilder(rng Rand, opts ...BuilderOption) *Builder {
	if rng == nil {
		rng = NewRand(nil)
	}
	b := &Builder{rng: rng, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) Build(probability, currentPrice float64) types.Recommendation {
	bullish := probability > buyAbove

	entry, stop, target := 1.005, 1.02, 0.975
	if bullish {
		entry, stop, target = 0.995, 0.98, 1.025
	}

	volatility := 0.015 + b.rng.Float64()*0.025

	return types.Recommendation{
		Probability:       int(math.Round(probability)),
		Signal:            SignalFor(probability),
		Confidence:        math.Abs(probability-50) / 50,
		EntryPrice:        round2(currentPrice * entry),
		StopLoss:          round2(currentPrice * stop),
		TargetPrice:       round2(currentPrice * target),
		RiskLevel:         RiskFor(probability),
		ExpectedReturnPct: fmt.Sprintf("%.1f%%", volatility*100),
		TimeFrame:         TimeFrame,
		Technicals: types.Technicals{
			RSI:      40 + b.rng.Float64()*30,
			MACD:     b.rng.Float64()*0.1 - 0.05,
			Momentum: b.rng.Float64()*0.15 - 0.075,
		},
		Rationale:   Rationale(probability),
		GeneratedAt: b.now().UTC(),
	}
}

func SignalFor(probability float64) types.Signal {
	switch {
	case probability > buyAbove:
		return types.SignalBuy
	case probability < sellBelow:
		return types.SignalSell
	default:
		return types.SignalHold
	}
}

func RiskFor(probability float64) types.RiskLevel {
	switch {
	case probability > lowRiskAbove:
		return types.RiskLow
	case probability > buyAbove:
		return types.RiskMedium
	default:
		return types.RiskHigh
	}
}

func Rationale(probability float64) string {
	switch {
	case probability > 70:
		return "Strong technical setup with favorable risk/reward"
	case probability > 60:
		return "Good probability setup, watch for entry"
	case probability > 50:
		return "Moderate chance, consider small position"
	case probability > 40:
		return "Low confidence, wait for better setup"
	default:
		return "Avoid this setup, high risk"
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
