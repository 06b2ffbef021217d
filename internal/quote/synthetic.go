package quote

import (
	"time"

	"ai-stock-scanner/internal/engine"
	"ai-stock-scanner/internal/refdata"
	"ai-stock-scanner/internal/types"
)

const (
	// SyntheticProvider is the provider tag on generated quotes.
	SyntheticProvider = "advanced-simulation"

	// MinSyntheticPrice keeps generated prices strictly positive.
	MinSyntheticPrice = 0.01

	noiseRange = 40.0 // base ± 20
)

// Synthetic perturbs a symbol's reference price with bounded uniform noise.
type Synthetic struct {
	rng engine.Rand
	now func() time.Time
}

func NewSynthetic(rng engine.Rand) *Synthetic {
	if rng == nil {
		rng = engine.NewRand(nil)
	}
	return &Synthetic{rng: rng, now: time.Now}
}

func (s *Synthetic) Price(symbol string) types.PriceQuote {
	price := refdata.BasePrice(symbol) + (s.rng.Float64()-0.5)*noiseRange
	if price < MinSyntheticPrice {
		price = MinSyntheticPrice
	}
	return types.PriceQuote{
		Price:      price,
		Source:     types.SourceSynthetic,
		Provider:   SyntheticProvider,
		ObservedAt: s.now().UTC(),
	}
}
