package interfaces

import "ai-stock-scanner/internal/types"

// Scorer produces a probability in [20, 85]. quote and news are accepted for call-shape
// stability; only the symbol influences the result.
type Scorer interface {
	Score(symbol string, quote types.PriceQuote, news []types.NewsItem) float64
}

type Recommender interface {
	Build(probability, currentPrice float64) types.Recommendation
}
