package interfaces

import (
	"context"

	"ai-stock-scanner/internal/types"
)

// QuoteProvider is a live upstream that returns the last traded price for a symbol.
type QuoteProvider interface {
	Name() string
	Quote(ctx context.Context, symbol string) (float64, error)
}

// PriceSource always yields a usable quote, substituting a synthetic one when the live path fails.
type PriceSource interface {
	FetchPrice(ctx context.Context, symbol string) types.Result[types.PriceQuote]
}
