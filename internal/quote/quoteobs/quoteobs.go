package quoteobs

import (
	"context"

	"ai-stock-scanner/internal/interfaces"
	"ai-stock-scanner/internal/logger"
	"ai-stock-scanner/internal/types"
)

// observablePriceSource wraps a PriceSource with logging & tracing
type observablePriceSource struct {
	source interfaces.PriceSource
}

var _ interfaces.PriceSource = (*observablePriceSource)(nil)

func Wrap(source interfaces.PriceSource) interfaces.PriceSource {
	return &observablePriceSource{source: source}
}

func (o *observablePriceSource) FetchPrice(ctx context.Context, symbol string) types.Result[types.PriceQuote] {
	op := logger.StartOperation(ctx, "quote.FetchPrice", "symbol", symbol)
	ctx = op.GetContext()

	res := o.source.FetchPrice(ctx, symbol)
	if res.Fallback {
		logger.Fallback(ctx, "price", symbol, res.Cause, "price", res.Value.Price)
	}

	op.End(
		"price", res.Value.Price,
		"provider", res.Value.Provider,
		"fallback", res.Fallback,
	)
	return res
}
