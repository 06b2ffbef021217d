package interfaces

import (
	"context"

	"ai-stock-scanner/internal/types"
)

type NewsSource interface {
	FetchNews(ctx context.Context, symbol string) types.Result[[]types.NewsItem]
}
