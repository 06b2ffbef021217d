package interfaces

import (
	"context"

	"ai-stock-scanner/internal/types"
)

type Scanner interface {
	Scan(ctx context.Context, symbols []string) types.Result[types.ScanBatch]
	Analyze(ctx context.Context, symbol string) types.Result[types.StockAnalysis]
}
