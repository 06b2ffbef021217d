package types

import "time"

// PriceSource tags where a quote came from.
type PriceSource string

const (
	SourceLive      PriceSource = "LIVE"
	SourceSynthetic PriceSource = "SYNTHETIC"
)

// DataSourceSimulation marks results produced by the whole-batch fallback.
const DataSourceSimulation = "SIMULATION"

type PriceQuote struct {
	Price      float64     `json:"price"`
	Source     PriceSource `json:"source"`
	Provider   string      `json:"provider"`
	ObservedAt time.Time   `json:"observedAt"`
}

// NewsItem is passed through from the news provider as-is. Nothing downstream reads it yet.
type NewsItem struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Link        string `json:"link,omitempty"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Technicals are illustrative values only; they never feed the signal.
type Technicals struct {
	RSI      float64 `json:"rsi"`
	MACD     float64 `json:"macd"`
	Momentum float64 `json:"momentum"`
}

type Recommendation struct {
	Probability       int        `json:"probability"`
	Signal            Signal     `json:"signal"`
	Confidence        float64    `json:"confidence"`
	EntryPrice        float64    `json:"entryPrice"`
	StopLoss          float64    `json:"stopLoss"`
	TargetPrice       float64    `json:"targetPrice"`
	RiskLevel         RiskLevel  `json:"riskLevel"`
	ExpectedReturnPct string     `json:"expectedReturn"`
	TimeFrame         string     `json:"timeFrame"`
	Technicals        Technicals `json:"technicals"`
	Rationale         string     `json:"rationale"`
	GeneratedAt       time.Time  `json:"generatedAt"`
}

// ScanResult is one row of a scan. Change and ChangePercent are independent random
// deltas, not derived from any previously observed price.
type ScanResult struct {
	Symbol         string         `json:"symbol"`
	DisplayName    string         `json:"name"`
	CurrentPrice   float64        `json:"currentPrice"`
	Change         float64        `json:"change"`
	ChangePercent  float64        `json:"changePercent"`
	Recommendation Recommendation `json:"recommendation"`
	DataSource     string         `json:"dataSource"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// ScanBatch is ordered by Recommendation.Probability, highest first.
type ScanBatch []ScanResult

type StockAnalysis struct {
	Symbol         string         `json:"symbol"`
	Name           string         `json:"name"`
	Price          float64        `json:"price"`
	Recommendation Recommendation `json:"recommendation"`
	DataSource     string         `json:"dataSource"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Result is the outcome of a stage that can substitute its own value on failure.
// When Fallback is set, Value is the substitute and Cause explains why.
type Result[T any] struct {
	Value    T
	Fallback bool
	Cause    error
}

func LiveResult[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func FallbackResult[T any](v T, cause error) Result[T] {
	return Result[T]{Value: v, Fallback: true, Cause: cause}
}
