package quote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	finance "github.com/piquette/finance-go"
	yquote "github.com/piquette/finance-go/quote"
)

// Yahoo reads regular market prices through finance-go.
type Yahoo struct {
	suffix string
	get    func(symbol string) (*finance.Quote, error)
}

// NewYahoo sets the finance-go HTTP client, which is process-wide.
func NewYahoo(suffix string, timeout time.Duration) *Yahoo {
	finance.SetHTTPClient(&http.Client{Timeout: timeout})
	return &Yahoo{suffix: suffix, get: yquote.Get}
}

func (y *Yahoo) Name() string { return "yahoo" }

func (y *Yahoo) Quote(_ context.Context, symbol string) (float64, error) {
	ticker := symbol + y.suffix
	q, err := y.get(ticker)
	if err != nil {
		return 0, fmt.Errorf("yahoo %s: %w", ticker, err)
	}
	if q == nil {
		return 0, fmt.Errorf("%w: yahoo returned no quote for %s", ErrNoPrice, ticker)
	}
	return q.RegularMarketPrice, nil
}
