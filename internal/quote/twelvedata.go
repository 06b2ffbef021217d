package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"ai-stock-scanner/internal/api"
)

// TwelveData reads /price from the Twelve Data REST API.
type TwelveData struct {
	client *api.Client
	apiKey string
	suffix string
}

func NewTwelveData(baseURL, apiKey, suffix string, timeout time.Duration) *TwelveData {
	return &TwelveData{
		client: api.NewClient(
			api.WithBaseURL(baseURL),
			api.WithTimeout(timeout),
			api.WithLogging(true),
		),
		apiKey: apiKey,
		suffix: suffix,
	}
}

func (t *TwelveData) Name() string { return "twelvedata" }

type twelveDataPrice struct {
	Price   json.RawMessage `json:"price"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
}

func (t *TwelveData) Quote(ctx context.Context, symbol string) (float64, error) {
	resp, err := t.client.GET(ctx, "/price", url.Values{
		"symbol": {symbol + t.suffix},
		"apikey": {t.apiKey},
	})
	if err != nil {
		return 0, fmt.Errorf("twelvedata %s: %w", symbol, err)
	}

	var body twelveDataPrice
	if err := resp.ParseJSON(&body); err != nil {
		return 0, fmt.Errorf("twelvedata %s: %w", symbol, err)
	}
	if len(body.Price) == 0 {
		if body.Status == "error" {
			return 0, fmt.Errorf("%w: twelvedata %s: %s", ErrNoPrice, symbol, body.Message)
		}
		return 0, fmt.Errorf("%w: twelvedata %s: missing price field", ErrNoPrice, symbol)
	}

	return parsePrice(body.Price)
}

// parsePrice accepts both "123.45" and 123.45.
func parsePrice(raw json.RawMessage) (float64, error) {
	s := string(bytes.Trim(raw, `"`))
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unparseable price %q", ErrNoPrice, s)
	}
	return p, nil
}
