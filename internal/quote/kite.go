package quote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"
)

// Kite reads last traded prices from Zerodha Kite Connect.
type Kite struct {
	kc       *kiteconnect.Client
	exchange string
}

type KiteOption func(*kiteconnect.Client)

// WithKiteBaseURI points the client at a different API root.
func WithKiteBaseURI(uri string) KiteOption {
	return func(kc *kiteconnect.Client) {
		kc.SetBaseURI(uri)
	}
}

func NewKite(apiKey, accessToken, exchange string, timeout time.Duration, opts ...KiteOption) *Kite {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	kc.SetHTTPClient(&http.Client{Timeout: timeout})
	for _, opt := range opts {
		opt(kc)
	}
	return &Kite{kc: kc, exchange: exchange}
}

func (k *Kite) Name() string { return "kite" }

// Quote ignores ctx; the client timeout bounds the call and the adapter stops waiting on ctx.
func (k *Kite) Quote(_ context.Context, symbol string) (float64, error) {
	instrument := k.exchange + ":" + symbol
	ltp, err := k.kc.GetLTP(instrument)
	if err != nil {
		return 0, fmt.Errorf("kite ltp %s: %w", instrument, err)
	}
	q, ok := ltp[instrument]
	if !ok {
		return 0, fmt.Errorf("%w: kite returned no ltp for %s", ErrNoPrice, instrument)
	}
	return q.LastPrice, nil
}
