package quote

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sony/gobreaker"

	"ai-stock-scanner/internal/interfaces"
	"ai-stock-scanner/internal/types"
)

var (
	ErrNoPrice    = errors.New("no usable price")
	ErrNoProvider = errors.New("no live quote provider configured")
)

// Adapter makes one bounded live attempt per call and substitutes a synthetic
// quote on any failure. It never retries.
type Adapter struct {
	provider  interfaces.QuoteProvider
	breaker   *gobreaker.CircuitBreaker
	synthetic *Synthetic
	timeout   time.Duration
	now       func() time.Time
}

var _ interfaces.PriceSource = (*Adapter)(nil)

type AdapterConfig struct {
	Timeout     time.Duration
	MaxFailures uint32
	OpenTimeout time.Duration
}

// NewAdapter accepts a nil provider, in which case every quote is synthetic.
func NewAdapter(provider interfaces.QuoteProvider, synthetic *Synthetic, cfg AdapterConfig) *Adapter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	a := &Adapter{
		provider:  provider,
		synthetic: synthetic,
		timeout:   cfg.Timeout,
		now:       time.Now,
	}
	if provider != nil {
		a.breaker = newBreaker("quote-"+provider.Name(), cfg.MaxFailures, cfg.OpenTimeout)
	}
	return a
}

func (a *Adapter) FetchPrice(ctx context.Context, symbol string) types.Result[types.PriceQuote] {
	price, err := a.live(ctx, symbol)
	if err != nil {
		return types.FallbackResult(a.synthetic.Price(symbol), err)
	}
	return types.LiveResult(types.PriceQuote{
		Price:      price,
		Source:     types.SourceLive,
		Provider:   a.provider.Name(),
		ObservedAt: a.now().UTC(),
	})
}

// Synthetic exposes the generator for whole-batch fallbacks.
func (a *Adapter) Synthetic() *Synthetic {
	return a.synthetic
}

func (a *Adapter) live(ctx context.Context, symbol string) (float64, error) {
	if a.provider == nil {
		return 0, ErrNoProvider
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	v, err := a.breaker.Execute(func() (interface{}, error) {
		price, err := a.quoteWithin(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
			return nil, fmt.Errorf("%w: %s returned %v for %s", ErrNoPrice, a.provider.Name(), price, symbol)
		}
		return price, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// quoteWithin stops waiting when ctx expires even if the provider ignores ctx.
func (a *Adapter) quoteWithin(ctx context.Context, symbol string) (float64, error) {
	type reply struct {
		price float64
		err   error
	}
	ch := make(chan reply, 1)
	go func() {
		p, err := a.provider.Quote(ctx, symbol)
		ch <- reply{p, err}
	}()

	select {
	case r := <-ch:
		return r.price, r.err
	case <-ctx.Done():
		return 0, fmt.Errorf("%s quote for %s: %w", a.provider.Name(), symbol, ctx.Err())
	}
}
