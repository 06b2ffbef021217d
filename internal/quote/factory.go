package quote

import (
	"fmt"

	"ai-stock-scanner/internal/engine"
	"ai-stock-scanner/internal/interfaces"
	"ai-stock-scanner/internal/store"
)

// NewProvider builds the configured live provider. It returns ErrNoProvider
// when the provider is SYNTHETIC or its credentials are missing.
func NewProvider(cfg *store.Config) (interfaces.QuoteProvider, error) {
	q := cfg.Quote
	switch q.Provider {
	case store.ProviderTwelveData:
		key := cfg.APIKey()
		if key == "" {
			return nil, fmt.Errorf("%w: %s is not set", ErrNoProvider, q.APIKeyEnv)
		}
		return NewTwelveData(q.BaseURL, key, q.SymbolSuffix, q.Timeout), nil
	case store.ProviderKite:
		key, token := cfg.APIKey(), cfg.AccessToken()
		if key == "" || token == "" {
			return nil, fmt.Errorf("%w: %s and %s must be set", ErrNoProvider, q.APIKeyEnv, q.AccessTokenEnv)
		}
		var opts []KiteOption
		if q.BaseURL != "" {
			opts = append(opts, WithKiteBaseURI(q.BaseURL))
		}
		return NewKite(key, token, q.Exchange, q.Timeout, opts...), nil
	case store.ProviderYahoo:
		return NewYahoo(q.SymbolSuffix, q.Timeout), nil
	default:
		return nil, ErrNoProvider
	}
}

// NewFromConfig wires provider, breaker and synthetic generator. A provider
// error is returned alongside a working synthetic-only adapter.
func NewFromConfig(cfg *store.Config, rng engine.Rand) (*Adapter, error) {
	provider, err := NewProvider(cfg)
	adapter := NewAdapter(provider, NewSynthetic(rng), AdapterConfig{
		Timeout:     cfg.Quote.Timeout,
		MaxFailures: cfg.Quote.Breaker.MaxFailures,
		OpenTimeout: cfg.Quote.Breaker.OpenTimeout,
	})
	return adapter, err
}
