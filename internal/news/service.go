package news

import (
	"context"
	"errors"
	"time"

	"ai-stock-scanner/internal/interfaces"
	"ai-stock-scanner/internal/logger"
	"ai-stock-scanner/internal/store"
	"ai-stock-scanner/internal/types"
)

var (
	ErrDisabled = errors.New("news fetching disabled")
	ErrNoAPIKey = errors.New("news api key not configured")
)

// Adapter fetches recent headlines for a symbol. It never fails: any problem
// yields an empty list tagged as a fallback.
type Adapter struct {
	api     *NewsData
	scraper *Scraper
	enabled bool
	timeout time.Duration
}

var _ interfaces.NewsSource = (*Adapter)(nil)

// NewAdapter accepts a nil client or scraper; with neither, every fetch is empty.
func NewAdapter(client *NewsData, scraper *Scraper, enabled bool, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		api:     client,
		scraper: scraper,
		enabled: enabled,
		timeout: timeout,
	}
}

// NewFromConfig builds the adapter from the news section of cfg.
func NewFromConfig(cfg *store.Config) *Adapter {
	n := cfg.News

	var client *NewsData
	if key := cfg.NewsAPIKey(); key != "" {
		client = NewNewsData(n.BaseURL, key, n.Country, n.Language, n.Timeout)
	}

	var scraper *Scraper
	if n.ScrapeFallback {
		scraper = NewScraper(n.ScrapeURL, n.Timeout)
	}

	return NewAdapter(client, scraper, n.Enabled, n.Timeout)
}

func (a *Adapter) FetchNews(ctx context.Context, symbol string) types.Result[[]types.NewsItem] {
	if !a.enabled {
		return types.FallbackResult([]types.NewsItem{}, ErrDisabled)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	items, err := a.latest(ctx, symbol)
	if (err != nil || len(items) == 0) && a.scraper != nil {
		scraped, serr := a.scraper.Search(ctx, symbol)
		if serr == nil && len(scraped) > 0 {
			logger.Debug(ctx, "Using scraped news", "symbol", symbol, "articles", len(scraped))
			return types.LiveResult(scraped)
		}
		if err == nil && serr != nil {
			err = serr
		}
	}

	if err != nil {
		return types.FallbackResult([]types.NewsItem{}, err)
	}
	if items == nil {
		items = []types.NewsItem{}
	}
	return types.LiveResult(items)
}

// Enabled reports whether the adapter makes upstream calls at all.
func (a *Adapter) Enabled() bool {
	return a.enabled
}

func (a *Adapter) latest(ctx context.Context, symbol string) ([]types.NewsItem, error) {
	if a.api == nil {
		return nil, ErrNoAPIKey
	}
	return a.api.Latest(ctx, symbol)
}
