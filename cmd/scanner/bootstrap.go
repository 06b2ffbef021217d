package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"ai-stock-scanner/internal/engine"
	"ai-stock-scanner/internal/interfaces"
	"ai-stock-scanner/internal/logger"
	"ai-stock-scanner/internal/metrics"
	"ai-stock-scanner/internal/news"
	"ai-stock-scanner/internal/quote"
	"ai-stock-scanner/internal/quote/quoteobs"
	"ai-stock-scanner/internal/scanner"
	"ai-stock-scanner/internal/scanner/scannerobs"
	"ai-stock-scanner/internal/store"
	"ai-stock-scanner/internal/trace"
)

// bootstrap loads .env, initializes the logger, reads the config and starts the tracer
func bootstrap(ctx context.Context, configPath string) (*store.Config, error) {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return nil, err
	}

	if err := trace.Init(cfg.Server.Version); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return cfg, nil
}

func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// initializeQuote builds the price adapter with observability. A missing
// provider is not fatal: every quote is then synthetic.
func initializeQuote(ctx context.Context, cfg *store.Config, rng engine.Rand) (interfaces.PriceSource, *quote.Synthetic) {
	adapter, err := quote.NewFromConfig(cfg, rng)
	switch {
	case errors.Is(err, quote.ErrNoProvider) && cfg.Quote.Provider == store.ProviderSynthetic:
		logger.Info(ctx, "Quote provider set to SYNTHETIC - all prices are simulated")
	case err != nil:
		logger.Warn(ctx, "Live quotes unavailable - using simulated prices", "provider", cfg.Quote.Provider, "error", err)
	default:
		logger.Info(ctx, "Live quotes enabled", "provider", cfg.Quote.Provider)
	}
	return quoteobs.Wrap(adapter), adapter.Synthetic()
}

func initializeNews(ctx context.Context, cfg *store.Config) interfaces.NewsSource {
	adapter := news.NewFromConfig(cfg)
	switch {
	case !cfg.News.Enabled:
		logger.Info(ctx, "News fetching disabled")
	case cfg.NewsAPIKey() == "" && !cfg.News.ScrapeFallback:
		logger.Warn(ctx, "No news API key configured - headlines will be empty", "env", cfg.News.APIKeyEnv)
	}
	return adapter
}

// initializeScanner wires quote, news and engine into an observable scanner. m may be nil.
func initializeScanner(ctx context.Context, cfg *store.Config, m *metrics.Registry) interfaces.Scanner {
	rng := engine.NewRand(cfg.Engine.Seed)
	if cfg.Engine.Seed != nil {
		logger.Warn(ctx, "Engine seed is pinned - recommendations are reproducible", "seed", *cfg.Engine.Seed)
	}

	prices, synthetic := initializeQuote(ctx, cfg, rng)
	headlines := initializeNews(ctx, cfg)
	scorer, builder := engine.New(rng)

	sc := scanner.New(
		scanner.ConfigFrom(cfg),
		prices,
		headlines,
		scorer,
		builder,
		synthetic,
		rng,
	)
	return scannerobs.Wrap(sc, m)
}

func logBanner(ctx context.Context, cfg *store.Config, addr string) {
	status := func(ok bool) string {
		if ok {
			return "configured"
		}
		return "missing"
	}

	logger.Info(ctx, "AI stock scanner started",
		"addr", addr,
		"version", cfg.Server.Version,
		"scan", "POST /api/scan",
		"stock", "GET /api/stock/{symbol}",
		"health", "GET /api/health",
		"metrics", "GET /metrics",
	)
	logger.Info(ctx, "Upstream status",
		"quote_provider", cfg.Quote.Provider,
		"quote_key", status(cfg.APIKey() != ""),
		"news_key", status(cfg.NewsAPIKey() != ""),
		"pacing", cfg.Scan.Pacing.String(),
		"tracing", trace.Enabled(),
		"detailed_logging", logger.IsDebugEnabled(),
	)
}
