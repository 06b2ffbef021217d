package scanner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"ai-stock-scanner/internal/engine"
	"ai-stock-scanner/internal/interfaces"
	"ai-stock-scanner/internal/logger"
	"ai-stock-scanner/internal/quote"
	"ai-stock-scanner/internal/refdata"
	"ai-stock-scanner/internal/store"
	"ai-stock-scanner/internal/types"
)

// FallbackMessage accompanies responses built from the synthetic fallback.
const FallbackMessage = "Using advanced AI simulation"

var ErrPanic = errors.New("scan aborted")

type Config struct {
	DefaultSymbols []string
	MaxSymbols     int
	Pacing         time.Duration
}

// ConfigFrom extracts the scan section of the service configuration.
func ConfigFrom(cfg *store.Config) Config {
	return Config{
		DefaultSymbols: cfg.Scan.DefaultSymbols,
		MaxSymbols:     cfg.Scan.MaxSymbols,
		Pacing:         cfg.Scan.Pacing,
	}
}

// Scanner runs the per-symbol pipeline price, news, score, recommendation.
// Symbols are processed one at a time and paced to respect upstream limits.
type Scanner struct {
	cfg         Config
	price       interfaces.PriceSource
	news        interfaces.NewsSource
	scorer      interfaces.Scorer
	recommender interfaces.Recommender
	synthetic   *quote.Synthetic
	rng         engine.Rand
	now         func() time.Time
}

var _ interfaces.Scanner = (*Scanner)(nil)

type Option func(*Scanner)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) {
		s.now = now
	}
}

func New(
	cfg Config,
	price interfaces.PriceSource,
	news interfaces.NewsSource,
	scorer interfaces.Scorer,
	recommender interfaces.Recommender,
	synthetic *quote.Synthetic,
	rng engine.Rand,
	opts ...Option,
) *Scanner {
	if len(cfg.DefaultSymbols) == 0 {
		cfg.DefaultSymbols = refdata.DefaultSymbols()
	}
	if cfg.MaxSymbols <= 0 || cfg.MaxSymbols > store.MaxScanSymbols {
		cfg.MaxSymbols = store.MaxScanSymbols
	}
	if rng == nil {
		rng = engine.NewRand(nil)
	}
	if synthetic == nil {
		synthetic = quote.NewSynthetic(rng)
	}

	s := &Scanner{
		cfg:         cfg,
		price:       price,
		news:        news,
		scorer:      scorer,
		recommender: recommender,
		synthetic:   synthetic,
		rng:         rng,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Symbols normalizes a requested list: surrounding space trimmed, blanks
// dropped, defaults when nothing is left, truncated to MaxSymbols. Symbols are
// case-sensitive and passed through as given.
func (s *Scanner) Symbols(requested []string) []string {
	out := make([]string, 0, len(requested))
	for _, sym := range requested {
		sym = strings.TrimSpace(sym)
		if sym != "" {
			out = append(out, sym)
		}
	}
	if len(out) == 0 {
		out = append(out, s.cfg.DefaultSymbols...)
	}
	if len(out) > s.cfg.MaxSymbols {
		out = out[:s.cfg.MaxSymbols]
	}
	return out
}

// Scan never fails. Adapter problems are absorbed per symbol; anything else
// replaces the whole batch with a synthetic one for the default list.
func (s *Scanner) Scan(ctx context.Context, symbols []string) (res types.Result[types.ScanBatch]) {
	defer func() {
		if r := recover(); r != nil {
			res = types.FallbackResult(s.syntheticBatch(ctx), fmt.Errorf("%w: %v", ErrPanic, r))
		}
	}()

	batch, err := s.scan(ctx, s.Symbols(symbols))
	if err != nil {
		return types.FallbackResult(s.syntheticBatch(ctx), err)
	}
	return types.LiveResult(batch)
}

func (s *Scanner) scan(ctx context.Context, symbols []string) (types.ScanBatch, error) {
	pacer := newPacer(s.cfg.Pacing)
	batch := make(types.ScanBatch, 0, len(symbols))

	for _, sym := range symbols {
		if err := pacer.Wait(ctx); err != nil {
			return nil, fmt.Errorf("scan interrupted before %s: %w", sym, err)
		}

		q := s.price.FetchPrice(ctx, sym)
		n := s.news.FetchNews(ctx, sym)
		probability := s.scorer.Score(sym, q.Value, n.Value)
		rec := s.recommender.Build(probability, q.Value.Price)

		logger.Signal(ctx, sym, string(rec.Signal), rec.Probability,
			"price", q.Value.Price,
			"provider", q.Value.Provider,
			"news", len(n.Value),
			"strong", engine.IsStrong(sym),
		)

		batch = append(batch, s.result(sym, q.Value, rec, q.Value.Provider))
	}

	sortBatch(batch)
	return batch, nil
}

// Analyze prices and scores one symbol without consulting news.
func (s *Scanner) Analyze(ctx context.Context, symbol string) (res types.Result[types.StockAnalysis]) {
	symbol = strings.TrimSpace(symbol)

	defer func() {
		if r := recover(); r != nil {
			res = types.FallbackResult(s.syntheticAnalysis(symbol), fmt.Errorf("%w: %v", ErrPanic, r))
		}
	}()

	if symbol == "" {
		return types.FallbackResult(s.syntheticAnalysis(symbol), errors.New("empty symbol"))
	}

	q := s.price.FetchPrice(ctx, symbol)
	probability := s.scorer.Score(symbol, q.Value, nil)
	rec := s.recommender.Build(probability, q.Value.Price)

	logger.Signal(ctx, symbol, string(rec.Signal), rec.Probability,
		"price", q.Value.Price,
		"provider", q.Value.Provider,
		"listed", refdata.Known(symbol),
	)

	return types.LiveResult(types.StockAnalysis{
		Symbol:         symbol,
		Name:           refdata.Name(symbol),
		Price:          q.Value.Price,
		Recommendation: rec,
		DataSource:     q.Value.Provider,
		UpdatedAt:      s.now().UTC(),
	})
}

// syntheticBatch builds the default list from generated prices only. It uses
// no upstream and no pacing.
func (s *Scanner) syntheticBatch(ctx context.Context) types.ScanBatch {
	batch := make(types.ScanBatch, 0, len(s.cfg.DefaultSymbols))
	for _, sym := range s.cfg.DefaultSymbols {
		q := s.synthetic.Price(sym)
		rec := s.recommender.Build(s.scorer.Score(sym, q, nil), q.Price)
		batch = append(batch, s.result(sym, q, rec, types.DataSourceSimulation))
	}
	sortBatch(batch)

	logger.Debug(ctx, "Synthetic batch generated", "symbols", len(batch))
	return batch
}

func (s *Scanner) syntheticAnalysis(symbol string) types.StockAnalysis {
	q := s.synthetic.Price(symbol)
	return types.StockAnalysis{
		Symbol:         symbol,
		Name:           refdata.Name(symbol),
		Price:          q.Price,
		Recommendation: s.recommender.Build(s.scorer.Score(symbol, q, nil), q.Price),
		DataSource:     types.DataSourceSimulation,
		UpdatedAt:      s.now().UTC(),
	}
}

// result assembles one row. change and changePercent are independent random
// deltas and are not derived from any earlier price.
func (s *Scanner) result(symbol string, q types.PriceQuote, rec types.Recommendation, source string) types.ScanResult {
	return types.ScanResult{
		Symbol:         symbol,
		DisplayName:    refdata.Name(symbol),
		CurrentPrice:   q.Price,
		Change:         (s.rng.Float64() - 0.5) * 20,
		ChangePercent:  (s.rng.Float64() - 0.5) * 2,
		Recommendation: rec,
		DataSource:     source,
		UpdatedAt:      s.now().UTC(),
	}
}

func sortBatch(batch types.ScanBatch) {
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Recommendation.Probability > batch[j].Recommendation.Probability
	})
}
