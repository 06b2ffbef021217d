package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"ai-stock-scanner/internal/logger"
	"ai-stock-scanner/internal/types"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Scraper reads an RSS search feed (Google News by default) when the news API
// has nothing for a symbol.
type Scraper struct {
	feedURL     string
	timeout     time.Duration
	maxArticles int
}

func NewScraper(feedURL string, timeout time.Duration) *Scraper {
	return &Scraper{
		feedURL:     feedURL,
		timeout:     timeout,
		maxArticles: 10,
	}
}

// Search returns at most maxArticles feed items matching "<symbol> stock".
func (s *Scraper) Search(ctx context.Context, symbol string) ([]types.NewsItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// the feed only gets what is left of the caller's deadline
	timeout := s.timeout
	if dl, ok := ctx.Deadline(); ok {
		remaining := time.Until(dl)
		if remaining <= 0 {
			return nil, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	items := []types.NewsItem{}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(timeout)

	c.OnXML("//item", func(e *colly.XMLElement) {
		if len(items) >= s.maxArticles {
			return
		}

		title := strings.TrimSpace(e.ChildText("title"))
		if title == "" {
			return
		}

		items = append(items, types.NewsItem{
			ID:          strings.TrimSpace(e.ChildText("guid")),
			Title:       title,
			Link:        strings.TrimSpace(e.ChildText("link")),
			Source:      strings.TrimSpace(e.ChildText("source")),
			PublishedAt: strings.TrimSpace(e.ChildText("pubDate")),
		})
	})

	var scrapeErr error
	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = err
		logger.Debug(ctx, "RSS scrape failed", "symbol", symbol, "status", r.StatusCode)
	})

	q := url.Values{
		"q":  {symbol + " stock"},
		"hl": {"en-IN"},
		"gl": {"IN"},
	}
	if err := c.Visit(s.feedURL + "?" + q.Encode()); err != nil {
		return nil, fmt.Errorf("failed to scrape news feed: %w", err)
	}
	c.Wait()

	if scrapeErr != nil {
		return nil, fmt.Errorf("failed to scrape news feed: %w", scrapeErr)
	}

	logger.Debug(ctx, "RSS scrape completed", "symbol", symbol, "articles", len(items))
	return items, nil
}
