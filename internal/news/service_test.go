package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-stock-scanner/internal/store"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>TCS stock</title>
<item><title>TCS wins large deal</title><link>https://example.com/a</link><guid>a</guid><pubDate>Mon, 19 Oct 2026 09:00:00 GMT</pubDate><source url="https://example.com">Example</source></item>
<item><title>IT stocks rally</title><link>https://example.com/b</link><guid>b</guid></item>
</channel></rss>`

func newsDataServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "in", r.URL.Query().Get("country"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func rssServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TCS stock", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		w.Write([]byte(rssFeed))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchNewsFromAPI(t *testing.T) {
	srv := newsDataServer(t, `{"status":"success","totalResults":2,"results":[
		{"article_id":"1","title":"Reliance Q2 results","link":"https://x/1","description":"d","source_id":"et","pubDate":"2026-10-18 10:00:00"},
		{"article_id":"2","title":"","link":"https://x/2"}]}`, http.StatusOK)

	a := NewAdapter(NewNewsData(srv.URL, "key", "in", "en", time.Second), nil, true, time.Second)
	res := a.FetchNews(context.Background(), "RELIANCE")

	require.False(t, res.Fallback)
	require.Len(t, res.Value, 1)
	assert.Equal(t, "Reliance Q2 results", res.Value[0].Title)
	assert.Equal(t, "et", res.Value[0].Source)
	assert.Equal(t, "2026-10-18 10:00:00", res.Value[0].PublishedAt)
}

func TestFetchNewsNeverFails(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"server error", `oops`, http.StatusInternalServerError},
		{"api error", `{"status":"error","results":{"message":"API key invalid","code":"Unauthorized"}}`, http.StatusOK},
		{"garbage", `not json`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newsDataServer(t, tt.body, tt.status)
			a := NewAdapter(NewNewsData(srv.URL, "key", "in", "en", time.Second), nil, true, time.Second)

			res := a.FetchNews(context.Background(), "TCS")
			assert.True(t, res.Fallback)
			assert.Error(t, res.Cause)
			assert.NotNil(t, res.Value)
			assert.Empty(t, res.Value)
		})
	}
}

func TestFetchNewsAPIErrorMessage(t *testing.T) {
	srv := newsDataServer(t, `{"status":"error","results":{"message":"API key invalid"}}`, http.StatusOK)
	n := NewNewsData(srv.URL, "key", "in", "en", time.Second)

	_, err := n.Latest(context.Background(), "TCS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key invalid")
}

func TestFetchNewsDisabled(t *testing.T) {
	a := NewAdapter(nil, nil, false, time.Second)
	res := a.FetchNews(context.Background(), "TCS")

	assert.True(t, res.Fallback)
	assert.ErrorIs(t, res.Cause, ErrDisabled)
	assert.Empty(t, res.Value)
	assert.False(t, a.Enabled())
}

func TestFetchNewsWithoutKey(t *testing.T) {
	a := NewAdapter(nil, nil, true, time.Second)
	res := a.FetchNews(context.Background(), "TCS")

	assert.True(t, res.Fallback)
	assert.ErrorIs(t, res.Cause, ErrNoAPIKey)
	assert.Empty(t, res.Value)
}

func TestFetchNewsFallsBackToFeed(t *testing.T) {
	feed := rssServer(t)
	a := NewAdapter(nil, NewScraper(feed.URL, time.Second), true, time.Second)

	res := a.FetchNews(context.Background(), "TCS")
	require.False(t, res.Fallback)
	require.Len(t, res.Value, 2)
	assert.Equal(t, "TCS wins large deal", res.Value[0].Title)
	assert.Equal(t, "https://example.com/a", res.Value[0].Link)
	assert.Equal(t, "Example", res.Value[0].Source)
}

func TestFetchNewsEmptyAPIUsesFeed(t *testing.T) {
	api := newsDataServer(t, `{"status":"success","totalResults":0,"results":[]}`, http.StatusOK)
	feed := rssServer(t)

	a := NewAdapter(NewNewsData(api.URL, "key", "in", "en", time.Second), NewScraper(feed.URL, time.Second), true, time.Second)
	res := a.FetchNews(context.Background(), "TCS")
	assert.False(t, res.Fallback)
	assert.Len(t, res.Value, 2)
}

func TestScraperUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := NewAdapter(nil, NewScraper(srv.URL, time.Second), true, time.Second)
	res := a.FetchNews(context.Background(), "TCS")
	assert.True(t, res.Fallback)
	assert.Empty(t, res.Value)
}

func TestFeedBoundByAdapterTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
			w.Write([]byte(rssFeed))
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	a := NewAdapter(nil, NewScraper(srv.URL, 3*time.Second), true, 150*time.Millisecond)
	start := time.Now()
	res := a.FetchNews(context.Background(), "TCS")

	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, res.Fallback)
	assert.Empty(t, res.Value)
}

func TestScraperExpiredDeadline(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Millisecond))
	defer cancel()

	_, err := NewScraper("http://127.0.0.1:1", time.Second).Search(ctx, "TCS")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewFromConfig(t *testing.T) {
	cfg := store.Defaults()
	t.Setenv("NEWSDATA_API_KEY", "")

	a := NewFromConfig(cfg)
	assert.Nil(t, a.api)
	assert.Nil(t, a.scraper)
	assert.True(t, a.Enabled())

	t.Setenv("NEWSDATA_API_KEY", "k")
	cfg.News.ScrapeFallback = true
	a = NewFromConfig(cfg)
	assert.NotNil(t, a.api)
	assert.NotNil(t, a.scraper)
}
