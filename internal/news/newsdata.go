package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"ai-stock-scanner/internal/api"
	"ai-stock-scanner/internal/types"
)

// NewsData queries the newsdata.io latest-news endpoint.
type NewsData struct {
	client   *api.Client
	apiKey   string
	country  string
	language string
}

func NewNewsData(baseURL, apiKey, country, language string, timeout time.Duration) *NewsData {
	return &NewsData{
		client: api.NewClient(
			api.WithBaseURL(baseURL),
			api.WithTimeout(timeout),
			api.WithLogging(true),
		),
		apiKey:   apiKey,
		country:  country,
		language: language,
	}
}

type newsDataResponse struct {
	Status  string          `json:"status"`
	Results json.RawMessage `json:"results"`
}

type newsDataArticle struct {
	ArticleID   string `json:"article_id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	SourceID    string `json:"source_id"`
	PubDate     string `json:"pubDate"`
}

// on error the API returns results as an object with a message
type newsDataError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (n *NewsData) Latest(ctx context.Context, symbol string) ([]types.NewsItem, error) {
	resp, err := n.client.GET(ctx, "/latest", url.Values{
		"apikey":   {n.apiKey},
		"q":        {symbol},
		"country":  {n.country},
		"language": {n.language},
	})
	if err != nil {
		return nil, fmt.Errorf("newsdata %s: %w", symbol, err)
	}

	var body newsDataResponse
	if err := resp.ParseJSON(&body); err != nil {
		return nil, fmt.Errorf("newsdata %s: %w", symbol, err)
	}
	if body.Status != "success" {
		var apiErr newsDataError
		_ = json.Unmarshal(body.Results, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = "status " + body.Status
		}
		return nil, fmt.Errorf("newsdata %s: %w", symbol, errors.New(apiErr.Message))
	}

	var articles []newsDataArticle
	if len(body.Results) > 0 && string(body.Results) != "null" {
		if err := json.Unmarshal(body.Results, &articles); err != nil {
			return nil, fmt.Errorf("newsdata %s: failed to decode results: %w", symbol, err)
		}
	}

	items := make([]types.NewsItem, 0, len(articles))
	for _, a := range articles {
		if a.Title == "" {
			continue
		}
		items = append(items, types.NewsItem{
			ID:          a.ArticleID,
			Title:       a.Title,
			Link:        a.Link,
			Description: a.Description,
			Source:      a.SourceID,
			PublishedAt: a.PubDate,
		})
	}
	return items, nil
}
