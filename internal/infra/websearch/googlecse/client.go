// Package googlecse fetches web results from the Google Custom Search API.
// The sync pipeline uses it to supplement marketplace listings with organic
// search hits.
package googlecse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carikost/carikost/internal/domain/catalog"
)

const (
	defaultBaseURL = "https://www.googleapis.com/customsearch/v1"
	requestTimeout = 15 * time.Second
	resultCount    = 10
)

// Cache stores raw search items keyed by query.
type Cache interface {
	Get(ctx context.Context, key string) ([]catalog.WebResult, bool)
	Set(ctx context.Context, key string, items []catalog.WebResult)
}

// Client calls the Custom Search JSON API. Without both the API key and the
// engine ID it reports no results instead of failing.
type Client struct {
	apiKey     string
	engineID   string
	baseURL    string
	cache      Cache
	logger     *slog.Logger
	httpClient *http.Client
}

// NewClient constructs a search client.
func NewClient(apiKey, engineID, baseURL string, cache Cache, logger *slog.Logger) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:   strings.TrimSpace(apiKey),
		engineID: strings.TrimSpace(engineID),
		baseURL:  strings.TrimRight(baseURL, "/"),
		cache:    cache,
		logger:   logger.With("component", "googlecse"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Search runs the query and returns title, snippet and link per hit.
func (c *Client) Search(ctx context.Context, query string) ([]catalog.WebResult, error) {
	if c.apiKey == "" || c.engineID == "" {
		c.logger.Debug("custom search credentials not configured, skipping")
		return nil, nil
	}

	cacheKey := "google-" + query
	if c.cache != nil {
		if items, ok := c.cache.Get(ctx, cacheKey); ok {
			return items, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	params := url.Values{
		"q":   {query},
		"key": {c.apiKey},
		"cx":  {c.engineID},
		"num": {fmt.Sprint(resultCount)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("custom search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("custom search error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	var raw struct {
		Items []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			Link    string `json:"link"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	items := make([]catalog.WebResult, 0, len(raw.Items))
	for _, item := range raw.Items {
		items = append(items, catalog.WebResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}

	if c.cache != nil {
		c.cache.Set(ctx, cacheKey, items)
	}
	return items, nil
}
