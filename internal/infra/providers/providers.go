// Package providers contains the marketplace adapters that normalize external
// listing APIs into the canonical listing model. Every adapter shares the
// same contract: skip silently when no API key is configured, consult the
// shared cache before going upstream, bound each request to a fixed timeout
// and clamp prices to the requested budget.
package providers

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

	"github.com/carikost/carikost/internal/domain/listing"
	"github.com/carikost/carikost/internal/domain/search"
)

const requestTimeout = 30 * time.Second

// Config holds the per-provider connection settings.
type Config struct {
	BaseURL string
	APIKey  string
}

type client struct {
	name       string
	cfg        Config
	cache      search.Cache
	logger     *slog.Logger
	httpClient *http.Client
}

func newClient(name string, cfg Config, cache search.Cache, logger *slog.Logger) client {
	return client{
		name:   name,
		cfg:    Config{BaseURL: strings.TrimRight(cfg.BaseURL, "/"), APIKey: cfg.APIKey},
		cache:  cache,
		logger: logger.With("provider", name),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (c *client) configured() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

// fetch runs the cache-then-upstream sequence shared by every adapter. The
// transform callback decodes the provider payload into canonical listings.
func (c *client) fetch(ctx context.Context, filters listing.Filters, path string, params url.Values, auth authStyle, transform func([]byte) ([]listing.Listing, error)) ([]listing.Listing, error) {
	if !c.configured() {
		c.logger.Debug("api key not configured, skipping")
		return nil, nil
	}

	key := filters.CacheKey(c.name)
	if c.cache != nil {
		if items, ok := c.cache.Get(ctx, key); ok {
			return items, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint := c.cfg.BaseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", c.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	switch auth {
	case authBearer:
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	case authAPIKeyHeader:
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%s request error: status=%d body=%s", c.name, resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", c.name, err)
	}

	items, err := transform(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", c.name, err)
	}

	if c.cache != nil {
		c.cache.Set(ctx, key, items)
	}
	return items, nil
}

type authStyle int

const (
	authBearer authStyle = iota
	authAPIKeyHeader
)

// upstreamListing is the loosely typed record most marketplaces return.
// Field presence varies per provider; the normalize helpers fill the gaps.
type upstreamListing struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Address     string      `json:"address"`
	Location    string      `json:"location"`
	Price       int         `json:"price"`
	Distance    *float64    `json:"distance"`
	Facilities  []string    `json:"facilities"`
	Type        string      `json:"type"`
	Available   *bool       `json:"available"`
	Sold        bool        `json:"sold"`
	Rating      float64     `json:"rating"`
	Images      []string    `json:"images"`
	Description string      `json:"description"`
	Latitude    *float64    `json:"latitude"`
	Longitude   *float64    `json:"longitude"`
	Contact     string      `json:"contact"`
	Phone       string      `json:"phone"`
	WhatsApp    string      `json:"whatsapp"`

	// OLX spells its contact fields differently.
	ContactPhone    string `json:"contact_phone"`
	ContactWhatsApp string `json:"contact_whatsapp"`
}

func (u upstreamListing) address() string {
	if u.Address != "" {
		return u.Address
	}
	if u.Location != "" {
		return u.Location
	}
	return "Alamat tidak tersedia"
}

func (u upstreamListing) price(maxBudget int) int {
	price := u.Price
	if price == 0 {
		price = 1_000_000
	}
	return listing.ClampPrice(price, maxBudget)
}

func (u upstreamListing) category() listing.Category {
	if strings.TrimSpace(u.Type) == "" {
		return listing.CategoryMixed
	}
	return listing.ParseCategory(u.Type)
}

func (u upstreamListing) rating() float64 {
	if u.Rating == 0 {
		return 4.0
	}
	return u.Rating
}

func (u upstreamListing) available() bool {
	return u.Available == nil || *u.Available
}

func (u upstreamListing) facilities() []string {
	if u.Facilities == nil {
		return []string{}
	}
	return u.Facilities
}

func (u upstreamListing) images() []string {
	if u.Images == nil {
		return []string{}
	}
	return u.Images
}

func (u upstreamListing) contact() string {
	if u.Contact != "" {
		return u.Contact
	}
	return u.Phone
}
