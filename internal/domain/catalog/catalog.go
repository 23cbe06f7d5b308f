// Package catalog owns the persisted listing set and the sync pipeline that
// refreshes it from the marketplace providers and web search.
package catalog

import (
	"context"
	"time"

	"github.com/carikost/carikost/internal/domain/listing"
)

// Store persists the catalog wholesale. Load returns an empty set when
// nothing has been synced yet.
type Store interface {
	Load(ctx context.Context) ([]listing.Listing, error)
	Save(ctx context.Context, items []listing.Listing) error
}

// WebResult is one organic search hit used to supplement provider data.
type WebResult struct {
	Title   string
	Snippet string
	Link    string
}

// WebSearcher runs a keyword query against a web search engine. An empty
// result with nil error means the engine is not configured.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]WebResult, error)
}

// SyncReport summarizes one completed sync run.
type SyncReport struct {
	Keyword  string          `json:"keyword"`
	Filters  listing.Filters `json:"filters"`
	Total    int             `json:"total"`
	Added    int             `json:"added"`
	Sources  []string        `json:"sources"`
	MinPrice int             `json:"minPrice,omitempty"`
	MaxPrice int             `json:"maxPrice,omitempty"`
	SyncedAt time.Time       `json:"syncedAt"`
}
