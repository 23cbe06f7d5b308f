package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/carikost/carikost/internal/domain/listing"
	"github.com/carikost/carikost/internal/domain/search"
	"github.com/carikost/carikost/internal/domain/snippet"
	apperrors "github.com/carikost/carikost/pkg/errors"
	"github.com/carikost/carikost/pkg/util"
)

const defaultKeyword = "kos murah Bandung"

// Service exposes the catalog read and sync operations.
type Service interface {
	Listings(ctx context.Context) ([]listing.Listing, error)
	Sync(ctx context.Context, keyword string) (SyncReport, error)
}

type service struct {
	providers []search.Provider
	web       WebSearcher
	store     Store
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires the sync pipeline. web may be nil when no search engine is
// configured.
func NewService(providers []search.Provider, web WebSearcher, store Store, logger *slog.Logger) Service {
	return &service{
		providers: providers,
		web:       web,
		store:     store,
		logger:    logger.With("component", "catalog.service"),
		now:       util.NowUTC,
	}
}

func (s *service) Listings(ctx context.Context) ([]listing.Listing, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, apperrors.Wrap("catalog_unavailable", "failed to load kost catalog", err)
	}
	if items == nil {
		items = []listing.Listing{}
	}
	return items, nil
}

func (s *service) Sync(ctx context.Context, keyword string) (SyncReport, error) {
	if strings.TrimSpace(keyword) == "" {
		keyword = defaultKeyword
	}
	filters := ParseKeyword(keyword)
	s.logger.Info("starting catalog sync", "keyword", keyword, "location", filters.Location, "maxBudget", filters.MaxBudget)

	groups := make([][]listing.Listing, len(s.providers)+1)
	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Add(1)
		go func(i int, p search.Provider) {
			defer wg.Done()
			items, err := p.Search(ctx, filters)
			if err != nil {
				s.logger.Warn("provider sync failed", "provider", p.Name(), "error", err)
				return
			}
			groups[i] = items
		}(i, p)
	}
	wg.Wait()

	groups[len(s.providers)] = s.webListings(ctx, keyword, filters)

	merged := search.Merge(groups, 0)
	if len(merged) == 0 {
		merged = []listing.Listing{s.placeholder(filters)}
	}

	previous := 0
	if existing, err := s.store.Load(ctx); err == nil {
		previous = len(existing)
	} else {
		s.logger.Warn("could not load previous catalog, added count assumes empty", "error", err)
	}

	if err := s.store.Save(ctx, merged); err != nil {
		return SyncReport{}, apperrors.Wrap("catalog_unavailable", "failed to persist kost catalog", err)
	}

	report := SyncReport{
		Keyword:  keyword,
		Filters:  filters,
		Total:    len(merged),
		Added:    max(0, len(merged)-previous),
		Sources:  sources(merged),
		SyncedAt: s.now(),
	}
	report.MinPrice, report.MaxPrice = priceRange(merged)
	s.logger.Info("catalog sync complete", "total", report.Total, "sources", report.Sources)
	return report, nil
}

// webListings turns organic search hits into listings through the snippet
// extractors. A missing or failing engine degrades to no supplement.
func (s *service) webListings(ctx context.Context, keyword string, filters listing.Filters) []listing.Listing {
	if s.web == nil {
		return nil
	}
	hits, err := s.web.Search(ctx, keyword)
	if err != nil {
		s.logger.Warn("web search failed", "error", err)
		return nil
	}
	now := s.now()
	out := make([]listing.Listing, 0, len(hits))
	for i, hit := range hits {
		source := hit.Link
		if source == "" {
			source = "google-search"
		}
		description := hit.Snippet
		if description == "" {
			description = "Kos dari pencarian Google"
		}
		out = append(out, listing.Listing{
			ID:          fmt.Sprintf("google-%d-%d", now.UnixMilli(), i),
			Name:        snippet.Title(hit.Title),
			Address:     snippet.Address(hit.Snippet),
			Price:       snippet.Price(hit.Snippet, filters.MaxBudget),
			Facilities:  snippet.Facilities(hit.Snippet),
			Category:    snippet.Category(hit.Snippet),
			Available:   true,
			Source:      source,
			Rating:      4.0,
			Description: description,
			WhatsApp:    snippet.Contact(hit.Snippet),
			Images:      []string{},
		})
	}
	return out
}

// placeholder keeps the catalog non-empty when neither the providers nor the
// search engine are configured.
func (s *service) placeholder(filters listing.Filters) listing.Listing {
	distance := 2.5
	return listing.Listing{
		ID:         fmt.Sprintf("sync-%d", s.now().UnixMilli()),
		Name:       "Kos Update dari Sync",
		Address:    "Hasil Pencarian Google - Area " + filters.Location,
		Price:      listing.ClampPrice(800_000, filters.MaxBudget),
		DistanceKm: &distance,
		Facilities: []string{"WiFi", "Parkir Motor"},
		Category:   listing.CategoryMixed,
		Available:  true,
		Source:     "google-search",
		Rating:     4.0,
	}
}

func sources(items []listing.Listing) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, item := range items {
		if _, ok := seen[item.Source]; ok {
			continue
		}
		seen[item.Source] = struct{}{}
		out = append(out, item.Source)
	}
	return out
}

func priceRange(items []listing.Listing) (int, int) {
	if len(items) == 0 {
		return 0, 0
	}
	lo, hi := items[0].Price, items[0].Price
	for _, item := range items[1:] {
		if item.Price < lo {
			lo = item.Price
		}
		if item.Price > hi {
			hi = item.Price
		}
	}
	return lo, hi
}
