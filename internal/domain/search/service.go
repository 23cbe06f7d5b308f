package search

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/carikost/carikost/internal/domain/listing"
	apperrors "github.com/carikost/carikost/pkg/errors"
)

// Service exposes the aggregated kost search.
type Service interface {
	Search(ctx context.Context, filters listing.Filters) ([]listing.Result, error)
}

// Config tunes the aggregation behavior.
type Config struct {
	// ResultLimit caps the merged result list; zero means no cap.
	ResultLimit int
}

type service struct {
	cfg       Config
	providers []Provider
	gen       GenClient
	logger    *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService wires up the search domain. Provider order fixes the first-seen
// winner when deduplicating.
func NewService(cfg Config, providers []Provider, gen GenClient, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		providers: providers,
		gen:       gen,
		logger:    logger.With("component", "search.service"),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (s *service) Search(ctx context.Context, filters listing.Filters) ([]listing.Result, error) {
	if filters.MaxBudget <= 0 {
		return nil, apperrors.Wrap("invalid_input", "maxBudget must be positive", nil)
	}

	// Fixed fan-out, join-all barrier: every adapter settles before merging,
	// and one adapter's failure or latency never cancels its siblings.
	groups := make([][]listing.Listing, len(s.providers))
	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			items, err := p.Search(ctx, filters)
			if err != nil {
				s.logger.Warn("provider search failed", "provider", p.Name(), "error", err)
				return
			}
			groups[i] = items
		}(i, p)
	}
	wg.Wait()

	merged := Merge(groups, s.cfg.ResultLimit)
	if len(merged) > 0 {
		out := make([]listing.Result, 0, len(merged))
		for _, item := range merged {
			out = append(out, listing.Result{Listing: item, Origin: listing.OriginSourced})
		}
		return out, nil
	}

	return s.fallback(ctx, filters), nil
}

// Merge concatenates provider result groups in provider order, drops
// duplicates by (address, price) keeping the first occurrence, and sorts by
// price ascending with rating descending as the tie-break. A missing rating
// sorts as zero. limit caps the output when positive.
func Merge(groups [][]listing.Listing, limit int) []listing.Listing {
	var merged []listing.Listing
	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, item := range group {
			key := item.DedupKey()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, item)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Price != merged[j].Price {
			return merged[i].Price < merged[j].Price
		}
		return merged[i].Rating > merged[j].Rating
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
