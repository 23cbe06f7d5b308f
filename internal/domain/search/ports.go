package search

import (
	"context"

	"github.com/carikost/carikost/internal/domain/listing"
	"github.com/carikost/carikost/internal/infra/llm/gemini"
)

// Provider is one external marketplace integration. Implementations own their
// credential check, cache lookup and request timeout; an error return is
// degraded to an empty result set at the aggregator boundary and never
// surfaces to callers.
type Provider interface {
	Name() string
	Search(ctx context.Context, filters listing.Filters) ([]listing.Listing, error)
}

// Cache is the process-wide listing cache consulted by every adapter.
// Implementations own the freshness window; a stale or missing key is a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]listing.Listing, bool)
	Set(ctx context.Context, key string, items []listing.Listing)
}

// GenClient is the generative-text collaborator used by the fallback path.
type GenClient interface {
	GenerateContent(ctx context.Context, prompt string) (gemini.Result, error)
}
