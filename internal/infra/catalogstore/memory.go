package catalogstore

import (
	"context"
	"sync"

	"github.com/carikost/carikost/internal/domain/catalog"
	"github.com/carikost/carikost/internal/domain/listing"
)

// MemoryStore holds the catalog in process memory for tests and dev runs.
type MemoryStore struct {
	mu    sync.RWMutex
	items []listing.Listing
}

// NewMemoryStore constructs an empty in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: []listing.Listing{}}
}

func (s *MemoryStore) Load(_ context.Context) ([]listing.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]listing.Listing, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, items []listing.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]listing.Listing, len(items))
	copy(s.items, items)
	return nil
}

var _ catalog.Store = (*MemoryStore)(nil)
