package searchcache

import (
	"context"
	"sync"
	"time"

	"github.com/carikost/carikost/internal/domain/listing"
	"github.com/carikost/carikost/internal/domain/search"
)

type entry[T any] struct {
	value      T
	capturedAt time.Time
}

// Memory is an in-process TTL cache keyed by string. It backs both the
// listing cache and the web-search cache, so the payload type is generic.
type Memory[T any] struct {
	ttl      time.Duration
	capacity int
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]entry[T]
}

// NewMemory constructs a cache holding at most capacity entries, each fresh
// for ttl. capacity <= 0 means unbounded.
func NewMemory[T any](ttl time.Duration, capacity int) *Memory[T] {
	return &Memory[T]{
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
		entries:  make(map[string]entry[T]),
	}
}

// Get returns the cached value when it is still within the freshness window.
// Stale entries are removed on the way out.
func (m *Memory[T]) Get(_ context.Context, key string) (T, bool) {
	var zero T
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return zero, false
	}
	if m.now().Sub(e.capturedAt) >= m.ttl {
		delete(m.entries, key)
		return zero, false
	}
	return e.value, true
}

// Set stores the value, evicting the oldest entry when at capacity.
func (m *Memory[T]) Set(_ context.Context, key string, value T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[key]; !exists && m.capacity > 0 && len(m.entries) >= m.capacity {
		m.evictOldestLocked()
	}
	m.entries[key] = entry[T]{value: value, capturedAt: m.now()}
}

func (m *Memory[T]) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for key, e := range m.entries {
		if !found || e.capturedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.capturedAt
			found = true
		}
	}
	if found {
		delete(m.entries, oldestKey)
	}
}

var _ search.Cache = (*Memory[[]listing.Listing])(nil)
