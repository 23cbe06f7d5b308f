package searchcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carikost/carikost/internal/domain/listing"
)

func TestMemoryHitAndMiss(t *testing.T) {
	cache := NewMemory[[]listing.Listing](5*time.Minute, 16)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "absent")
	require.False(t, ok)

	items := []listing.Listing{{ID: "m1", Address: "Jl. Dago 1", Price: 900_000}}
	cache.Set(ctx, "mamikos-abc", items)

	got, ok := cache.Get(ctx, "mamikos-abc")
	require.True(t, ok)
	require.Equal(t, items, got)
}

func TestMemoryExpiry(t *testing.T) {
	cache := NewMemory[[]listing.Listing](5*time.Minute, 16)
	current := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }
	ctx := context.Background()

	cache.Set(ctx, "key", []listing.Listing{{ID: "a"}})

	current = current.Add(4 * time.Minute)
	_, ok := cache.Get(ctx, "key")
	require.True(t, ok)

	current = current.Add(time.Minute)
	_, ok = cache.Get(ctx, "key")
	require.False(t, ok)

	// The stale entry is gone even if the clock rolls back.
	current = current.Add(-2 * time.Minute)
	_, ok = cache.Get(ctx, "key")
	require.False(t, ok)
}

func TestMemoryEvictsOldestAtCapacity(t *testing.T) {
	cache := NewMemory[string](time.Hour, 2)
	current := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }
	ctx := context.Background()

	cache.Set(ctx, "first", "1")
	current = current.Add(time.Second)
	cache.Set(ctx, "second", "2")
	current = current.Add(time.Second)
	cache.Set(ctx, "third", "3")

	_, ok := cache.Get(ctx, "first")
	require.False(t, ok)
	got, ok := cache.Get(ctx, "second")
	require.True(t, ok)
	require.Equal(t, "2", got)
	_, ok = cache.Get(ctx, "third")
	require.True(t, ok)
}

func TestMemoryOverwriteDoesNotEvict(t *testing.T) {
	cache := NewMemory[string](time.Hour, 2)
	ctx := context.Background()

	cache.Set(ctx, "a", "1")
	cache.Set(ctx, "b", "2")
	cache.Set(ctx, "a", "updated")

	got, ok := cache.Get(ctx, "a")
	require.True(t, ok)
	require.Equal(t, "updated", got)
	_, ok = cache.Get(ctx, "b")
	require.True(t, ok)
}
