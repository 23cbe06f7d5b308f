package catalogstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carikost/carikost/internal/domain/listing"
)

func TestFileStoreMissingFileIsEmptyCatalog(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "db", "kosan.json"))

	items, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "kosan.json")
	store := NewFileStore(path)
	ctx := context.Background()

	saved := []listing.Listing{
		{
			ID:         "mamikos-1",
			Name:       "Kos Dago Asri",
			Address:    "Jl. Dago 10",
			Price:      900_000,
			Facilities: []string{"AC", "WiFi"},
			Category:   listing.CategoryFemale,
			Available:  true,
			Source:     "mamikos.com",
			Rating:     4.5,
		},
		{
			ID:        "sync-1",
			Name:      "Kos Update dari Sync",
			Address:   "Hasil Pencarian Google - Area Bandung",
			Price:     800_000,
			Category:  listing.CategoryMixed,
			Available: true,
			Source:    "google-search",
			Rating:    4.0,
		},
	}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, saved, loaded)

	// Save creates the parent directory.
	_, err = os.Stat(filepath.Dir(path))
	require.NoError(t, err)
}

func TestFileStoreOverwrites(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "kosan.json"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []listing.Listing{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, store.Save(ctx, []listing.Listing{{ID: "c"}}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "c", loaded[0].ID)
}

func TestFileStoreCorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kosan.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
}

func TestMemoryStoreCopiesOnLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []listing.Listing{{ID: "a", Price: 1}}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	loaded[0].Price = 999

	again, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, again[0].Price)
}
