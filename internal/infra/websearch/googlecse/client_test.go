package googlecse

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carikost/carikost/internal/domain/catalog"
)

type stubCache struct {
	entries map[string][]catalog.WebResult
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string][]catalog.WebResult{}}
}

func (c *stubCache) Get(_ context.Context, key string) ([]catalog.WebResult, bool) {
	items, ok := c.entries[key]
	return items, ok
}

func (c *stubCache) Set(_ context.Context, key string, items []catalog.WebResult) {
	c.entries[key] = items
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestSearchParsesItems(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		q := r.URL.Query()
		require.Equal(t, "kos murah Bandung", q.Get("q"))
		require.Equal(t, "api-key", q.Get("key"))
		require.Equal(t, "engine-id", q.Get("cx"))
		require.Equal(t, "10", q.Get("num"))
		_, _ = w.Write([]byte(`{"items":[
			{"title":"Kost Putri Dago","snippet":"Kos AC wifi harga 1 juta","link":"https://example.com/1"},
			{"title":"Kost Antapani","snippet":"dekat Telkom","link":"https://example.com/2"}
		]}`))
	}))
	defer server.Close()

	cache := newStubCache()
	client := NewClient("api-key", "engine-id", server.URL, cache, testLogger())

	items, err := client.Search(context.Background(), "kos murah Bandung")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Kost Putri Dago", items[0].Title)
	require.Equal(t, "https://example.com/2", items[1].Link)

	// Repeated query is answered from cache.
	items, err = client.Search(context.Background(), "kos murah Bandung")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 1, calls)
}

func TestSearchSkipsWithoutCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected without credentials")
	}))
	defer server.Close()

	client := NewClient("", "engine-id", server.URL, newStubCache(), testLogger())
	items, err := client.Search(context.Background(), "kos murah")
	require.NoError(t, err)
	require.Empty(t, items)

	client = NewClient("api-key", "", server.URL, newStubCache(), testLogger())
	items, err = client.Search(context.Background(), "kos murah")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("api-key", "engine-id", server.URL, newStubCache(), testLogger())
	_, err := client.Search(context.Background(), "kos murah")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=403")
}

func TestSearchNoItemsField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient("api-key", "engine-id", server.URL, newStubCache(), testLogger())
	items, err := client.Search(context.Background(), "kos murah")
	require.NoError(t, err)
	require.Empty(t, items)
}
