package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carikost/carikost/internal/domain/catalog"
	"github.com/carikost/carikost/internal/domain/chat"
	"github.com/carikost/carikost/internal/domain/listing"
	"github.com/carikost/carikost/internal/infra/config"
	apperrors "github.com/carikost/carikost/pkg/errors"
)

type stubSearch struct {
	searchFn func(ctx context.Context, filters listing.Filters) ([]listing.Result, error)
}

func (s *stubSearch) Search(ctx context.Context, filters listing.Filters) ([]listing.Result, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, filters)
	}
	return nil, nil
}

type stubChat struct {
	respondFn func(ctx context.Context, message string) (chat.Response, error)
}

func (s *stubChat) Respond(ctx context.Context, message string) (chat.Response, error) {
	if s.respondFn != nil {
		return s.respondFn(ctx, message)
	}
	return chat.Response{}, nil
}

type stubCatalog struct {
	listingsFn func(ctx context.Context) ([]listing.Listing, error)
	syncFn     func(ctx context.Context, keyword string) (catalog.SyncReport, error)
}

func (s *stubCatalog) Listings(ctx context.Context) ([]listing.Listing, error) {
	if s.listingsFn != nil {
		return s.listingsFn(ctx)
	}
	return []listing.Listing{}, nil
}

func (s *stubCatalog) Sync(ctx context.Context, keyword string) (catalog.SyncReport, error) {
	if s.syncFn != nil {
		return s.syncFn(ctx, keyword)
	}
	return catalog.SyncReport{}, nil
}

func TestRouter_SearchSuccess(t *testing.T) {
	svc := &stubSearch{
		searchFn: func(_ context.Context, filters listing.Filters) ([]listing.Result, error) {
			require.Equal(t, "Bandung", filters.Location)
			require.Equal(t, 1_500_000, filters.MaxBudget)
			require.Equal(t, []string{"AC", "WiFi"}, filters.Facilities)
			require.Equal(t, listing.CategoryFemale, filters.Category)
			return []listing.Result{
				{Listing: listing.Listing{ID: "m1", Name: "Kos Dago", Price: 900_000}, Origin: listing.OriginSourced},
			}, nil
		},
	}

	rec := performGet("/api/v1/search?location=Bandung&maxBudget=1500000&facilities=AC,WiFi&type=Putri", newRouterUnderTest(t, svc, nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []listing.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "m1", got[0].ID)
	require.Equal(t, listing.OriginSourced, got[0].Origin)
}

func TestRouter_SearchDefaultsBudget(t *testing.T) {
	svc := &stubSearch{
		searchFn: func(_ context.Context, filters listing.Filters) ([]listing.Result, error) {
			require.Equal(t, defaultMaxBudget, filters.MaxBudget)
			require.Equal(t, listing.CategoryAny, filters.Category)
			return []listing.Result{}, nil
		},
	}

	rec := performGet("/api/v1/search?location=Bandung", newRouterUnderTest(t, svc, nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SearchBadBudget(t *testing.T) {
	rec := performGet("/api/v1/search?maxBudget=banyak", newRouterUnderTest(t, &stubSearch{}, nil, nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_SearchFailure(t *testing.T) {
	svc := &stubSearch{
		searchFn: func(_ context.Context, _ listing.Filters) ([]listing.Result, error) {
			return nil, apperrors.Wrap("provider_error", "everything is on fire", nil)
		},
	}

	rec := performGet("/api/v1/search?location=Bandung", newRouterUnderTest(t, svc, nil, nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "search_failed", errBody["error"]["code"])
}

func TestRouter_ChatSearchResponse(t *testing.T) {
	filters := &listing.Filters{Location: "Bandung", MaxBudget: 1_200_000, Category: listing.CategoryFemale}
	svc := &stubChat{
		respondFn: func(_ context.Context, message string) (chat.Response, error) {
			require.Equal(t, "cariin kos putri bandung", message)
			return chat.Response{
				Results: []listing.Result{{Listing: listing.Listing{ID: "m1"}, Origin: listing.OriginSourced}},
				Filters: filters,
			}, nil
		},
	}

	rec := performPost("/api/v1/chat", `{"message":"cariin kos putri bandung"}`, newRouterUnderTest(t, nil, svc, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got chat.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Empty(t, got.Type)
	require.Len(t, got.Results, 1)
	require.Equal(t, "Bandung", got.Filters.Location)
}

func TestRouter_ChatMissingMessage(t *testing.T) {
	svc := &stubChat{
		respondFn: func(_ context.Context, message string) (chat.Response, error) {
			return chat.Response{}, apperrors.Wrap("invalid_input", "message is required", nil)
		},
	}

	rec := performPost("/api/v1/chat", `{}`, newRouterUnderTest(t, nil, svc, nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "message is required")
}

func TestRouter_ListingsSuccess(t *testing.T) {
	svc := &stubCatalog{
		listingsFn: func(_ context.Context) ([]listing.Listing, error) {
			return []listing.Listing{{ID: "sync-1", Name: "Kos Update dari Sync"}}, nil
		},
	}

	rec := performGet("/api/v1/listings", newRouterUnderTest(t, nil, nil, svc))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []listing.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "sync-1", got[0].ID)
}

func TestRouter_ListingsFailure(t *testing.T) {
	svc := &stubCatalog{
		listingsFn: func(_ context.Context) ([]listing.Listing, error) {
			return nil, apperrors.Wrap("catalog_unavailable", "failed to load kost catalog", nil)
		},
	}

	rec := performGet("/api/v1/listings", newRouterUnderTest(t, nil, nil, svc))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "catalog_failed", errBody["error"]["code"])
}

func TestRouter_SyncSuccess(t *testing.T) {
	svc := &stubCatalog{
		syncFn: func(_ context.Context, keyword string) (catalog.SyncReport, error) {
			require.Equal(t, "kos Bandung 2 juta", keyword)
			return catalog.SyncReport{Total: 12, Added: 3, Sources: []string{"mamikos.com"}}, nil
		},
	}

	rec := performPost("/api/v1/sync", `{"keyword":"kos Bandung 2 juta"}`, newRouterUnderTest(t, nil, nil, svc))
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, true, got["success"])
	require.Equal(t, float64(3), got["added"])
	require.Equal(t, float64(12), got["total"])
}

func TestRouter_SyncWithoutBody(t *testing.T) {
	svc := &stubCatalog{
		syncFn: func(_ context.Context, keyword string) (catalog.SyncReport, error) {
			require.Empty(t, keyword)
			return catalog.SyncReport{Total: 1, Added: 1}, nil
		},
	}

	rec := performPost("/api/v1/sync", "", newRouterUnderTest(t, nil, nil, svc))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	server := newRouterWithConfig(t, &stubSearch{}, nil, nil, config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 60,
		Burst:             2,
	})

	for i := 0; i < 2; i++ {
		rec := performGet("/api/v1/search?location=Bandung", server)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := performGet("/api/v1/search?location=Bandung", server)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "rate_limit_exceeded", errBody["error"]["code"])
}

func performGet(path string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func performPost(path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, searchSvc *stubSearch, chatSvc *stubChat, catalogSvc *stubCatalog) *http.Server {
	t.Helper()
	return newRouterWithConfig(t, searchSvc, chatSvc, catalogSvc, config.RateLimitConfig{})
}

func newRouterWithConfig(t *testing.T, searchSvc *stubSearch, chatSvc *stubChat, catalogSvc *stubCatalog, rl config.RateLimitConfig) *http.Server {
	t.Helper()
	if searchSvc == nil {
		searchSvc = &stubSearch{}
	}
	if chatSvc == nil {
		chatSvc = &stubChat{}
	}
	if catalogSvc == nil {
		catalogSvc = &stubCatalog{}
	}
	handler := NewHandler(searchSvc, chatSvc, catalogSvc, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			RateLimit:    rl,
		},
	}
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
