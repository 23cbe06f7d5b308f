package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/carikost/carikost/internal/domain/catalog"
	"github.com/carikost/carikost/internal/domain/listing"
	"github.com/carikost/carikost/internal/domain/search"
	"github.com/carikost/carikost/internal/infra/catalogstore"
	"github.com/carikost/carikost/internal/infra/config"
	"github.com/carikost/carikost/internal/infra/llm/gemini"
	"github.com/carikost/carikost/internal/infra/providers"
	"github.com/carikost/carikost/internal/infra/scheduler"
	"github.com/carikost/carikost/internal/infra/searchcache"
	"github.com/carikost/carikost/internal/infra/websearch/googlecse"
)

func provideSearchConfig(cfg *config.Config) search.Config {
	return search.Config{ResultLimit: cfg.Search.ResultLimit}
}

func provideGeminiClient(cfg *config.Config) *gemini.Client {
	return gemini.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.Temperature)
}

func provideSchedulerConfig(cfg *config.Config) scheduler.Config {
	return scheduler.Config{
		Enabled:  cfg.Sync.Enabled,
		Schedule: cfg.Sync.Schedule,
		Keyword:  cfg.Sync.Keyword,
	}
}

// provideValkeyClient returns a ready client, or nil when the shared cache is
// disabled or unreachable. Cache providers fall back to the in-process cache.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) valkey.Client {
	if !cfg.Search.Valkey.Enabled {
		return nil
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return nil
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return nil
	}
	logger.Info("valkey cache enabled", "addr", cfg.Search.Valkey.Addr)
	return client
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Search.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Search.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Search.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideListingCache(cfg *config.Config, client valkey.Client, logger *slog.Logger) search.Cache {
	if client != nil {
		return searchcache.NewValkey[[]listing.Listing](client, "search", cfg.Search.CacheTTL, logger)
	}
	return searchcache.NewMemory[[]listing.Listing](cfg.Search.CacheTTL, cfg.Search.CacheCapacity)
}

func provideWebResultCache(cfg *config.Config, client valkey.Client, logger *slog.Logger) googlecse.Cache {
	if client != nil {
		return searchcache.NewValkey[[]catalog.WebResult](client, "websearch", cfg.Search.CacheTTL, logger)
	}
	return searchcache.NewMemory[[]catalog.WebResult](cfg.Search.CacheTTL, cfg.Search.CacheCapacity)
}

// provideProviders lists every marketplace adapter. Order fixes the
// first-seen winner when merged results collide on address and price.
func provideProviders(cfg *config.Config, cache search.Cache, logger *slog.Logger) []search.Provider {
	return []search.Provider{
		providers.NewMamikos(providerConfig(cfg.Providers.Mamikos), cache, logger),
		providers.NewOLX(providerConfig(cfg.Providers.OLX), cache, logger),
		providers.NewRumah123(providerConfig(cfg.Providers.Rumah123), cache, logger),
		providers.NewTravelio(providerConfig(cfg.Providers.Travelio), cache, logger),
		providers.NewMamitroom(providerConfig(cfg.Providers.Mamitroom), cache, logger),
	}
}

func providerConfig(pc config.ProviderConfig) providers.Config {
	return providers.Config{BaseURL: pc.BaseURL, APIKey: pc.APIKey}
}

func provideWebSearcher(cfg *config.Config, cache googlecse.Cache, logger *slog.Logger) catalog.WebSearcher {
	return googlecse.NewClient(cfg.WebSearch.APIKey, cfg.WebSearch.EngineID, cfg.WebSearch.BaseURL, cache, logger)
}

func provideCatalogStore(cfg *config.Config, logger *slog.Logger) (catalog.Store, error) {
	switch cfg.Catalog.Backend {
	case "memory":
		return catalogstore.NewMemoryStore(), nil
	case "minio":
		m := cfg.Catalog.Minio
		return catalogstore.NewMinioStore(m.Endpoint, m.AccessKey, m.SecretKey, m.Bucket, m.Region, m.Object, logger)
	case "postgres":
		return providePostgresStore(cfg)
	default:
		return catalogstore.NewFileStore(cfg.Catalog.FilePath), nil
	}
}

func providePostgresStore(cfg *config.Config) (catalog.Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Catalog.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.Catalog.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Catalog.Postgres.MaxConns
	}
	if cfg.Catalog.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Catalog.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("initialize postgres pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return catalogstore.NewPostgresStore(pool), nil
}
