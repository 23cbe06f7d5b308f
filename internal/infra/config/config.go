package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	Search    SearchConfig    `yaml:"search"`
	Providers ProvidersConfig `yaml:"providers"`
	WebSearch WebSearchConfig `yaml:"webSearch"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Sync      SyncConfig      `yaml:"sync"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LLMConfig contains Gemini settings.
type LLMConfig struct {
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// SearchConfig tunes the aggregation pipeline and its cache.
type SearchConfig struct {
	ResultLimit   int           `yaml:"resultLimit"`
	CacheTTL      time.Duration `yaml:"cacheTtl"`
	CacheCapacity int           `yaml:"cacheCapacity"`
	Valkey        ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig selects the shared cache backend.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// ProviderConfig holds one marketplace connection.
type ProviderConfig struct {
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`
}

// ProvidersConfig lists every marketplace integration.
type ProvidersConfig struct {
	Mamikos   ProviderConfig `yaml:"mamikos"`
	OLX       ProviderConfig `yaml:"olx"`
	Rumah123  ProviderConfig `yaml:"rumah123"`
	Travelio  ProviderConfig `yaml:"travelio"`
	Mamitroom ProviderConfig `yaml:"mamitroom"`
}

// WebSearchConfig holds the Google Custom Search credentials.
type WebSearchConfig struct {
	APIKey   string `yaml:"apiKey"`
	EngineID string `yaml:"engineId"`
	BaseURL  string `yaml:"baseUrl"`
}

// CatalogConfig selects and configures the catalog store.
type CatalogConfig struct {
	Backend  string         `yaml:"backend"` // file | memory | minio | postgres
	FilePath string         `yaml:"filePath"`
	Minio    MinioConfig    `yaml:"minio"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MinioConfig contains object-store connection settings.
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Object    string `yaml:"object"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SyncConfig drives the periodic catalog sync.
type SyncConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
	Keyword  string `yaml:"keyword"`
}

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	// GEMINI_API_KEY is the documented variable; LLM_API_KEY stays supported.
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	} else if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("SEARCH_RESULT_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Search.ResultLimit = parsed
		}
	}
	if v := os.Getenv("SEARCH_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Search.CacheTTL = parsed
		}
	}
	if v := os.Getenv("SEARCH_CACHE_CAPACITY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Search.CacheCapacity = parsed
		}
	}
	if v := os.Getenv("SEARCH_VALKEY_ENABLED"); v != "" {
		cfg.Search.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SEARCH_VALKEY_ADDR"); v != "" {
		cfg.Search.Valkey.Addr = v
	}
	if v := os.Getenv("MAMIKOS_API_KEY"); v != "" {
		cfg.Providers.Mamikos.APIKey = v
	}
	if v := os.Getenv("OLX_API_KEY"); v != "" {
		cfg.Providers.OLX.APIKey = v
	}
	if v := os.Getenv("RUMAH123_API_KEY"); v != "" {
		cfg.Providers.Rumah123.APIKey = v
	}
	if v := os.Getenv("TRAVELIO_API_KEY"); v != "" {
		cfg.Providers.Travelio.APIKey = v
	}
	if v := os.Getenv("MAMITROOM_API_KEY"); v != "" {
		cfg.Providers.Mamitroom.APIKey = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.WebSearch.APIKey = v
	}
	if v := os.Getenv("CUSTOM_SEARCH_ENGINE_ID"); v != "" {
		cfg.WebSearch.EngineID = v
	}
	if v := os.Getenv("CATALOG_BACKEND"); v != "" {
		cfg.Catalog.Backend = v
	}
	if v := os.Getenv("CATALOG_FILE_PATH"); v != "" {
		cfg.Catalog.FilePath = v
	}
	if v := os.Getenv("CATALOG_MINIO_ENDPOINT"); v != "" {
		cfg.Catalog.Minio.Endpoint = v
	}
	if v := os.Getenv("CATALOG_MINIO_ACCESS_KEY"); v != "" {
		cfg.Catalog.Minio.AccessKey = v
	}
	if v := os.Getenv("CATALOG_MINIO_SECRET_KEY"); v != "" {
		cfg.Catalog.Minio.SecretKey = v
	}
	if v := os.Getenv("CATALOG_MINIO_BUCKET"); v != "" {
		cfg.Catalog.Minio.Bucket = v
	}
	if v := os.Getenv("CATALOG_MINIO_REGION"); v != "" {
		cfg.Catalog.Minio.Region = v
	}
	if v := os.Getenv("CATALOG_POSTGRES_DSN"); v != "" {
		cfg.Catalog.Postgres.DSN = v
	}
	if v := os.Getenv("SYNC_ENABLED"); v != "" {
		cfg.Sync.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SYNC_SCHEDULE"); v != "" {
		cfg.Sync.Schedule = v
	}
	if v := os.Getenv("SYNC_KEYWORD"); v != "" {
		cfg.Sync.Keyword = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		LLM: LLMConfig{
			Model:       "gemini-2.0-flash",
			Temperature: 0.7,
		},
		Search: SearchConfig{
			ResultLimit:   20,
			CacheTTL:      5 * time.Minute,
			CacheCapacity: 256,
		},
		Providers: ProvidersConfig{
			Mamikos:   ProviderConfig{BaseURL: "https://api.mamikos.com/v1"},
			OLX:       ProviderConfig{BaseURL: "https://api.olx.co.id/v1"},
			Rumah123:  ProviderConfig{BaseURL: "https://api.rumah123.com/v1"},
			Travelio:  ProviderConfig{BaseURL: "https://api.travelio.com/v1"},
			Mamitroom: ProviderConfig{BaseURL: "https://api.mamitroom.com/v1"},
		},
		Catalog: CatalogConfig{
			Backend:  "file",
			FilePath: "db/kosan.json",
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Sync: SyncConfig{
			Enabled:  false,
			Schedule: "@every 6h",
			Keyword:  "kos murah Bandung",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.Search.ResultLimit <= 0 {
		return errors.New("search.resultLimit must be positive")
	}
	if c.Search.CacheTTL <= 0 {
		return errors.New("search.cacheTtl must be positive")
	}
	if c.Search.CacheCapacity < 0 {
		return errors.New("search.cacheCapacity cannot be negative")
	}
	if c.Search.Valkey.Enabled && strings.TrimSpace(c.Search.Valkey.Addr) == "" {
		return errors.New("search.valkey.addr cannot be empty when valkey cache is enabled")
	}
	switch c.Catalog.Backend {
	case "file":
		if strings.TrimSpace(c.Catalog.FilePath) == "" {
			return errors.New("catalog.filePath cannot be empty for the file backend")
		}
	case "memory":
	case "minio":
		if strings.TrimSpace(c.Catalog.Minio.Endpoint) == "" || strings.TrimSpace(c.Catalog.Minio.Bucket) == "" {
			return errors.New("catalog.minio.endpoint and catalog.minio.bucket are required for the minio backend")
		}
	case "postgres":
		if strings.TrimSpace(c.Catalog.Postgres.DSN) == "" {
			return errors.New("catalog.postgres.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("catalog.backend %q is not one of file, memory, minio, postgres", c.Catalog.Backend)
	}
	if c.Sync.Enabled && strings.TrimSpace(c.Sync.Schedule) == "" {
		return errors.New("sync.schedule cannot be empty when sync is enabled")
	}
	return nil
}
