package searchcache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/carikost/carikost/internal/domain/listing"
	"github.com/carikost/carikost/internal/domain/search"
)

// Valkey is a shared TTL cache backed by a Valkey-compatible database.
// Transport and codec failures are logged and reported as cache misses so a
// broken cache never takes down the search path.
type Valkey[T any] struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewValkey constructs a cache under the given key prefix.
func NewValkey[T any](client valkey.Client, prefix string, ttl time.Duration, logger *slog.Logger) *Valkey[T] {
	if prefix == "" {
		prefix = "cache"
	}
	return &Valkey[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With("component", "searchcache.valkey"),
	}
}

func (v *Valkey[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T
	resp := v.client.Do(ctx, v.client.B().Get().Key(v.entryKey(key)).Build())
	payload, err := resp.ToString()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			v.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return zero, false
	}
	var value T
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		v.logger.Warn("cache payload corrupt", "key", key, "error", err)
		return zero, false
	}
	return value, true
}

func (v *Valkey[T]) Set(ctx context.Context, key string, value T) {
	payload, err := json.Marshal(value)
	if err != nil {
		v.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	ttl := v.ttl
	if ttl < time.Second {
		ttl = time.Second
	}
	cmd := v.client.B().Set().Key(v.entryKey(key)).Value(string(payload)).Ex(ttl).Build()
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		v.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (v *Valkey[T]) entryKey(key string) string {
	return v.prefix + ":" + key
}

var _ search.Cache = (*Valkey[[]listing.Listing])(nil)
