package catalogstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carikost/carikost/internal/domain/catalog"
	"github.com/carikost/carikost/internal/domain/listing"
)

// PostgresStore persists the catalog in a kost_listings table, one JSONB row
// per listing with an explicit position so load order matches sync order.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs the relational adapter.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Load(ctx context.Context) ([]listing.Listing, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT payload
		FROM kost_listings
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("query catalog rows: %w", err)
	}
	defer rows.Close()

	items := []listing.Listing{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		var item listing.Listing
		if err := json.Unmarshal(payload, &item); err != nil {
			return nil, fmt.Errorf("decode catalog row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Save replaces the table contents in one transaction.
func (s *PostgresStore) Save(ctx context.Context, items []listing.Listing) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin catalog tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM kost_listings`); err != nil {
		return fmt.Errorf("clear catalog rows: %w", err)
	}

	for i, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode catalog row: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO kost_listings (listing_id, position, payload)
			VALUES ($1, $2, $3)
		`, item.ID, i, payload); err != nil {
			return fmt.Errorf("insert catalog row: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit catalog tx: %w", err)
	}
	return nil
}

var _ catalog.Store = (*PostgresStore)(nil)
