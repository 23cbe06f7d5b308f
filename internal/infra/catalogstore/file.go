// Package catalogstore provides the catalog.Store implementations: a JSON
// file for the default single-node setup, process memory for tests, MinIO
// for object storage and Postgres for relational deployments.
package catalogstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carikost/carikost/internal/domain/catalog"
	"github.com/carikost/carikost/internal/domain/listing"
)

// FileStore persists the catalog as one JSON document on disk.
type FileStore struct {
	path string
}

// NewFileStore constructs a store writing to path, e.g. db/kosan.json.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the whole catalog. A missing file means an empty catalog, not
// an error: the first sync creates it.
func (s *FileStore) Load(_ context.Context) ([]listing.Listing, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []listing.Listing{}, nil
		}
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var items []listing.Listing
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}
	if items == nil {
		items = []listing.Listing{}
	}
	return items, nil
}

// Save replaces the catalog wholesale.
func (s *FileStore) Save(_ context.Context, items []listing.Listing) error {
	if items == nil {
		items = []listing.Listing{}
	}
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog file: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}
	return nil
}

var _ catalog.Store = (*FileStore)(nil)
