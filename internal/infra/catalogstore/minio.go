package catalogstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/carikost/carikost/internal/domain/catalog"
	"github.com/carikost/carikost/internal/domain/listing"
)

const defaultObjectKey = "kosan.json"

// MinioStore persists the catalog as a JSON object in any S3-compatible
// bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
	object string
	logger *slog.Logger
}

// NewMinioStore constructs the object-store adapter.
func NewMinioStore(endpoint, accessKey, secretKey, bucket, region, object string, logger *slog.Logger) (*MinioStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if object == "" {
		object = defaultObjectKey
	}
	useSSL := strings.HasPrefix(strings.ToLower(endpoint), "https")
	client, err := minio.New(sanitizeEndpoint(endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	return &MinioStore{
		client: client,
		bucket: bucket,
		object: object,
		logger: logger.With("component", "catalogstore.minio"),
	}, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	return nil
}

// Load reads the catalog object. A missing object means an empty catalog.
func (s *MinioStore) Load(ctx context.Context) ([]listing.Listing, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("read catalog object: %w", err)
	}
	defer obj.Close()

	payload, err := io.ReadAll(obj)
	if err != nil {
		code := minio.ToErrorResponse(err).Code
		if code == "NoSuchKey" || code == "NoSuchBucket" {
			return []listing.Listing{}, nil
		}
		return nil, fmt.Errorf("read catalog object: %w", err)
	}

	var items []listing.Listing
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode catalog object: %w", err)
	}
	if items == nil {
		items = []listing.Listing{}
	}
	return items, nil
}

// Save replaces the catalog object wholesale.
func (s *MinioStore) Save(ctx context.Context, items []listing.Listing) error {
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure catalog bucket: %w", err)
	}
	if items == nil {
		items = []listing.Listing{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode catalog object: %w", err)
	}
	_, err = s.client.PutObject(ctx, s.bucket, s.object, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType:      "application/json",
		DisableMultipart: len(payload) < 5*1024*1024,
	})
	if err != nil {
		return fmt.Errorf("write catalog object: %w", err)
	}
	return nil
}

func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.IndexByte(raw, '/'); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}

var _ catalog.Store = (*MinioStore)(nil)
