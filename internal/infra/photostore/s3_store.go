package photostore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
)

// S3Store keeps photos in any S3-compatible object store.
type S3Store struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewS3Store constructs the storage adapter.
func NewS3Store(endpoint, accessKey, secretKey, bucket, region string, logger *slog.Logger) (*S3Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cleanEndpoint := sanitizeEndpoint(endpoint)
	useSSL := strings.HasPrefix(strings.ToLower(endpoint), "https")
	client, err := minio.New(cleanEndpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Store{client: client, bucket: bucket, logger: logger.With("component", "photostore.s3")}, nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
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

// Put uploads a photo.
func (s *S3Store) Put(ctx context.Context, key string, data []byte, mimeType string) (wardrobe.StoredPhoto, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return wardrobe.StoredPhoto{}, err
	}
	reader := bytes.NewReader(data)
	info, err := s.client.PutObject(ctx, s.bucket, key, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType:      mimeType,
		DisableMultipart: len(data) < 5*1024*1024, // small uploads as single part
	})
	if err != nil {
		return wardrobe.StoredPhoto{}, err
	}
	return wardrobe.StoredPhoto{
		Key:      key,
		Size:     info.Size,
		MimeType: mimeType,
	}, nil
}

// Get fetches a photo for streaming along with its content type.
func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	// Ensure the object exists before returning the reader.
	stat, statErr := obj.Stat()
	if statErr != nil {
		return nil, "", statErr
	}
	return obj, stat.ContentType, nil
}

// Delete removes a photo.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

var _ wardrobe.PhotoStore = (*S3Store)(nil)

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if strings.Contains(raw, "/") {
		parts := strings.Split(raw, "/")
		raw = parts[0]
	}
	return raw
}
