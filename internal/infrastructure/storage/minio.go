package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"bookstore/internal/config"
)

// MinIOStorage handles file uploads to MinIO
type MinIOStorage struct {
	client *minio.Client
	bucket string
	secure bool
}

// NewMinIOStorage connects to MinIO and creates the bucket when it is missing.
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("[STORAGE] bucket created")
	}

	return &MinIOStorage{
		client: client,
		bucket: cfg.Bucket,
		secure: cfg.UseSSL,
	}, nil
}

// Upload stores data under key and returns its public URL.
// metadata is attached as user metadata on the object.
func (s *MinIOStorage) Upload(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) (string, error) {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType:  contentType,
			UserMetadata: metadata,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	return ObjectURL(s.secure, s.client.EndpointURL().Host, s.bucket, key), nil
}

// Delete removes a single object.
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ObjectURL formats the path-style URL of an object, e.g.
// http://localhost:9000/bookstore/covers/abc.jpg
func ObjectURL(secure bool, host, bucket, key string) string {
	u := url.URL{Scheme: "http", Host: host, Path: "/" + bucket + "/" + key}
	if secure {
		u.Scheme = "https"
	}
	return u.String()
}
