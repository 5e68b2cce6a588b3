// Package storage stores uploaded images in S3-compatible object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrMissingConfig is returned when endpoint, credentials or bucket are empty.
var ErrMissingConfig = errors.New("storage endpoint, credentials and bucket are required")

// Config holds the object storage connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// MinIO is an object store backed by minio-go.
type MinIO struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIO creates a client. It does not contact the server.
func NewMinIO(cfg Config) (*MinIO, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, ErrMissingConfig
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			DisableCompression:  true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	public := strings.TrimSuffix(cfg.PublicURL, "/")
	if public == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		public = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinIO{client: client, bucket: cfg.Bucket, publicURL: public}, nil
}

// EnsureBucket creates the bucket when it does not exist.
func (m *MinIO) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", m.bucket, err)
	}
	return nil
}

// Ping checks that the bucket is reachable.
func (m *MinIO) Ping(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", m.bucket)
	}
	return nil
}

// Put uploads an object and returns its public URL.
func (m *MinIO) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return m.URL(key), nil
}

// URL returns the public URL of key.
func (m *MinIO) URL(key string) string {
	return m.publicURL + "/" + strings.TrimPrefix(key, "/")
}
