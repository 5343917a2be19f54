package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOConfig holds connection settings for an S3-compatible byte store.
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	BucketName      string `yaml:"bucket_name"`
	UseSSL          bool   `yaml:"use_ssl"`
}

// MinIOStorage stores bytes in an S3-compatible bucket using the same
// year/month key layout as the local backend.
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIOStorage initializes the MinIO client and creates the bucket if it
// doesn't exist.
func NewMinIOStorage(ctx context.Context, cfg *MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinIOStorage{client: client, bucket: cfg.BucketName}, nil
}

// Save uploads the bytes under <year>/<month>/<assigned-name>.
func (s *MinIOStorage) Save(ctx context.Context, originalName, mimeType string, r io.Reader, size int64) (*Object, error) {
	now := time.Now()
	basename := AssignBasename(originalName, now)
	key := path.Join(fmt.Sprintf("%d", now.Year()), fmt.Sprintf("%d", int(now.Month())), basename)

	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}

	return &Object{
		Basename:     basename,
		PhysicalPath: key,
		Size:         info.Size,
		MimeType:     mimeType,
	}, nil
}

// Remove deletes the object at physicalPath.
func (s *MinIOStorage) Remove(ctx context.Context, physicalPath string) error {
	err := s.client.RemoveObject(ctx, s.bucket, physicalPath, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}
