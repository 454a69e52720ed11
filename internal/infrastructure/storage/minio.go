package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/warf-hq/warf-backend/pkg/config"
)

// MinIOClient wraps MinIO operations for face reference images and task
// solution files
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucket creates the bucket when missing. Face images stay private;
// access always goes through the API, never through a public URL.
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// UploadFaceImage stores the biometric reference image of a user and returns
// its object key
func (m *MinIOClient) UploadFaceImage(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("faces/%s%s", userID, extensionFor(contentType))
	if err := m.upload(ctx, key, data, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// UploadSolutionFile stores a task solution file and returns its object key
func (m *MinIOClient) UploadSolutionFile(ctx context.Context, taskID uuid.UUID, filename string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("solutions/%s/%s", taskID, path.Base(filename))
	if err := m.upload(ctx, key, data, contentType); err != nil {
		return "", err
	}
	return key, nil
}

func (m *MinIOClient) upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// Download fetches an object by key
func (m *MinIOClient) Download(ctx context.Context, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Delete removes an object by key
func (m *MinIOClient) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// PresignedURL returns a time-limited download URL for an object
func (m *MinIOClient) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return u.String(), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
