package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"product-catalog-backend/internal/config"
)

// UploadResult là kết quả upload một ảnh lên object store
// ExternalID là object key, dùng để address ảnh khi xóa
type UploadResult struct {
	ExternalID string
	URL        string
}

// MinIOStorage handles image uploads to MinIO
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIOStorage khởi tạo MinIO client
// Credentials được inject qua config struct, không đọc từ global state
func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL, // false cho local, true cho production
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Kiểm tra bucket có tồn tại không, nếu không thì tạo mới
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStorage{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Upload đẩy một ảnh lên MinIO dưới opaque key và trả về external id + URL
// Key format: products/<uuid><ext> (vd: products/550e8400-....jpg)
func (s *MinIOStorage) Upload(ctx context.Context, data []byte, contentType string) (UploadResult, error) {
	key := fmt.Sprintf("products/%s%s", uuid.NewString(), extensionFor(contentType))

	reader := bytes.NewReader(data)
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		reader,
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to upload to minio: %w", err)
	}

	// URL truy cập file, bucket có quyền public-read
	// Format: http://localhost:9000/product-catalog/products/<uuid>.jpg
	scheme := "http"
	if s.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, key)

	return UploadResult{ExternalID: key, URL: url}, nil
}

// Delete xóa một ảnh khỏi MinIO theo external id
func (s *MinIOStorage) Delete(ctx context.Context, externalID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, externalID, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", externalID, err)
	}
	return nil
}

// RemoveAll xóa nhiều objects cùng lúc (rollback/cleanup)
// Mỗi object xóa độc lập: một object fail không chặn các object khác
// Trả về danh sách external ids xóa thất bại
func (s *MinIOStorage) RemoveAll(ctx context.Context, externalIDs []string) []string {
	if len(externalIDs) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(externalIDs))
	go func() {
		defer close(objectsCh)
		for _, id := range externalIDs {
			objectsCh <- minio.ObjectInfo{Key: id}
		}
	}()

	var failed []string
	errorCh := s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{})
	for rmErr := range errorCh {
		if rmErr.Err != nil {
			log.Error().
				Err(rmErr.Err).
				Str("external_id", rmErr.ObjectName).
				Msg("Failed to remove object from minio")
			failed = append(failed, rmErr.ObjectName)
		}
	}

	return failed
}

// extensionFor map content type sang file extension cho object key
func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}

	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}

	return ""
}
