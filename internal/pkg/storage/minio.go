package storage

import (
	"Townsquare/internal/api/config"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrMediaNotFound mediaID 指向的对象已不存在
var ErrMediaNotFound = errors.New("媒体文件不存在")

type MinioStorage struct {
	client *minio.Client
	cfg    config.MinIOConfig
}

// NewMinioStorage 初始化 MinIO 客户端并确认桶可达
func NewMinioStorage(cfg config.MinIOConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioStorage{client: client, cfg: cfg}, nil
}

func (s *MinioStorage) Save(ctx context.Context, reader io.Reader, size int64, contentType, ext string) (string, error) {
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	info, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return info.Key, nil
}

func (s *MinioStorage) Resolve(ctx context.Context, mediaID string) (string, error) {
	_, err := s.client.StatObject(ctx, s.cfg.Bucket, mediaID, minio.StatObjectOptions{})
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == minio.NoSuchKey {
			return "", ErrMediaNotFound
		}
		return "", fmt.Errorf("failed to stat object: %w", err)
	}

	protocol := "http"
	if s.cfg.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.cfg.PublicEndpoint, s.cfg.Bucket, mediaID), nil
}

func (s *MinioStorage) Delete(ctx context.Context, mediaID string) error {
	err := s.client.RemoveObject(ctx, s.cfg.Bucket, mediaID, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
