package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"post_place_backend/internal/config"
	"post_place_backend/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 帖子图片的存储后端
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	GetURL(filename string) string
}

// StorageService 按配置选择 MinIO 或本地磁盘，MinIO 初始化失败时回退本地
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	if cfg.Storage.Type == "minio" {
		p, err := newMinioStorage(&cfg.Storage)
		if err == nil {
			return &StorageService{Provider: p}
		}
		logger.Log.Warn("MinIO 初始化失败，回退到本地存储", zap.Error(err))
	}
	return &StorageService{Provider: &localStorage{root: cfg.Storage.LocalPath}}
}

func (s *StorageService) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.Provider.Upload(ctx, filename, reader, size, contentType)
}

func (s *StorageService) Delete(ctx context.Context, filename string) error {
	return s.Provider.Delete(ctx, filename)
}

func (s *StorageService) GetURL(filename string) string {
	return s.Provider.GetURL(filename)
}

// localStorage 写本地磁盘，文件由 /uploads 静态路由对外提供
type localStorage struct {
	root string
}

func (l *localStorage) Upload(_ context.Context, filename string, reader io.Reader, _ int64, _ string) (string, error) {
	dst := filepath.Join(l.root, filename)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		os.Remove(dst)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return l.GetURL(filename), nil
}

func (l *localStorage) Delete(_ context.Context, filename string) error {
	return os.Remove(filepath.Join(l.root, filename))
}

func (l *localStorage) GetURL(filename string) string {
	return "/uploads/" + filename
}

// minioStorage 对象存储后端
type minioStorage struct {
	client *minio.Client
	bucket string
}

func newMinioStorage(cfg *config.StorageConfig) (*minioStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioStorage{client: client, bucket: cfg.MinioBucket}, nil
}

func (m *minioStorage) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio put %s: %w", filename, err)
	}
	return m.GetURL(filename), nil
}

func (m *minioStorage) Delete(ctx context.Context, filename string) error {
	return m.client.RemoveObject(ctx, m.bucket, filename, minio.RemoveObjectOptions{})
}

func (m *minioStorage) GetURL(filename string) string {
	return "/" + m.bucket + "/" + filename
}
