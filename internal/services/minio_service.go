package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"movie-catalog/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// ArchiveStorage keeps exported catalog snapshots and hands out time-limited
// download links for them.
type ArchiveStorage interface {
	Put(ctx context.Context, objectName, contentType string, body io.Reader, size int64) error
	PresignedGetURL(ctx context.Context, objectName string) (string, time.Duration, error)
}

type MinIOService struct {
	client *minio.Client
	bucket string
	region string
	expiry time.Duration
	logger *logrus.Logger
}

func NewMinIOService(cfg *config.MinIOConfig, logger *logrus.Logger) (*MinIOService, error) {
	endpoint := strings.TrimPrefix(cfg.Endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("MinIO client initialized successfully")

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	service := &MinIOService{
		client: client,
		bucket: cfg.BucketName,
		region: cfg.Region,
		expiry: expiry,
		logger: logger,
	}

	if err := service.ensureBucket(context.Background()); err != nil {
		logger.WithError(err).Warn("Failed to configure export bucket, but continuing...")
	}

	return service, nil
}

// ensureBucket creates the export bucket when missing. Exports stay private;
// downloads go through presigned URLs.
func (s *MinIOService) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	region := s.region
	if region == "" {
		region = "us-east-1"
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	return nil
}

func (s *MinIOService) Put(ctx context.Context, objectName, contentType string, body io.Reader, size int64) error {
	info, err := s.client.PutObject(ctx, s.bucket, objectName, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.WithError(err).WithField("object", objectName).Error("Failed to upload export")
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	s.logger.WithFields(logrus.Fields{
		"object": objectName,
		"size":   info.Size,
	}).Info("Export uploaded")
	return nil
}

func (s *MinIOService) PresignedGetURL(ctx context.Context, objectName string) (string, time.Duration, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", objectName))

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, s.expiry, params)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return "", 0, fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return presigned.String(), s.expiry, nil
}
