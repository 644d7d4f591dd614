package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"travel-booking-platform/internal/config"
)

// S3StorageService implements StorageService for S3-compatible buckets
type S3StorageService struct {
	client   *s3.Client
	uploader *manager.Uploader
	config   config.S3Config
	logger   *zap.Logger
}

func NewS3StorageService(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3StorageService, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("S3 credentials not configured")
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3StorageService{
		client:   client,
		uploader: manager.NewUploader(client),
		config:   cfg,
		logger:   logger,
	}, nil
}

func (r *S3StorageService) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error) {
	key = strings.TrimPrefix(key, "/")

	input := &s3.PutObjectInput{
		Bucket:       aws.String(r.config.BucketName),
		Key:          aws.String(key),
		Body:         reader,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	result, err := r.uploader.Upload(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	r.logger.Debug("uploaded to S3", zap.String("key", key), zap.String("location", result.Location))
	return r.GetURL(key), nil
}

func (r *S3StorageService) Delete(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.config.BucketName),
		Key:    aws.String(strings.TrimPrefix(key, "/")),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// GetURL prefers the configured public URL, then the endpoint, then the AWS virtual-host form
func (r *S3StorageService) GetURL(key string) string {
	key = strings.TrimPrefix(key, "/")

	if r.config.PublicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(r.config.PublicURL, "/"), key)
	}
	if r.config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(r.config.Endpoint, "/"), r.config.BucketName, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", r.config.BucketName, key)
}

func (r *S3StorageService) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.config.BucketName),
		Key:    aws.String(strings.TrimPrefix(key, "/")),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if object exists: %w", err)
	}
	return true, nil
}

// HealthCheck verifies that the bucket is reachable
func (r *S3StorageService) HealthCheck(ctx context.Context) error {
	_, err := r.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(r.config.BucketName),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("S3 health check failed: %w", err)
	}
	return nil
}

// NewStorageService returns S3 storage with a local fallback when S3 is configured and reachable,
// otherwise local storage only
func NewStorageService(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) StorageService {
	local := NewLocalStorageService(cfg.UploadDir, cfg.UploadURL, logger)
	if !cfg.S3.Configured() {
		logger.Info("photo storage: local", zap.String("dir", cfg.UploadDir))
		return local
	}

	remote, err := NewS3StorageService(ctx, cfg.S3, logger)
	if err != nil {
		logger.Warn("S3 storage unavailable, using local storage only", zap.Error(err))
		return local
	}
	if err := remote.HealthCheck(ctx); err != nil {
		logger.Warn("S3 health check failed, using local storage only", zap.Error(err))
		return local
	}

	logger.Info("photo storage: S3 with local fallback", zap.String("bucket", cfg.S3.BucketName))
	return NewStorageServiceWithFallback(remote, local, logger)
}
