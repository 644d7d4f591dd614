package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-booking-platform/internal/config"
)

func TestS3StorageService_GetURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.S3Config
		want string
	}{
		{
			name: "public url",
			cfg:  config.S3Config{BucketName: "photos", PublicURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/vacation-photo/1/a.jpg",
		},
		{
			name: "custom endpoint",
			cfg:  config.S3Config{BucketName: "photos", Endpoint: "http://localhost:9000"},
			want: "http://localhost:9000/photos/vacation-photo/1/a.jpg",
		},
		{
			name: "aws default",
			cfg:  config.S3Config{BucketName: "photos"},
			want: "https://photos.s3.amazonaws.com/vacation-photo/1/a.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &S3StorageService{config: tt.cfg}
			assert.Equal(t, tt.want, svc.GetURL("/vacation-photo/1/a.jpg"))
		})
	}
}

func TestNewS3StorageService_RequiresCredentials(t *testing.T) {
	_, err := NewS3StorageService(context.Background(), config.S3Config{BucketName: "photos"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewStorageService_LocalWhenS3Unconfigured(t *testing.T) {
	storage := NewStorageService(context.Background(), config.StorageConfig{
		UploadDir: t.TempDir(),
		UploadURL: "/uploads",
	}, zap.NewNop())

	_, ok := storage.(*LocalStorageService)
	require.True(t, ok)
}
