package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
)

// MockStorageService is a mock implementation of StorageService
type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error) {
	args := m.Called(ctx, key, reader, contentType, size)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockStorageService) GetURL(key string) string {
	return m.Called(key).String(0)
}

func (m *MockStorageService) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func createTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newSubmission(data []byte, filename string) *ContestSubmission {
	return &ContestSubmission{
		Name:        "Ann",
		Email:       "ann@example.com",
		Year:        2024,
		Month:       7,
		Filename:    filename,
		ContentType: "image/png",
		Size:        int64(len(data)),
		Photo:       bytes.NewReader(data),
	}
}

func TestContestService_Submit(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorageService(dir, "/uploads", zap.NewNop())
	svc := NewContestService(storage, repositories.NewMemoryContestRepository(), zap.NewNop())
	svc.now = func() time.Time { return time.Unix(0, 42) }

	data := createTestPNG(t, 400, 300)
	entry, err := svc.Submit(context.Background(), newSubmission(data, "my beach.png"))
	require.NoError(t, err)

	assert.Equal(t, "/uploads/vacation-photo/42/my-beach.png", entry.PhotoURL)
	assert.Equal(t, "/uploads/vacation-photo/42/thumb-my-beach.png", entry.ThumbnailURL)
	assert.Equal(t, models.VacationPhotoContest, entry.Contest)

	stored, err := os.ReadFile(filepath.Join(dir, "vacation-photo", "42", "my-beach.png"))
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	thumbFile, err := os.Open(filepath.Join(dir, "vacation-photo", "42", "thumb-my-beach.png"))
	require.NoError(t, err)
	defer thumbFile.Close()
	thumb, _, err := image.Decode(thumbFile)
	require.NoError(t, err)
	assert.Equal(t, ThumbnailWidth, thumb.Bounds().Dx())
	assert.Equal(t, 150, thumb.Bounds().Dy())

	entries, err := svc.Entries(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestContestService_Submit_Rejections(t *testing.T) {
	storage := new(MockStorageService)
	svc := NewContestService(storage, repositories.NewMemoryContestRepository(), zap.NewNop())
	data := createTestPNG(t, 10, 10)

	tests := []struct {
		name    string
		mutate  func(s *ContestSubmission)
		wantErr error
	}{
		{name: "bad email", mutate: func(s *ContestSubmission) { s.Email = "nope" }, wantErr: models.ErrInvalidEmail},
		{name: "bad month", mutate: func(s *ContestSubmission) { s.Month = 13 }, wantErr: models.ErrValidation},
		{name: "no photo", mutate: func(s *ContestSubmission) { s.Photo = nil }, wantErr: models.ErrInvalidPhoto},
		{name: "not an image", mutate: func(s *ContestSubmission) { s.Photo = strings.NewReader("plain text") }, wantErr: models.ErrInvalidPhoto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := newSubmission(data, "a.png")
			tt.mutate(sub)
			_, err := svc.Submit(context.Background(), sub)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestContestService_Submit_StorageFailure(t *testing.T) {
	storage := new(MockStorageService)
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/png", mock.Anything).
		Return("", errors.New("bucket unreachable"))
	svc := NewContestService(storage, repositories.NewMemoryContestRepository(), zap.NewNop())

	_, err := svc.Submit(context.Background(), newSubmission(createTestPNG(t, 10, 10), "a.png"))
	assert.Error(t, err)

	entries, err := svc.Entries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"beach.jpg":          "beach.jpg",
		"../../etc/passwd":   "passwd",
		`C:\photos\sun.png`:  "sun.png",
		"my summer (1).jpeg": "my-summer-1.jpeg",
		"":                   "photo",
		"..":                 "photo",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFilename(in), in)
	}
}
