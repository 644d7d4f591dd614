package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorageService_Upload(t *testing.T) {
	tempDir := t.TempDir()
	service := NewLocalStorageService(tempDir, "http://localhost:3000/uploads/", zap.NewNop())

	ctx := context.Background()
	content := "test file content"

	url, err := service.Upload(ctx, "/test/file.txt", strings.NewReader(content), "text/plain", int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/uploads/test/file.txt", url)

	stored, err := os.ReadFile(filepath.Join(tempDir, "test", "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, content, string(stored))

	exists, err := service.Exists(ctx, "test/file.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalStorageService_Upload_SizeMismatch(t *testing.T) {
	service := NewLocalStorageService(t.TempDir(), "/uploads", zap.NewNop())

	_, err := service.Upload(context.Background(), "a.txt", strings.NewReader("abc"), "text/plain", 10)
	assert.ErrorContains(t, err, "size mismatch")
}

func TestLocalStorageService_RejectsEscapingKeys(t *testing.T) {
	service := NewLocalStorageService(t.TempDir(), "/uploads", zap.NewNop())

	_, err := service.Upload(context.Background(), "../outside.txt", strings.NewReader("x"), "text/plain", 1)
	assert.Error(t, err)
}

func TestLocalStorageService_Delete(t *testing.T) {
	tempDir := t.TempDir()
	service := NewLocalStorageService(tempDir, "/uploads", zap.NewNop())
	ctx := context.Background()

	_, err := service.Upload(ctx, "nested/dir/file.txt", strings.NewReader("abc"), "text/plain", 3)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, "nested/dir/file.txt"))

	exists, err := service.Exists(ctx, "nested/dir/file.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = os.Stat(filepath.Join(tempDir, "nested"))
	assert.True(t, os.IsNotExist(err), "empty directories are removed")

	assert.NoError(t, service.Delete(ctx, "missing.txt"))
}

func TestStorageServiceWithFallback_Upload(t *testing.T) {
	primary := new(MockStorageService)
	primary.On("Upload", mock.Anything, "k.txt", mock.Anything, "text/plain", int64(3)).
		Return("", errors.New("primary down"))
	fallback := NewLocalStorageService(t.TempDir(), "/uploads", zap.NewNop())

	storage := NewStorageServiceWithFallback(primary, fallback, zap.NewNop())

	url, err := storage.Upload(context.Background(), "k.txt", strings.NewReader("abc"), "text/plain", 3)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/k.txt", url)
	primary.AssertExpectations(t)
}

func TestStorageServiceWithFallback_Delete(t *testing.T) {
	primary := new(MockStorageService)
	primary.On("Delete", mock.Anything, "k").Return(errors.New("primary down"))
	fallback := new(MockStorageService)
	fallback.On("Delete", mock.Anything, "k").Return(nil)

	storage := NewStorageServiceWithFallback(primary, fallback, zap.NewNop())
	assert.NoError(t, storage.Delete(context.Background(), "k"))

	failing := new(MockStorageService)
	failing.On("Delete", mock.Anything, "k").Return(errors.New("fallback down"))
	storage = NewStorageServiceWithFallback(primary, failing, zap.NewNop())
	assert.Error(t, storage.Delete(context.Background(), "k"))
}
