package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
)

// ThumbnailWidth is the width of contest entry thumbnails in pixels
const ThumbnailWidth = 200

type ContestService struct {
	storage StorageService
	repo    repositories.ContestRepository
	logger  *zap.Logger
	now     func() time.Time
}

func NewContestService(storage StorageService, repo repositories.ContestRepository, logger *zap.Logger) *ContestService {
	return &ContestService{storage: storage, repo: repo, logger: logger, now: time.Now}
}

// Submit stores the photo under vacation-photo/<unixnano>/<filename>, a thumbnail next to it,
// and records the entry
func (s *ContestService) Submit(ctx context.Context, sub *ContestSubmission) (*models.ContestEntry, error) {
	if err := models.ValidateRequest(&models.ContestEntryRequest{
		Name:  sub.Name,
		Email: sub.Email,
		Year:  sub.Year,
		Month: sub.Month,
	}); err != nil {
		return nil, err
	}
	if sub.Photo == nil {
		return nil, models.ErrInvalidPhoto
	}

	img, err := imaging.Decode(sub.Photo, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidPhoto, err)
	}
	if _, err := sub.Photo.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind photo: %w", err)
	}

	filename := sanitizeFilename(sub.Filename)
	dir := path.Join(models.VacationPhotoContest, fmt.Sprint(s.now().UnixNano()))

	photoURL, err := s.storage.Upload(ctx, path.Join(dir, filename), sub.Photo, sub.ContentType, sub.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	thumbnailURL, err := s.storeThumbnail(ctx, path.Join(dir, "thumb-"+filename), img)
	if err != nil {
		// entry is still usable with the full-size photo
		s.logger.Warn("failed to store thumbnail", zap.String("photo", photoURL), zap.Error(err))
	}

	entry := &models.ContestEntry{
		Contest:      models.VacationPhotoContest,
		Name:         sub.Name,
		Email:        sub.Email,
		Year:         sub.Year,
		Month:        sub.Month,
		PhotoURL:     photoURL,
		ThumbnailURL: thumbnailURL,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("contest entry received",
		zap.String("id", entry.ID),
		zap.String("email", entry.Email),
		zap.String("photo", photoURL))
	return entry, nil
}

func (s *ContestService) Entries(ctx context.Context) ([]*models.ContestEntry, error) {
	return s.repo.ListByContest(ctx, models.VacationPhotoContest)
}

func (s *ContestService) storeThumbnail(ctx context.Context, key string, img image.Image) (string, error) {
	format, err := imaging.FormatFromFilename(key)
	if err != nil {
		format = imaging.JPEG
		key += ".jpg"
	}

	thumb := imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return s.storage.Upload(ctx, key, bytes.NewReader(buf.Bytes()), thumbnailContentType(format), int64(buf.Len()))
}

func thumbnailContentType(format imaging.Format) string {
	switch format {
	case imaging.PNG:
		return "image/png"
	case imaging.GIF:
		return "image/gif"
	case imaging.BMP:
		return "image/bmp"
	case imaging.TIFF:
		return "image/tiff"
	default:
		return "image/jpeg"
	}
}

// sanitizeFilename keeps the base name and drops characters that are unsafe in storage keys
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, name)
	if name == "" || name == "." || name == ".." {
		return "photo"
	}
	return name
}
