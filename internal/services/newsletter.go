package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
)

type NewsletterService struct {
	repo   repositories.NewsletterRepository
	logger *zap.Logger
}

func NewNewsletterService(repo repositories.NewsletterRepository, logger *zap.Logger) *NewsletterService {
	return &NewsletterService{repo: repo, logger: logger}
}

// Subscribe stores a signup. Invalid addresses fail with ErrInvalidEmail, store failures with ErrDatabase.
func (s *NewsletterService) Subscribe(ctx context.Context, name, email string) (*models.NewsletterSignup, error) {
	signup := &models.NewsletterSignup{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
	if err := models.ValidateRequest(&models.NewsletterRequest{Name: signup.Name, Email: signup.Email}); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, signup); err != nil {
		s.logger.Error("failed to store newsletter signup", zap.String("email", signup.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("newsletter signup", zap.Int("id", signup.ID), zap.String("email", signup.Email))
	return signup, nil
}

func (s *NewsletterService) Signups(ctx context.Context) ([]*models.NewsletterSignup, error) {
	return s.repo.List(ctx)
}
