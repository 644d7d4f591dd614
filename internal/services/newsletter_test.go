package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
)

type failingNewsletterRepo struct{}

func (failingNewsletterRepo) Create(ctx context.Context, signup *models.NewsletterSignup) error {
	return errors.Join(models.ErrDatabase, errors.New("connection refused"))
}

func (failingNewsletterRepo) List(ctx context.Context) ([]*models.NewsletterSignup, error) {
	return nil, models.ErrDatabase
}

func TestNewsletterService_Subscribe(t *testing.T) {
	svc := NewNewsletterService(repositories.NewMemoryNewsletterRepository(), zap.NewNop())
	ctx := context.Background()

	signup, err := svc.Subscribe(ctx, " Ann ", "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", signup.Name)
	assert.NotZero(t, signup.ID)

	_, err = svc.Subscribe(ctx, "Bo", "bo-at-example")
	assert.ErrorIs(t, err, models.ErrInvalidEmail)

	signups, err := svc.Signups(ctx)
	require.NoError(t, err)
	assert.Len(t, signups, 1)
}

func TestNewsletterService_Subscribe_StoreFailure(t *testing.T) {
	svc := NewNewsletterService(failingNewsletterRepo{}, zap.NewNop())

	_, err := svc.Subscribe(context.Background(), "Ann", "ann@example.com")
	assert.ErrorIs(t, err, models.ErrUpstream)
}
