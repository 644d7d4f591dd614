package repositories

import (
	"context"
	"fmt"

	"travel-booking-platform/internal/models"
)

// ProductRepository is the catalog store
type ProductRepository interface {
	Find(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)
	FindOne(ctx context.Context, filter models.ProductFilter) (*models.Product, error)
	IncrementPackagesSold(ctx context.Context, sku string) (int64, error)
	SetInSeason(ctx context.Context, sku string, inSeason bool) error
}

// NewsletterRepository stores newsletter signups
type NewsletterRepository interface {
	Create(ctx context.Context, signup *models.NewsletterSignup) error
	List(ctx context.Context) ([]*models.NewsletterSignup, error)
}

// ListenerRepository stores visitors waiting for products to come into season
type ListenerRepository interface {
	Upsert(ctx context.Context, email, sku string) error
	List(ctx context.Context) ([]*models.InSeasonListener, error)
	RemoveSKU(ctx context.Context, email, sku string) error
}

// ContestRepository stores photo contest entries
type ContestRepository interface {
	Create(ctx context.Context, entry *models.ContestEntry) error
	ListByContest(ctx context.Context, contest string) ([]*models.ContestEntry, error)
}

// dbError marks a driver error as an upstream database failure
func dbError(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, models.ErrDatabase, err)
}
