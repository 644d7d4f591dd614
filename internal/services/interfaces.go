package services

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"travel-booking-platform/internal/models"
)

// CartServiceInterface defines the cart and order workflow
type CartServiceInterface interface {
	Add(ctx context.Context, cart *models.Cart, sku string, guests int) (*models.Cart, error)
	Checkout(ctx context.Context, cart *models.Cart, name, email string) (<-chan NotificationResult, error)
	Hydrate(ctx context.Context, cart *models.Cart) error
	Validate(ctx context.Context, cart *models.Cart) error
	Total(cart *models.Cart, currency models.Currency) float64
	Convert(priceInCents int, currency models.Currency) float64
}

// CatalogServiceInterface defines vacation browsing and purchase
type CatalogServiceInterface interface {
	ListVacations(ctx context.Context, currency models.Currency) ([]*VacationView, error)
	GetVacation(ctx context.Context, slug string, currency models.Currency) (*VacationView, error)
	Purchase(ctx context.Context, sku string) (*models.Product, error)
	NotifyWhenInSeason(ctx context.Context, email, sku string) error
}

// NewsletterServiceInterface defines newsletter signups
type NewsletterServiceInterface interface {
	Subscribe(ctx context.Context, name, email string) (*models.NewsletterSignup, error)
	Signups(ctx context.Context) ([]*models.NewsletterSignup, error)
}

// ContestServiceInterface defines the vacation photo contest
type ContestServiceInterface interface {
	Submit(ctx context.Context, submission *ContestSubmission) (*models.ContestEntry, error)
	Entries(ctx context.Context) ([]*models.ContestEntry, error)
}

// EmailService sends a single message synchronously
type EmailService interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// Notifier sends messages in the background
type Notifier interface {
	Dispatch(ctx context.Context, msg EmailMessage) <-chan NotificationResult
}

// ConfirmationTemplate renders the order confirmation email for a checked-out cart
type ConfirmationTemplate func(cart *models.Cart) templ.Component

// InSeasonTemplate renders the email sent when a product comes into season
type InSeasonTemplate func(product *models.Product) templ.Component

// ContestSubmission is an uploaded contest photo and its entrant
type ContestSubmission struct {
	Name        string
	Email       string
	Year        int
	Month       int
	Filename    string
	ContentType string
	Size        int64
	Photo       io.ReadSeeker
}
