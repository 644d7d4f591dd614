package services

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"go.uber.org/zap"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
)

const confirmationSubject = "Thank you for booking your trip with Meadowlark Travel"

// Cart validation messages
const (
	WaiverWarning = "One or more of your selected tours requires a waiver."
	GuestsError   = "One or more of your selected tours cannot accommodate the number of guests you have selected."
)

// CartService implements CartServiceInterface
type CartService struct {
	catalog      repositories.ProductRepository
	notifier     Notifier
	confirmation ConfirmationTemplate
	logger       *zap.Logger
}

func NewCartService(catalog repositories.ProductRepository, notifier Notifier, confirmation ConfirmationTemplate, logger *zap.Logger) *CartService {
	return &CartService{
		catalog:      catalog,
		notifier:     notifier,
		confirmation: confirmation,
		logger:       logger,
	}
}

// Add returns a copy of the cart with one item appended for the product with the
// given SKU. A nil cart is created. The passed cart is never modified, and on any
// error it is returned as is.
func (s *CartService) Add(ctx context.Context, cart *models.Cart, sku string, guests int) (*models.Cart, error) {
	if guests < 0 {
		return cart, models.ErrInvalidGuests
	}

	product, err := s.catalog.FindOne(ctx, models.ProductFilter{SKU: sku})
	if err != nil {
		return cart, err
	}
	if product == nil {
		return cart, fmt.Errorf("unknown product SKU %q: %w", sku, models.ErrProductNotFound)
	}

	next := &models.Cart{}
	if cart != nil {
		next.Items = append(next.Items, cart.Items...)
	}
	next.Items = append(next.Items, models.NewCartItem(product, guests))
	return next, nil
}

// Hydrate fills each item's product details from the catalog. Items whose product
// no longer exists are dropped.
func (s *CartService) Hydrate(ctx context.Context, cart *models.Cart) error {
	if cart == nil {
		return nil
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		product, err := s.catalog.FindOne(ctx, models.ProductFilter{SKU: item.SKU})
		if err != nil {
			return err
		}
		if product == nil {
			s.logger.Warn("dropping unknown product from cart", zap.String("sku", item.SKU))
			continue
		}
		items = append(items, models.NewCartItem(product, item.Guests))
	}
	cart.Items = items
	return nil
}

// Checkout assigns an order number and billing details, then sends the confirmation
// email in the background. Send failures are logged and reported on the returned
// channel but never fail the checkout.
func (s *CartService) Checkout(ctx context.Context, cart *models.Cart, name, email string) (<-chan NotificationResult, error) {
	if cart == nil {
		return nil, models.ErrCartNotFound
	}
	if !models.IsValidEmail(email) {
		return nil, models.ErrInvalidEmail
	}

	cart.Number = newOrderNumber()
	cart.Billing = &models.Billing{Name: name, Email: email}

	var body bytes.Buffer
	if err := s.confirmation(cart).Render(ctx, &body); err != nil {
		s.logger.Error("error in email template", zap.String("order", cart.Number), zap.Error(err))
		results := make(chan NotificationResult, 1)
		results <- NotificationResult{To: email, Subject: confirmationSubject, Err: fmt.Errorf("failed to render confirmation: %w", err)}
		close(results)
		return results, nil
	}

	s.logger.Info("order checked out",
		zap.String("order", cart.Number),
		zap.Int("items", len(cart.Items)),
		zap.String("email", email))

	return s.notifier.Dispatch(ctx, EmailMessage{
		To:       email,
		Subject:  confirmationSubject,
		HTMLBody: body.String(),
	}), nil
}

// Validate hydrates the cart and recomputes its warnings and errors against the
// current catalog
func (s *CartService) Validate(ctx context.Context, cart *models.Cart) error {
	if cart == nil {
		return nil
	}
	cart.Warnings = nil
	cart.Errors = nil

	if err := s.Hydrate(ctx, cart); err != nil {
		return err
	}

	requiresWaiver := false
	overCapacity := false
	for _, item := range cart.Items {
		if item.RequiresWaiver {
			requiresWaiver = true
		}
		if item.Guests > item.MaximumGuests {
			overCapacity = true
		}
	}

	if requiresWaiver {
		cart.Warnings = append(cart.Warnings, WaiverWarning)
	}
	if overCapacity {
		cart.Errors = append(cart.Errors, GuestsError)
	}
	return nil
}

// Total sums the item prices converted to the currency
func (s *CartService) Total(cart *models.Cart, currency models.Currency) float64 {
	return s.Convert(cart.TotalInCents(), currency)
}

// Convert returns NaN for unsupported currencies
func (s *CartService) Convert(priceInCents int, currency models.Currency) float64 {
	return models.ConvertCents(priceInCents, currency)
}

// newOrderNumber returns a random decimal string without leading zeros
func newOrderNumber() string {
	return strconv.FormatInt(rand.Int64N(9_000_000_000_000_000)+1_000_000_000_000_000, 10)
}
