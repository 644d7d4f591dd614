package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
)

// VacationView is a product priced in the visitor's currency
type VacationView struct {
	*models.Product
	Price        float64
	DisplayPrice string
	Currency     models.Currency
}

// CatalogService implements CatalogServiceInterface
type CatalogService struct {
	products  repositories.ProductRepository
	listeners repositories.ListenerRepository
	logger    *zap.Logger
}

func NewCatalogService(products repositories.ProductRepository, listeners repositories.ListenerRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{products: products, listeners: listeners, logger: logger}
}

// ListVacations returns available products priced in the currency
func (s *CatalogService) ListVacations(ctx context.Context, currency models.Currency) ([]*VacationView, error) {
	available := true
	products, err := s.products.Find(ctx, models.ProductFilter{Available: &available})
	if err != nil {
		return nil, fmt.Errorf("failed to list vacations: %w", err)
	}

	views := make([]*VacationView, 0, len(products))
	for _, p := range products {
		views = append(views, newVacationView(p, currency))
	}
	return views, nil
}

func (s *CatalogService) GetVacation(ctx context.Context, slug string, currency models.Currency) (*VacationView, error) {
	p, err := s.products.FindOne(ctx, models.ProductFilter{Slug: slug})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, models.ErrProductNotFound
	}
	return newVacationView(p, currency), nil
}

// Purchase records one sale of the product
func (s *CatalogService) Purchase(ctx context.Context, sku string) (*models.Product, error) {
	p, err := s.products.FindOne(ctx, models.ProductFilter{SKU: sku})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, models.ErrProductNotFound
	}

	sold, err := s.products.IncrementPackagesSold(ctx, p.SKU)
	if err != nil {
		return nil, err
	}
	p.PackagesSold = sold

	s.logger.Info("vacation purchased", zap.String("sku", p.SKU), zap.Int64("packages_sold", sold))
	return p, nil
}

// NotifyWhenInSeason registers the email to hear about the product coming into season
func (s *CatalogService) NotifyWhenInSeason(ctx context.Context, email, sku string) error {
	email = strings.TrimSpace(email)
	if !models.IsValidEmail(email) {
		return models.ErrInvalidEmail
	}

	p, err := s.products.FindOne(ctx, models.ProductFilter{SKU: sku})
	if err != nil {
		return err
	}
	if p == nil {
		return models.ErrProductNotFound
	}

	return s.listeners.Upsert(ctx, email, p.SKU)
}

func newVacationView(p *models.Product, currency models.Currency) *VacationView {
	price := models.ConvertCents(p.PriceInCents, currency)
	return &VacationView{
		Product:      p,
		Price:        price,
		DisplayPrice: currency.Format(price),
		Currency:     currency,
	}
}
