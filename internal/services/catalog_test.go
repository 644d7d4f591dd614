package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
)

func newCatalogFixture() (*CatalogService, *repositories.MemoryListenerRepository) {
	listeners := repositories.NewMemoryListenerRepository()
	products := repositories.NewMemoryProductRepository(models.DefaultCatalog())
	return NewCatalogService(products, listeners, zap.NewNop()), listeners
}

func TestCatalogService_ListVacations(t *testing.T) {
	svc, _ := newCatalogFixture()

	vacations, err := svc.ListVacations(context.Background(), models.CurrencyGBP)
	require.NoError(t, err)

	for _, v := range vacations {
		assert.True(t, v.Available, v.SKU)
		assert.Equal(t, models.CurrencyGBP, v.Currency)
	}
	require.NotEmpty(t, vacations)
	assert.Equal(t, "723", vacations[0].SKU)
	assert.InDelta(t, 59.994, vacations[0].Price, 1e-9)
	assert.Equal(t, "£59.99", vacations[0].DisplayPrice)
}

func TestCatalogService_GetVacation(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	v, err := svc.GetVacation(ctx, "oregon-coast", models.CurrencyUSD)
	require.NoError(t, err)
	assert.Equal(t, "446", v.SKU)
	assert.Equal(t, "$149.95", v.DisplayPrice)

	_, err = svc.GetVacation(ctx, "atlantis", models.CurrencyUSD)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCatalogService_Purchase(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	p, err := svc.Purchase(ctx, "HR199")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.PackagesSold)

	p, err = svc.Purchase(ctx, "HR199")
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.PackagesSold)

	_, err = svc.Purchase(ctx, "nope")
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestCatalogService_NotifyWhenInSeason(t *testing.T) {
	svc, listeners := newCatalogFixture()
	ctx := context.Background()

	require.NoError(t, svc.NotifyWhenInSeason(ctx, "a@b.com", "OC39"))
	require.NoError(t, svc.NotifyWhenInSeason(ctx, " a@b.com ", "OC39"))

	assert.ErrorIs(t, svc.NotifyWhenInSeason(ctx, "bad", "OC39"), models.ErrInvalidEmail)
	assert.ErrorIs(t, svc.NotifyWhenInSeason(ctx, "a@b.com", "nope"), models.ErrNotFound)

	all, err := listeners.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"OC39"}, all[0].SKUs)
}
