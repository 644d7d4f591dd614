package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
)

func testConfirmation(cart *models.Cart) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<p>Order %s for %s</p>", cart.Number, cart.Billing.Name)
		return err
	})
}

func failingConfirmation(cart *models.Cart) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return errors.New("template exploded")
	})
}

func testInSeason(p *models.Product) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<p>%s is in season</p>", p.Name)
		return err
	})
}

type cartFixture struct {
	service *CartService
	email   *MockEmailService
	catalog *repositories.MemoryProductRepository
}

func newCartFixture(t *testing.T, confirmation ConfirmationTemplate) *cartFixture {
	t.Helper()
	logger := zap.NewNop()
	email := NewMockEmailService(logger)
	notifier, err := NewAsyncNotifier(email, 2, logger)
	require.NoError(t, err)
	t.Cleanup(func() { notifier.Close(time.Second) })

	catalog := repositories.NewMemoryProductRepository(models.DefaultCatalog())
	return &cartFixture{
		service: NewCartService(catalog, notifier, confirmation, logger),
		email:   email,
		catalog: catalog,
	}
}

func waitResult(t *testing.T, results <-chan NotificationResult) NotificationResult {
	t.Helper()
	select {
	case res, ok := <-results:
		require.True(t, ok, "result channel closed without a result")
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification result")
		return NotificationResult{}
	}
}
