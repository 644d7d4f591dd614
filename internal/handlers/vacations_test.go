package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-booking-platform/internal/models"
)

func TestVacationsList(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/vacations")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Hood River Day Trip")
	assert.Contains(t, body, "$99.99")
	assert.NotContains(t, body, "$2899.95", "unavailable vacations are hidden")
	assert.Contains(t, body, `href="/set-currency/GBP"`)
	assert.Contains(t, body, "/notify-me-when-in-season?sku=OC39")
}

func TestSetCurrency(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.get(t, "/set-currency/GBP")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/vacations", resp.Header.Get("Location"))

	_, body := app.get(t, "/vacations")
	assert.Contains(t, body, "£59.99")
	assert.Contains(t, body, `href="/set-currency/GBP" class="selected"`)

	resp, _ = app.get(t, "/set-currency/XYZ")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body = app.get(t, "/vacations")
	assert.Contains(t, body, "support that currency.")
	assert.Contains(t, body, "£59.99", "unsupported currency leaves the selection unchanged")

	app.get(t, "/set-currency/btc")
	_, body = app.get(t, "/vacations")
	assert.Contains(t, body, "0.23705548 BTC")
}

func TestVacationPurchase(t *testing.T) {
	tests := []struct {
		name      string
		sku       string
		wantFlash string
		wantSold  int64
	}{
		{name: "known sku", sku: "723", wantFlash: "Your vacation has been booked.", wantSold: 1},
		{name: "unknown sku", sku: "nope", wantFlash: "Something went wrong with your reservation"},
		{name: "missing sku", sku: "", wantFlash: "Something went wrong with your reservation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			resp, _ := app.postForm(t, "/vacations", url.Values{"purchaseSku": {tt.sku}}, nil)
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/vacations", resp.Header.Get("Location"))

			_, body := app.get(t, "/vacations")
			assert.Contains(t, body, tt.wantFlash)

			p, err := app.products.FindOne(context.Background(), models.ProductFilter{SKU: "723"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSold, p.PackagesSold)
		})
	}
}

func TestVacationDetail(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/vacation/rock-climbing/bend")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Guided climbing at Smith Rock.")
	assert.Contains(t, body, `action="/cart/add"`)

	resp, body = app.get(t, "/vacation/oregon-coast-getaway")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `action="/notify-me-when-in-season"`)

	resp, _ = app.get(t, "/vacation/atlantis")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNotifyMeWhenInSeason(t *testing.T) {
	app := newTestApp(t)

	_, body := app.get(t, "/notify-me-when-in-season?sku=OC39")
	assert.Contains(t, body, `name="sku" value="OC39"`)

	resp, _ := app.postForm(t, "/notify-me-when-in-season", url.Values{"email": {"a@b.com"}, "sku": {"OC39"}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/vacations", resp.Header.Get("Location"))

	_, body = app.get(t, "/vacations")
	assert.Contains(t, body, "You will be notified when this vacation is in season.")

	listeners, err := app.listeners.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listeners, 1)
	assert.Equal(t, "a@b.com", listeners[0].Email)
	assert.Equal(t, []string{"OC39"}, listeners[0].SKUs)

	resp, _ = app.postForm(t, "/notify-me-when-in-season", url.Values{"email": {"bad"}, "sku": {"OC39"}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = app.get(t, "/vacations")
	assert.Contains(t, body, "There was an error processing your request.")
}
