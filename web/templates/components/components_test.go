package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/services"
)

func render(t *testing.T, c templ.Component, children templ.Component) string {
	t.Helper()
	ctx := context.Background()
	if children != nil {
		ctx = templ.WithChildren(ctx, children)
	}
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestLayout_FlashWeatherAndCart(t *testing.T) {
	html := render(t, Layout(Page{
		Title:   "Home",
		Flash:   models.NewFlash(models.FlashSuccess, "Thank you!", "Signed up."),
		Weather: services.NewWeatherService().Locations(),
		Cart:    &models.Cart{Items: []models.CartItem{{SKU: "723"}}},
	}), templ.Raw("<p>page body</p>"))

	assert.Contains(t, html, "<title>Home | Meadowlark Travel</title>")
	assert.Contains(t, html, `class="alert alert-success"`)
	assert.Contains(t, html, "<strong>Thank you!</strong> Signed up.")
	assert.Contains(t, html, "Portland")
	assert.Contains(t, html, "Cart (1)")
	assert.Contains(t, html, "<main><p>page body</p></main>")
	assert.NotContains(t, html, "mocha")
}

func TestLayout_Defaults(t *testing.T) {
	html := render(t, Layout(Page{}), nil)

	assert.Contains(t, html, "<title>Meadowlark Travel</title>")
	assert.Contains(t, html, `<a href="/cart">Cart</a>`)
	assert.NotContains(t, html, `role="alert"`)
	assert.Contains(t, html, currentYear()+" Meadowlark Travel")
}

func TestLayout_ShowTests(t *testing.T) {
	html := render(t, Layout(Page{ShowTests: true}), nil)
	assert.Contains(t, html, "mocha.min.css")
	assert.Contains(t, html, "/static/qa/tests-global.js")
	assert.Contains(t, html, "mocha.run();")
}

func TestAdminLayout(t *testing.T) {
	html := render(t, AdminLayout("Users"), templ.Raw("<h2>Users</h2>"))
	assert.Contains(t, html, "<title>Users | Meadowlark Admin</title>")
	assert.Contains(t, html, "Meadowlark Travel Admin")
	assert.Contains(t, html, "<main><h2>Users</h2></main>")
}

func TestCSRFField(t *testing.T) {
	html := render(t, CSRFField(`tok"en`), nil)
	assert.Equal(t, `<input type="hidden" name="csrf_token" value="tok&#34;en">`, html)
}
