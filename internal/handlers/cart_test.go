package handlers

import (
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-booking-platform/internal/services"
)

var (
	orderNumberPattern = regexp.MustCompile(`Your reservation number is <b>([1-9][0-9]*)</b>`)
	cartCountPattern   = regexp.MustCompile(`Cart \((\d+)\)`)
)

func (a *testApp) cartCount(t *testing.T) (int, string) {
	t.Helper()
	_, body := a.get(t, "/cart")
	m := cartCountPattern.FindStringSubmatch(body)
	if m == nil {
		return 0, body
	}
	n, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	return n, body
}

func TestCartAddAndCheckout(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.postForm(t, "/cart/add", url.Values{"sku": {"723"}, "guests": {"2"}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart", resp.Header.Get("Location"))

	_, body := app.get(t, "/cart")
	assert.Contains(t, body, "Hood River Tour")
	assert.Contains(t, body, "$99.99")
	assert.Contains(t, body, `action="/cart/checkout"`)
	assert.Contains(t, body, "Cart (1)")

	resp, body = app.postForm(t, "/cart/checkout", url.Values{"name": {"A"}, "email": {"a@b.com"}}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Thank you for booking your trip with Meadowlark Travel, A!")
	assert.Contains(t, body, "A confirmation has been sent to a@b.com.")
	assert.Regexp(t, orderNumberPattern, body)

	require.Eventually(t, func() bool { return len(app.email.Sent()) == 1 }, 2*time.Second, 10*time.Millisecond)
	sent := app.email.Sent()[0]
	assert.Equal(t, "a@b.com", sent.To)
	number := orderNumberPattern.FindStringSubmatch(body)[1]
	assert.Contains(t, sent.HTMLBody, number)

	_, body = app.get(t, "/cart")
	assert.Contains(t, body, "Your cart is empty.")
}

func TestCartAddAppendsItems(t *testing.T) {
	app := newTestApp(t)

	for _, sku := range []string{"723", "446", "723"} {
		resp, _ := app.postForm(t, "/cart/add", url.Values{"sku": {sku}, "guests": {"1"}}, nil)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	}

	_, body := app.get(t, "/cart")
	assert.Contains(t, body, "Cart (3)")
	assert.Contains(t, body, "Oregon Coast Tour")
}

func TestCartAdd_Rejected(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{name: "unknown sku", form: url.Values{"sku": {"nope"}, "guests": {"1"}}},
		{name: "missing sku", form: url.Values{"guests": {"1"}}},
		{name: "negative guests", form: url.Values{"sku": {"723"}, "guests": {"-1"}}},
		{name: "non numeric guests", form: url.Values{"sku": {"723"}, "guests": {"two"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			resp, _ := app.postForm(t, "/cart/add", tt.form, nil)
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/vacations", resp.Header.Get("Location"))

			_, body := app.get(t, "/cart")
			assert.Contains(t, body, "Your cart is empty.")
		})
	}
}

func TestCartValidationMessages(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.postForm(t, "/cart/add", url.Values{"sku": {"944"}, "guests": {"5"}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body := app.get(t, "/cart")
	assert.Contains(t, body, services.WaiverWarning)
	assert.Contains(t, body, services.GuestsError)
	assert.NotContains(t, body, `action="/cart/checkout"`)

	resp, _ = app.postForm(t, "/cart/checkout", url.Values{"name": {"A"}, "email": {"a@b.com"}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart", resp.Header.Get("Location"))
	assert.Empty(t, app.email.Sent())
}

func TestCheckout_InvalidEmail(t *testing.T) {
	app := newTestApp(t)

	app.postForm(t, "/cart/add", url.Values{"sku": {"723"}, "guests": {"2"}}, nil)

	resp, _ := app.postForm(t, "/cart/checkout", url.Values{"name": {"A"}, "email": {"nope"}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart", resp.Header.Get("Location"))

	_, body := app.get(t, "/cart")
	assert.Contains(t, body, "The email address you entered was not valid.")
	assert.Contains(t, body, "Hood River Tour", "cart survives a failed checkout")
}

func TestCheckout_NoCart(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.postForm(t, "/cart/checkout", url.Values{"name": {"A"}, "email": {"a@b.com"}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/vacations", resp.Header.Get("Location"))

	_, body := app.get(t, "/vacations")
	assert.Contains(t, body, "Your cart is empty.")
}

func TestCartView_PricesInSelectedCurrency(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.postForm(t, "/cart/add", url.Values{"sku": {"723"}, "guests": {"2"}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = app.get(t, "/set-currency/GBP")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body := app.get(t, "/cart")
	assert.Equal(t, 2, strings.Count(body, "£59.99"), "item row and total are converted")
	assert.NotContains(t, body, "$99.99")
}

func TestCartAdd_FullCartKeepsItems(t *testing.T) {
	app := newTestApp(t)

	count, full := 0, false
	for i := 0; i < 150 && !full; i++ {
		resp, _ := app.postForm(t, "/cart/add", url.Values{"sku": {"723"}, "guests": {"1"}}, nil)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Equal(t, "/cart", resp.Header.Get("Location"))

		n, body := app.cartCount(t)
		if n == count {
			full = true
			assert.Contains(t, body, "Your cart is full.")
			continue
		}
		require.Equal(t, count+1, n, "an accepted add shows up in the cart")
		count = n
	}

	require.True(t, full, "cart never reported full")
	assert.Greater(t, count, 40)

	resp, _ := app.postForm(t, "/cart/add", url.Values{"sku": {"446"}, "guests": {"1"}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	n, body := app.cartCount(t)
	assert.Equal(t, count, n)
	assert.NotContains(t, body, "Oregon Coast Tour")

	resp, body = app.postForm(t, "/cart/checkout", url.Values{"name": {"A"}, "email": {"a@b.com"}}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Regexp(t, orderNumberPattern, body)
}

func TestCartCheckoutPage(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.get(t, "/cart/checkout")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	app.postForm(t, "/cart/add", url.Values{"sku": {"446"}, "guests": {"3"}}, nil)

	resp, body := app.get(t, "/cart/checkout")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<h1>Check out</h1>")
	assert.Contains(t, body, "Oregon Coast Tour")
	assert.Contains(t, body, "$149.95")
	assert.Contains(t, body, `action="/cart/checkout"`)
	assert.Regexp(t, csrfPattern, body)
}

func TestCartThankYouPages(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/cart/thank-you", "/email/cart/thank-you"} {
		resp, _ := app.get(t, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	app.postForm(t, "/cart/add", url.Values{"sku": {"723"}, "guests": {"2"}}, nil)
	resp, body := app.postForm(t, "/cart/checkout", url.Values{"name": {"A"}, "email": {"a@b.com"}}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ">Cart</a>", "the nav no longer counts the checked out cart")
	number := orderNumberPattern.FindStringSubmatch(body)[1]

	resp, body = app.get(t, "/cart/thank-you")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Your reservation number is <b>"+number+"</b>")
	assert.Contains(t, body, "Thank you for booking your trip with Meadowlark Travel, A!")

	resp, body = app.get(t, "/email/cart/thank-you")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Your reservation number is <b>"+number+"</b>")
	assert.Contains(t, body, "Hood River Tour")
	assert.Contains(t, body, "$99.99")
	assert.NotContains(t, body, "main.css", "the email is rendered without the site layout")

	app.postForm(t, "/cart/add", url.Values{"sku": {"446"}, "guests": {"1"}}, nil)
	resp, _ = app.get(t, "/cart/thank-you")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "a new cart replaces the finished order")
}
