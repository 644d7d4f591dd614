package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travel-booking-platform/internal/models"
)

// MockNewsletterService is a mock implementation of NewsletterServiceInterface
type MockNewsletterService struct {
	mock.Mock
}

func (m *MockNewsletterService) Subscribe(ctx context.Context, name, email string) (*models.NewsletterSignup, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NewsletterSignup), args.Error(1)
}

func (m *MockNewsletterService) Signups(ctx context.Context) ([]*models.NewsletterSignup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NewsletterSignup), args.Error(1)
}

var xhr = map[string]string{"X-Requested-With": "XMLHttpRequest"}

func TestNewsletterSubscribe(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		headers   map[string]string
		wantJSON  string
		wantFlash string
	}{
		{name: "xhr success", email: "a@b.com", headers: xhr, wantJSON: `{"success":true}`},
		{name: "xhr invalid email", email: "not-an-email", headers: xhr, wantJSON: `{"error":"Invalid name email address."}`},
		{name: "browser success", email: "a@b.com", wantFlash: "You have now been signed up for the newsletter."},
		{name: "browser invalid email", email: "not-an-email", wantFlash: "The email address you entered was not valid."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			resp, body := app.postForm(t, "/newsletter", url.Values{"name": {"A"}, "email": {tt.email}}, tt.headers)

			if tt.wantJSON != "" {
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.JSONEq(t, tt.wantJSON, body)
				return
			}

			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/newsletter/archive", resp.Header.Get("Location"))

			_, page := app.get(t, "/newsletter/archive")
			assert.Contains(t, page, tt.wantFlash)

			// flash is shown once
			_, page = app.get(t, "/newsletter/archive")
			assert.NotContains(t, page, tt.wantFlash)
		})
	}
}

func TestNewsletterSubscribe_StoreFailure(t *testing.T) {
	newsletter := new(MockNewsletterService)
	newsletter.On("Subscribe", mock.Anything, "A", "a@b.com").Return(nil, fmt.Errorf("failed to create signup: %w", models.ErrDatabase))
	newsletter.On("Signups", mock.Anything).Return([]*models.NewsletterSignup{}, nil)

	app := newTestApp(t, withNewsletter(newsletter))

	_, body := app.postForm(t, "/newsletter", url.Values{"name": {"A"}, "email": {"a@b.com"}}, xhr)
	assert.JSONEq(t, `{"error":"Database error."}`, body)

	resp, _ := app.postForm(t, "/newsletter", url.Values{"name": {"A"}, "email": {"a@b.com"}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, page := app.get(t, "/newsletter/archive")
	assert.Contains(t, page, "There was a database error; please try again later.")

	newsletter.AssertNumberOfCalls(t, "Subscribe", 2)
}

func TestNewsletterArchive_CountsSignups(t *testing.T) {
	app := newTestApp(t)

	for _, email := range []string{"a@b.com", "c@d.com"} {
		resp, _ := app.postForm(t, "/newsletter", url.Values{"name": {"A"}, "email": {email}}, xhr)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	_, page := app.get(t, "/newsletter/archive")
	assert.Contains(t, page, "2 travelers have signed up so far.")
}

func TestNewsletterPages(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/newsletter", "/newsletter-ajax"} {
		resp, body := app.get(t, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Regexp(t, csrfPattern, body)
	}

}
