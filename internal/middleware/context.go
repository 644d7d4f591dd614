package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"travel-booking-platform/internal/models"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	sessionKey   contextKey = "session"
	flashKey     contextKey = "flash"
	csrfTokenKey contextKey = "csrf_token"
	showTestsKey contextKey = "show_tests"
	cartKey      contextKey = "cart"
)

// GetRequestID returns the id assigned by RequestID
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// GetSession returns the visitor session loaded by Sessions
func GetSession(ctx context.Context) *sessions.Session {
	s, _ := ctx.Value(sessionKey).(*sessions.Session)
	return s
}

// GetFlash returns the flash consumed for this request, if any
func GetFlash(ctx context.Context) *models.Flash {
	f, _ := ctx.Value(flashKey).(*models.Flash)
	return f
}

func GetCSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenKey).(string)
	return token
}

// ShowTestsEnabled reports whether page tests should be rendered
func ShowTestsEnabled(ctx context.Context) bool {
	show, _ := ctx.Value(showTestsKey).(bool)
	return show
}

// GetCart returns the validated session cart, or nil when the visitor has none
func GetCart(ctx context.Context) *models.Cart {
	cart, _ := ctx.Value(cartKey).(*models.Cart)
	return cart
}

// IsXHR reports whether the request was made by client-side script
func IsXHR(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

// AcceptsJSON reports whether the client prefers a JSON response
func AcceptsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return false
	}
	jsonIdx := strings.Index(accept, "application/json")
	if jsonIdx < 0 {
		return false
	}
	htmlIdx := strings.Index(accept, "text/html")
	return htmlIdx < 0 || jsonIdx < htmlIdx
}
