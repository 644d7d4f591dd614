package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"travel-booking-platform/internal/config"
	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/services"
	"travel-booking-platform/internal/session"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
})

func newTestStore() *sessions.CookieStore {
	return session.NewStore(config.SessionConfig{Secret: "middleware-test", MaxAge: 3600}, false)
}

// cookiesFrom carries the response cookies onto a follow-up request. A later
// Set-Cookie for the same name replaces an earlier one, as in a browser.
func cookiesFrom(rec *httptest.ResponseRecorder, req *http.Request) *http.Request {
	latest := map[string]*http.Cookie{}
	var order []string
	for _, c := range rec.Result().Cookies() {
		if _, ok := latest[c.Name]; !ok {
			order = append(order, c.Name)
		}
		latest[c.Name] = c
	}
	for _, name := range order {
		req.AddCookie(latest[name])
	}
	return req
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "7d444840-9dc0-11d1-b245-5ffdce74fad2")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "7d444840-9dc0-11d1-b245-5ffdce74fad2", seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "not-a-uuid", seen)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := RequestID(RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.RemoteAddr = "127.0.0.1:12345"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/nowhere", fields["path"])
	assert.Equal(t, int64(404), fields["status"])
	assert.Equal(t, int64(7), fields["bytes"])
	assert.Equal(t, "127.0.0.1", fields["remote_addr"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRecoverer(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	serverError := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "500 page", http.StatusInternalServerError)
	})
	handler := Recoverer(zap.New(core), serverError)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("Nope!")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/epic-fail", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "500 page")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Nope!", logs.All()[0].ContextMap()["panic"])
}

func TestSessions_ConsumesFlashOnce(t *testing.T) {
	store := newTestStore()

	setFlash := Sessions(store, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r.Context())
		session.SetFlash(s, models.NewFlash(models.FlashInfo, "Hi", "there"))
		require.NoError(t, s.Save(r, w))
	}))
	var flash *models.Flash
	readFlash := Sessions(store, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flash = GetFlash(r.Context())
		assert.NotEmpty(t, GetCSRFToken(r.Context()))
	}))

	rec := httptest.NewRecorder()
	setFlash.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	rec2 := httptest.NewRecorder()
	readFlash.ServeHTTP(rec2, cookiesFrom(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	require.NotNil(t, flash)
	assert.Equal(t, "Hi", flash.Intro)

	readFlash.ServeHTTP(httptest.NewRecorder(), cookiesFrom(rec2, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Nil(t, flash)
}

func TestSessions_InvalidCookie(t *testing.T) {
	handler := Sessions(newTestStore(), zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, GetSession(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.Name, Value: "garbage"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRFProtection(t *testing.T) {
	store := newTestStore()
	handler := Sessions(store, zap.NewNop())(CSRFProtection(zap.NewNop())(okHandler))

	// first visit issues the token
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	s, err := session.Get(store, cookiesFrom(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	require.NoError(t, err)
	token, _ := session.CSRFToken(s)

	tests := []struct {
		name       string
		token      string
		header     bool
		xhr        bool
		wantStatus int
	}{
		{name: "form token", token: token, wantStatus: http.StatusOK},
		{name: "header token", token: token, header: true, wantStatus: http.StatusOK},
		{name: "missing token", wantStatus: http.StatusForbidden},
		{name: "wrong token", token: "wrong", wantStatus: http.StatusForbidden},
		{name: "wrong token xhr", token: "wrong", xhr: true, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			if !tt.header {
				form.Set("csrf_token", tt.token)
			}
			req := httptest.NewRequest(http.MethodPost, "/newsletter", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.header {
				req.Header.Set("X-CSRF-Token", tt.token)
			}
			if tt.xhr {
				req.Header.Set("X-Requested-With", "XMLHttpRequest")
			}

			rec2 := httptest.NewRecorder()
			handler.ServeHTTP(rec2, cookiesFrom(rec, req))
			assert.Equal(t, tt.wantStatus, rec2.Code)
			if tt.xhr {
				assert.JSONEq(t, `{"error":"Security token mismatch. Please refresh the page and try again."}`, rec2.Body.String())
			}
		})
	}
}

func TestCSRFProtection_BodyTooLarge(t *testing.T) {
	store := newTestStore()
	handler := Sessions(store, zap.NewNop())(CSRFProtection(zap.NewNop())(okHandler))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	form := url.Values{"csrf_token": {"irrelevant"}, "name": {strings.Repeat("x", 2048)}}
	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	limited := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(limited, req.Body, 512)

	handler.ServeHTTP(limited, cookiesFrom(rec, req))
	assert.Equal(t, http.StatusRequestEntityTooLarge, limited.Code)
}

func TestShowTests(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		query      string
		want       bool
	}{
		{name: "requested in development", query: "?test=1", want: true},
		{name: "not requested", query: "", want: false},
		{name: "requested in production", production: true, query: "?test=1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bool
			handler := ShowTests(tt.production)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ShowTestsEnabled(r.Context())
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(NewIPRateLimiter(1, 2))(okHandler)

	post := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/newsletter", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post("10.0.0.1"))
	assert.Equal(t, http.StatusOK, post("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, post("10.0.0.1"))
	assert.Equal(t, http.StatusOK, post("10.0.0.2"), "other clients keep their own bucket")

	rec := httptest.NewRecorder()
	get := httptest.NewRequest(http.MethodGet, "/", nil)
	get.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(rec, get)
	assert.Equal(t, http.StatusOK, rec.Code, "reads are never limited")
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	l := NewIPRateLimiter(60, 1)
	l.Allow("10.0.0.1")
	assert.Zero(t, l.Cleanup())

	l.ttl = -time.Second
	assert.Equal(t, 1, l.Cleanup())
}

func TestAdminHost(t *testing.T) {
	admin := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("admin")) })
	handler := AdminHost(admin)(okHandler)

	tests := map[string]string{
		"admin.meadowlark.local:3000": "admin",
		"admin.localhost":             "admin",
		"ADMIN.example.com":           "admin",
		"meadowlark.local:3000":       "ok",
		"administrator.example.com":   "ok",
	}
	for host, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = host
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Body.String(), host)
	}
}

func TestAPICORS(t *testing.T) {
	handler := APICORS()(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/tours", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}

type stubCartService struct {
	validated int
}

func (s *stubCartService) Add(ctx context.Context, cart *models.Cart, sku string, guests int) (*models.Cart, error) {
	return cart, nil
}

func (s *stubCartService) Checkout(ctx context.Context, cart *models.Cart, name, email string) (<-chan services.NotificationResult, error) {
	return nil, nil
}

func (s *stubCartService) Hydrate(ctx context.Context, cart *models.Cart) error {
	return nil
}

func (s *stubCartService) Validate(ctx context.Context, cart *models.Cart) error {
	s.validated++
	cart.Warnings = []string{"checked"}
	return nil
}

func (s *stubCartService) Total(cart *models.Cart, currency models.Currency) float64 { return 0 }

func (s *stubCartService) Convert(priceInCents int, currency models.Currency) float64 { return 0 }

func TestCartValidation(t *testing.T) {
	store := newTestStore()
	carts := &stubCartService{}

	var got *models.Cart
	handler := Sessions(store, zap.NewNop())(CartValidation(carts, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetCart(r.Context())
		if r.URL.Path == "/seed" {
			s := GetSession(r.Context())
			require.NoError(t, session.SetCart(s, &models.Cart{Items: []models.CartItem{{SKU: "723", Guests: 1}}}))
			require.NoError(t, s.Save(r, w))
		}
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/seed", nil))
	assert.Nil(t, got)
	assert.Zero(t, carts.validated)

	handler.ServeHTTP(httptest.NewRecorder(), cookiesFrom(rec, httptest.NewRequest(http.MethodGet, "/cart", nil)))
	require.NotNil(t, got)
	assert.Equal(t, 1, carts.validated)
	assert.Equal(t, []string{"checked"}, got.Warnings)
}

func TestAcceptsJSON(t *testing.T) {
	tests := map[string]bool{
		"":                                  false,
		"application/json":                  true,
		"text/html,application/json":        false,
		"application/json, text/plain, */*": true,
		"text/html":                         false,
	}
	for accept, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", accept)
		assert.Equal(t, want, AcceptsJSON(req), accept)
	}
}
