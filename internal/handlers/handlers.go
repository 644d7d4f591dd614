package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/schema"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"travel-booking-platform/internal/middleware"
	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/services"
	"travel-booking-platform/internal/session"
	"travel-booking-platform/web/templates/components"
)

// maxFormMemory bounds the multipart data kept in memory while parsing uploads
const maxFormMemory = 10 << 20

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}

// Base holds what every page handler needs to answer a request
type Base struct {
	weather *services.WeatherService
	logger  *zap.Logger
}

// NewBase creates the shared rendering and session helpers
func NewBase(weather *services.WeatherService, logger *zap.Logger) *Base {
	return &Base{weather: weather, logger: logger}
}

// page collects the per-request layout values put in context by the middleware chain
func (b *Base) page(r *http.Request, title string) components.Page {
	ctx := r.Context()
	return components.Page{
		Title:     title,
		Flash:     middleware.GetFlash(ctx),
		CSRFToken: middleware.GetCSRFToken(ctx),
		ShowTests: middleware.ShowTestsEnabled(ctx),
		Weather:   b.weather.Locations(),
		Cart:      middleware.GetCart(ctx),
	}
}

// render buffers the component so a template error can still become a 500
func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		b.logger.Error("failed to render page",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirectWithFlash stores the flash for the next page and answers 303 See Other
func (b *Base) redirectWithFlash(w http.ResponseWriter, r *http.Request, url string, flash *models.Flash) {
	if s := middleware.GetSession(r.Context()); s != nil {
		session.SetFlash(s, flash)
		b.saveSession(w, r, s)
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func (b *Base) saveSession(w http.ResponseWriter, r *http.Request, s *sessions.Session) {
	if err := s.Save(r, w); err != nil {
		b.logger.Error("failed to save session",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
	}
}

// logError logs an unexpected error for the current request
func (b *Base) logError(r *http.Request, msg string, err error) {
	b.logger.Error(msg,
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
}

// currency returns the visitor's selected currency
func currency(r *http.Request) models.Currency {
	if s := middleware.GetSession(r.Context()); s != nil {
		return session.GetCurrency(s)
	}
	return models.DefaultCurrency
}

// decodeForm parses url-encoded or multipart bodies into dst using its schema tags
func decodeForm(r *http.Request, dst interface{}) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return err
		}
	} else if err := r.ParseForm(); err != nil {
		return err
	}
	return formDecoder.Decode(dst, r.PostForm)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// wantsJSON reports whether a form post came from script or asked for JSON
func wantsJSON(r *http.Request) bool {
	return middleware.IsXHR(r) || middleware.AcceptsJSON(r)
}
