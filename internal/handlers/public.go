package handlers

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"travel-booking-platform/internal/middleware"
	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/services"
	"travel-booking-platform/web/templates/components"
	"travel-booking-platform/web/templates/pages"
)

// NurseryRhyme is the fixture served to the nursery rhyme page
type NurseryRhyme struct {
	Animal    string `json:"animal"`
	BodyPart  string `json:"bodyPart"`
	Adjective string `json:"adjective"`
	Noun      string `json:"noun"`
}

// PublicHandler serves the informational pages and error pages
type PublicHandler struct {
	*Base
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(base *Base) *PublicHandler {
	return &PublicHandler{Base: base}
}

// Page returns a handler rendering a page that needs no data
func (h *PublicHandler) Page(title string, page func(components.Page) templ.Component) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, page(h.page(r, title)))
	}
}

// About renders the about page with a random fortune
func (h *PublicHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.About(h.page(r, "About"), services.RandomFortune()))
}

// NurseryRhymeData returns the rhyme fixture as JSON
func (h *PublicHandler) NurseryRhymeData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NurseryRhyme{
		Animal:    "squirrel",
		BodyPart:  "tail",
		Adjective: "bushy",
		Noun:      "heck",
	})
}

// Process accepts the group rate request form
func (h *PublicHandler) Process(w http.ResponseWriter, r *http.Request) {
	h.logFormSubmission(r)
	http.Redirect(w, r, "/thank-you", http.StatusSeeOther)
}

// ProcessAjax answers script submissions with JSON and browsers with a redirect
func (h *PublicHandler) ProcessAjax(w http.ResponseWriter, r *http.Request) {
	if !wantsJSON(r) {
		http.Redirect(w, r, "/thank-you", http.StatusSeeOther)
		return
	}
	h.logFormSubmission(r)
	writeJSON(w, http.StatusOK, models.APIResponse{Success: true})
}

func (h *PublicHandler) logFormSubmission(r *http.Request) {
	h.logger.Info("form submitted",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("form", r.URL.Query().Get("form")),
		zap.String("name", r.FormValue("name")),
		zap.String("email", r.FormValue("email")))
}

// EpicFail panics so the recoverer's 500 page can be exercised
func (h *PublicHandler) EpicFail(w http.ResponseWriter, r *http.Request) {
	panic(errors.New("Kaboom!"))
}

// NotFound renders the 404 page
func (h *PublicHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, pages.NotFound(h.page(r, "Not Found")))
}

// ServerError renders the 500 page
func (h *PublicHandler) ServerError(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusInternalServerError, pages.ServerError(h.page(r, "Server Error")))
}
