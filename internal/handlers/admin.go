package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"travel-booking-platform/internal/middleware"
	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
	"travel-booking-platform/internal/services"
	"travel-booking-platform/web/templates/pages"
)

// AdminHandler serves the admin subdomain
type AdminHandler struct {
	*Base
	products   repositories.ProductRepository
	newsletter services.NewsletterServiceInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(base *Base, products repositories.ProductRepository, newsletter services.NewsletterServiceInterface) *AdminHandler {
	return &AdminHandler{Base: base, products: products, newsletter: newsletter}
}

// Home lists every product with its season and sales
func (h *AdminHandler) Home(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Find(r.Context(), models.ProductFilter{})
	if err != nil {
		h.logError(r, "failed to list products", err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	h.render(w, r, http.StatusOK, pages.AdminHome(middleware.GetCSRFToken(r.Context()), products))
}

// SetSeason marks a product in or out of season. Listeners waiting on it are
// emailed by the next in-season job run.
func (h *AdminHandler) SetSeason(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	var req models.SeasonRequest
	if err := decodeForm(r, &req); err != nil {
		http.Error(w, "Invalid season", http.StatusBadRequest)
		return
	}

	if err := h.products.SetInSeason(r.Context(), sku, req.InSeason); err != nil {
		if models.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.logError(r, "failed to update product season", err)
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}

	h.logger.Info("product season changed",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("sku", sku),
		zap.Bool("in_season", req.InSeason))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Users lists the newsletter subscribers
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	signups, err := h.newsletter.Signups(r.Context())
	if err != nil {
		h.logError(r, "failed to list newsletter signups", err)
		http.Error(w, "Failed to load users", http.StatusInternalServerError)
		return
	}

	h.render(w, r, http.StatusOK, pages.AdminUsers(signups))
}

// NotFound answers unknown admin paths
func (h *AdminHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "404 - Not Found", http.StatusNotFound)
}
