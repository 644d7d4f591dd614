package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"travel-booking-platform/internal/middleware"
	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/services"
	"travel-booking-platform/internal/session"
	"travel-booking-platform/web/templates/pages"
)

// VacationHandler handles vacation browsing, purchase and in-season notification requests
type VacationHandler struct {
	*Base
	catalog  services.CatalogServiceInterface
	notFound http.HandlerFunc
}

// NewVacationHandler creates a new vacation handler
func NewVacationHandler(base *Base, catalog services.CatalogServiceInterface, notFound http.HandlerFunc) *VacationHandler {
	return &VacationHandler{Base: base, catalog: catalog, notFound: notFound}
}

// List renders the available vacations priced in the visitor's currency
func (h *VacationHandler) List(w http.ResponseWriter, r *http.Request) {
	selected := currency(r)

	vacations, err := h.catalog.ListVacations(r.Context(), selected)
	if err != nil {
		h.logError(r, "failed to list vacations", err)
		http.Error(w, "Failed to load vacations", http.StatusInternalServerError)
		return
	}

	h.render(w, r, http.StatusOK, pages.Vacations(h.page(r, "Vacations"), pages.VacationsView{
		Vacations:  vacations,
		Currency:   selected,
		Currencies: models.SupportedCurrencies(),
	}))
}

// Purchase books one package of the posted SKU
func (h *VacationHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseRequest
	err := decodeForm(r, &req)
	if err == nil {
		err = models.ValidateRequest(&req)
	}
	if err == nil {
		_, err = h.catalog.Purchase(r.Context(), req.PurchaseSKU)
	}
	if err != nil {
		if !models.IsValidation(err) && !models.IsNotFound(err) {
			h.logError(r, "failed to record purchase", err)
		}
		h.redirectWithFlash(w, r, "/vacations", models.NewFlash(models.FlashWarning, "Ooops!",
			"Something went wrong with your reservation; please contact us."))
		return
	}

	h.redirectWithFlash(w, r, "/vacations", models.NewFlash(models.FlashSuccess, "Thank you!",
		"Your vacation has been booked."))
}

// Detail renders one vacation by slug. Slugs may contain slashes.
func (h *VacationHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(chi.URLParam(r, "*"), "/")

	vacation, err := h.catalog.GetVacation(r.Context(), slug, currency(r))
	if err != nil {
		if models.IsNotFound(err) {
			h.notFound(w, r)
			return
		}
		h.logError(r, "failed to load vacation", err)
		http.Error(w, "Failed to load vacation", http.StatusInternalServerError)
		return
	}

	h.render(w, r, http.StatusOK, pages.Vacation(h.page(r, vacation.Name), vacation))
}

// SetCurrency stores the visitor's currency when it is supported
func (h *VacationHandler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	selected, err := models.ParseCurrency(chi.URLParam(r, "currency"))
	if err != nil {
		h.redirectWithFlash(w, r, "/vacations", models.NewFlash(models.FlashWarning, "Ooops!",
			"We don't support that currency."))
		return
	}

	if s := middleware.GetSession(r.Context()); s != nil {
		session.SetCurrency(s, selected)
		h.saveSession(w, r, s)
	}
	http.Redirect(w, r, "/vacations", http.StatusSeeOther)
}

// NotifyForm renders the in-season notification form for ?sku=
func (h *VacationHandler) NotifyForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.NotifyMeWhenInSeason(h.page(r, "Notify Me"), r.URL.Query().Get("sku")))
}

// Notify registers the email to hear when the SKU comes into season
func (h *VacationHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var req models.NotifyRequest
	err := decodeForm(r, &req)
	if err == nil {
		err = h.catalog.NotifyWhenInSeason(r.Context(), req.Email, req.SKU)
	}
	if err != nil {
		if !models.IsValidation(err) && !models.IsNotFound(err) {
			h.logError(r, "failed to register in-season listener", err)
		}
		h.redirectWithFlash(w, r, "/vacations", models.NewFlash(models.FlashDanger, "Ooops!",
			"There was an error processing your request."))
		return
	}

	h.redirectWithFlash(w, r, "/vacations", models.NewFlash(models.FlashSuccess, "Thank you!",
		"You will be notified when this vacation is in season."))
}
