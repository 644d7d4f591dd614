package handlers

import (
	"net/http"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/services"
	"travel-booking-platform/web/templates/pages"
)

// NewsletterHandler handles newsletter signup requests
type NewsletterHandler struct {
	*Base
	newsletter services.NewsletterServiceInterface
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(base *Base, newsletter services.NewsletterServiceInterface) *NewsletterHandler {
	return &NewsletterHandler{Base: base, newsletter: newsletter}
}

// SignupPage renders the plain signup form
func (h *NewsletterHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.Newsletter(h.page(r, "Newsletter")))
}

// SignupAjaxPage renders the script driven signup form
func (h *NewsletterHandler) SignupAjaxPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.NewsletterAjax(h.page(r, "Newsletter")))
}

// Archive renders the newsletter archive with the subscriber count
func (h *NewsletterHandler) Archive(w http.ResponseWriter, r *http.Request) {
	signups, err := h.newsletter.Signups(r.Context())
	if err != nil {
		h.logError(r, "failed to list newsletter signups", err)
		signups = nil
	}
	h.render(w, r, http.StatusOK, pages.NewsletterArchive(h.page(r, "Newsletter Archive"), len(signups)))
}

// Subscribe stores a signup. Script requests get JSON; browsers get a flash and
// a redirect to the archive.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.NewsletterRequest
	if err := decodeForm(r, &req); err != nil {
		h.subscribeFailed(w, r, "Invalid name email address.",
			models.NewFlash(models.FlashDanger, "Validation error!", "The email address you entered was not valid."))
		return
	}

	_, err := h.newsletter.Subscribe(r.Context(), req.Name, req.Email)
	switch {
	case err == nil:
	case models.IsValidation(err):
		h.subscribeFailed(w, r, "Invalid name email address.",
			models.NewFlash(models.FlashDanger, "Validation error!", "The email address you entered was not valid."))
		return
	default:
		h.logError(r, "failed to store newsletter signup", err)
		h.subscribeFailed(w, r, "Database error.",
			models.NewFlash(models.FlashDanger, "Database error!", "There was a database error; please try again later."))
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, models.APIResponse{Success: true})
		return
	}
	h.redirectWithFlash(w, r, "/newsletter/archive",
		models.NewFlash(models.FlashSuccess, "Thank you!", "You have now been signed up for the newsletter."))
}

func (h *NewsletterHandler) subscribeFailed(w http.ResponseWriter, r *http.Request, jsonError string, flash *models.Flash) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, models.APIResponse{Error: jsonError})
		return
	}
	h.redirectWithFlash(w, r, "/newsletter/archive", flash)
}
