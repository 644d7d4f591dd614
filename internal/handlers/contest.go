package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/services"
	"travel-booking-platform/web/templates/pages"
)

// ContestHandler handles the vacation photo contest
type ContestHandler struct {
	*Base
	contest services.ContestServiceInterface
	now     func() time.Time
}

// NewContestHandler creates a new contest handler
func NewContestHandler(base *Base, contest services.ContestServiceInterface) *ContestHandler {
	return &ContestHandler{Base: base, contest: contest, now: time.Now}
}

// Form renders the upload form for the current year and month
func (h *ContestHandler) Form(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	h.render(w, r, http.StatusOK, pages.ContestVacationPhoto(h.page(r, "Vacation Photo Contest"), now.Year(), int(now.Month())))
}

// Submit stores an uploaded contest photo
func (h *ContestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	year, yearErr := strconv.Atoi(chi.URLParam(r, "year"))
	month, monthErr := strconv.Atoi(chi.URLParam(r, "month"))
	if yearErr != nil || monthErr != nil {
		h.submitFailed(w, r)
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		h.submitFailed(w, r)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		h.submitFailed(w, r)
		return
	}
	defer file.Close()

	_, err = h.contest.Submit(r.Context(), &services.ContestSubmission{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Year:        year,
		Month:       month,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Photo:       file,
	})
	if err != nil {
		if !models.IsValidation(err) {
			h.logError(r, "failed to store contest entry", err)
		}
		h.submitFailed(w, r)
		return
	}

	h.redirectWithFlash(w, r, "/contest/vacation-photo/entries",
		models.NewFlash(models.FlashSuccess, "Good Luck", "You have been entered into the contest."))
}

func (h *ContestHandler) submitFailed(w http.ResponseWriter, r *http.Request) {
	h.redirectWithFlash(w, r, "/contest/vacation-photo", models.NewFlash(models.FlashDanger, "Oops!",
		"There was an error processing your submission. Please try again."))
}

// Entries lists the contest entries, newest first
func (h *ContestHandler) Entries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.contest.Entries(r.Context())
	if err != nil {
		h.logError(r, "failed to list contest entries", err)
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}

	h.render(w, r, http.StatusOK, pages.ContestEntries(h.page(r, "Contest Entries"), entries))
}
