package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"travel-booking-platform/internal/middleware"
	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
)

const noSuchTour = "No such tour exists"

// APIHandler serves the public tours API
type APIHandler struct {
	tours  *repositories.TourRepository
	logger *zap.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(tours *repositories.TourRepository, logger *zap.Logger) *APIHandler {
	return &APIHandler{tours: tours, logger: logger}
}

type toursXML struct {
	XMLName xml.Name       `xml:"tours"`
	Tours   []*models.Tour `xml:"tour"`
}

// Tours lists the tours as JSON, XML or plain text depending on the Accept header
func (h *APIHandler) Tours(w http.ResponseWriter, r *http.Request) {
	tours := h.tours.List()

	switch negotiate(r.Header.Get("Accept"), "application/json", "application/xml", "text/xml", "text/plain") {
	case "application/xml", "text/xml":
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = xml.NewEncoder(w).Encode(toursXML{Tours: tours})
	case "text/plain":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		lines := make([]string, 0, len(tours))
		for _, t := range tours {
			lines = append(lines, fmt.Sprintf("%d: %s (%s)", t.ID, t.Name, strconv.FormatFloat(t.Price, 'f', -1, 64)))
		}
		_, _ = w.Write([]byte(strings.Join(lines, "\n")))
	default:
		writeJSON(w, http.StatusOK, tours)
	}
}

// UpdateTour sets the name and price from the query string and returns every tour
func (h *APIHandler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusOK, models.APIResponse{Error: noSuchTour})
		return
	}

	var req models.TourUpdateRequest
	if err := formDecoder.Decode(&req, r.URL.Query()); err != nil {
		writeJSON(w, http.StatusBadRequest, models.APIResponse{Error: "Invalid tour name or price"})
		return
	}
	if err := models.ValidateRequest(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.APIResponse{Error: err.Error()})
		return
	}

	if _, err := h.tours.Update(id, req.Name, req.Price); err != nil {
		writeJSON(w, http.StatusOK, models.APIResponse{Error: noSuchTour})
		return
	}

	h.logger.Info("tour updated",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Int("id", id))
	writeJSON(w, http.StatusOK, h.tours.List())
}

// DeleteTour removes the tour with the given id
func (h *APIHandler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err == nil {
		err = h.tours.Delete(id)
	}
	if err != nil {
		writeJSON(w, http.StatusOK, models.APIResponse{Error: noSuchTour})
		return
	}
	writeJSON(w, http.StatusOK, models.APIResponse{Success: true})
}

type acceptRange struct {
	mediaType string
	q         float64
	order     int
}

// negotiate picks the offer best matching the Accept header. An empty header
// or no match selects the first offer.
func negotiate(accept string, offers ...string) string {
	if strings.TrimSpace(accept) == "" {
		return offers[0]
	}

	var ranges []acceptRange
	for i, part := range strings.Split(accept, ",") {
		fields := strings.Split(part, ";")
		ar := acceptRange{mediaType: strings.ToLower(strings.TrimSpace(fields[0])), q: 1, order: i}
		for _, param := range fields[1:] {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if ok && strings.TrimSpace(key) == "q" {
				if q, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
					ar.q = q
				}
			}
		}
		if ar.q > 0 {
			ranges = append(ranges, ar)
		}
	}
	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].q > ranges[j].q })

	for _, ar := range ranges {
		for _, offer := range offers {
			if mediaMatches(ar.mediaType, offer) {
				return offer
			}
		}
	}
	return offers[0]
}

func mediaMatches(pattern, offer string) bool {
	if pattern == "*/*" || pattern == offer {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return strings.HasPrefix(offer, prefix+"/")
	}
	return false
}
