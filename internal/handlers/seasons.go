package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ListSeasons returns every season with its rated-round summary.
func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.seasons.Seasons(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"count":   len(seasons),
		"seasons": seasons,
	})
}

// GetSeason returns one season's summary and round listing.
func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	detail, err := h.seasons.Season(r.Context(), chi.URLParam(r, "season"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, detail)
}

// GetRound returns the full performance table for one round of a season.
func (h *Handler) GetRound(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number < 1 {
		h.errorResponse(w, http.StatusBadRequest, "invalid round number")
		return
	}

	detail, err := h.seasons.Round(r.Context(), chi.URLParam(r, "season"), number)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, detail)
}
