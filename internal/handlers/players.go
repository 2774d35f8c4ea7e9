package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/twowcentral/glicko-api/internal/models"
)

// GetPlayer returns a player's stat line, rank, and start date on a
// given day. Defaults to the latest day and display scale; raw=true
// switches to the unscaled system.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	date, err := parseDate(r.URL.Query().Get("date"), h.defaultDate())
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid date")
		return
	}
	scaled := r.URL.Query().Get("raw") != "true"

	snapshot, err := h.players.Snapshot(ctx, name, date, scaled)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, snapshot)
}

// GetProfile returns a player's round history over a time range. The
// from and to parameters accept partial dates ("2019", "2019-05"); the
// round parameter filters rounds by name prefix.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	from, err := parsePartial(r.URL.Query().Get("from"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := parsePartial(r.URL.Query().Get("to"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid to date")
		return
	}
	if from == nil && to != nil {
		from, to = to, nil
	}

	report, err := h.players.Profile(ctx, name, from, to, r.URL.Query().Get("round"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}

// GetFinales returns a player's record in two-player rounds.
func (h *Handler) GetFinales(w http.ResponseWriter, r *http.Request) {
	report, err := h.players.Finales(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}

// GetWins returns the rounds a player finished first in.
func (h *Handler) GetWins(w http.ResponseWriter, r *http.Request) {
	report, err := h.players.Wins(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}

// GetSeries returns one stat of one player as a day-by-day series.
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	stat, ok := models.ParseStatKind(r.URL.Query().Get("stat"))
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "unknown stat")
		return
	}

	minDate, maxDate := h.store.Archive().Bounds()
	from, err := parseDate(r.URL.Query().Get("from"), minDate)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"), maxDate)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid to date")
		return
	}

	series, err := h.players.Series(ctx, name, stat, from, to)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, series)
}
