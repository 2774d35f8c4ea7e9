package handlers

import (
	"net/http"
)

// GetCompare puts two players side by side on one date, with mutual win
// chances.
func (h *Handler) GetCompare(w http.ResponseWriter, r *http.Request) {
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if a == "" || b == "" {
		h.errorResponse(w, http.StatusBadRequest, "both a and b players are required")
		return
	}

	date, err := parseDate(r.URL.Query().Get("date"), h.defaultDate())
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid date")
		return
	}

	report, err := h.compare.Compare(r.Context(), a, b, date)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}

// GetMatchup tallies every round two players shared.
func (h *Handler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if a == "" || b == "" {
		h.errorResponse(w, http.StatusBadRequest, "both a and b players are required")
		return
	}

	report, err := h.compare.Matchup(r.Context(), a, b)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}
