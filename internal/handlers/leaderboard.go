package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

type leaderboardParams struct {
	Limit int `validate:"min=1,max=500"`
	Top   int `validate:"min=1,max=100"`
	Days  int `validate:"min=2,max=366"`
}

// GetLeaderboard returns the board on a given day, ranked by score.
// Cutoff is on by default and hides high-deviation players whenever at
// least one player sits under the deviation line.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date, err := parseDate(r.URL.Query().Get("date"), h.defaultDate())
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid date")
		return
	}

	params := leaderboardParams{Limit: 50, Top: 1, Days: 2}
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			params.Limit = parsed
		}
	}
	if err := h.validator.Struct(params); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "limit out of range")
		return
	}
	cutoff := r.URL.Query().Get("cutoff") != "false"

	cacheKey := fmt.Sprintf("lb:%d:%d:%t", date, params.Limit, cutoff)
	if h.redis != nil {
		if cached, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	board, err := h.leaderboard.Leaderboard(ctx, date, params.Limit, cutoff)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	body := map[string]interface{}{
		"date":    date,
		"cutoff":  cutoff,
		"players": board,
	}
	if h.redis != nil {
		if raw, err := json.Marshal(body); err == nil {
			h.redis.Set(ctx, cacheKey, raw, h.cacheTTL)
		}
	}
	h.jsonResponse(w, http.StatusOK, body)
}

// GetLeaderboardHistory returns the score series of the top players over
// the days leading up to a date.
func (h *Handler) GetLeaderboardHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date, err := parseDate(r.URL.Query().Get("date"), h.defaultDate())
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid date")
		return
	}

	params := leaderboardParams{Limit: 1, Top: 10, Days: 30}
	if t := r.URL.Query().Get("top"); t != "" {
		if parsed, err := strconv.Atoi(t); err == nil {
			params.Top = parsed
		}
	}
	if d := r.URL.Query().Get("days"); d != "" {
		if parsed, err := strconv.Atoi(d); err == nil {
			params.Days = parsed
		}
	}
	if err := h.validator.Struct(params); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "top or days out of range")
		return
	}

	series, err := h.leaderboard.History(ctx, date, params.Top, params.Days)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"date":   date,
		"days":   params.Days,
		"series": series,
	})
}

// GetTOTM returns the top-of-the-month table for one calendar month.
func (h *Handler) GetTOTM(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid month")
		return
	}

	report, err := h.leaderboard.TOTM(r.Context(), year, month)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}

// GetRankHistory returns how long each player has held a leaderboard
// rank. above=true also counts days at better ranks.
func (h *Handler) GetRankHistory(w http.ResponseWriter, r *http.Request) {
	rank := 1
	if v := r.URL.Query().Get("rank"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			h.errorResponse(w, http.StatusBadRequest, "invalid rank")
			return
		}
		rank = parsed
	}
	includeAbove := r.URL.Query().Get("above") == "true"

	entries, err := h.leaderboard.RankHistory(r.Context(), rank, includeAbove)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"rank":    rank,
		"above":   includeAbove,
		"players": entries,
	})
}
