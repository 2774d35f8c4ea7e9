package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/glicko"
	"github.com/twowcentral/glicko-api/internal/logic"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID tags every request with a UUID for log correlation.
func (h *Handler) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{}
	if h.redis != nil {
		checks["redis"] = h.redis.Ping(ctx).Err() == nil
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":      allHealthy,
		"checks":     checks,
		"queueDepth": h.pool.QueueDepth(),
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps service-layer sentinels onto status codes.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, logic.ErrPlayerNotFound),
		errors.Is(err, logic.ErrSeasonNotFound),
		errors.Is(err, logic.ErrRoundNotFound):
		h.errorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrNoData),
		errors.Is(err, logic.ErrNoSharedRounds),
		errors.Is(err, logic.ErrMonthOutOfRange):
		h.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
	default:
		var invalid *dateid.InvalidDateError
		var domain *glicko.DomainError
		if errors.As(err, &invalid) || errors.As(err, &domain) {
			h.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Errorw("request failed",
			"path", r.URL.Path,
			"error", err,
		)
		h.errorResponse(w, http.StatusInternalServerError, "internal error")
	}
}

// defaultDate is the most recent day the dataset covers, used when a
// request leaves the date out.
func (h *Handler) defaultDate() dateid.Date {
	_, max := h.store.Archive().Bounds()
	return max
}

// parseDate accepts either the compact YYMMDD identifier or an ISO
// YYYY-MM-DD string. Empty input yields the fallback.
func parseDate(s string, fallback dateid.Date) (dateid.Date, error) {
	if s == "" {
		return fallback, nil
	}
	if len(s) == 6 && !strings.Contains(s, "-") {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, &dateid.InvalidDateError{}
		}
		d := dateid.Date(v)
		if _, err := d.Time(); err != nil {
			return 0, err
		}
		return d, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, &dateid.InvalidDateError{}
	}
	return dateid.FromTime(t), nil
}

// parsePartial reads "2019", "2019-05", or "2019-05-20" into a partial
// date. Empty input yields nil.
func parsePartial(s string) (*dateid.Partial, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.SplitN(s, "-", 3)
	if len(parts) > 0 && len(parts[0]) == 6 && len(parts) == 1 {
		d, err := parseDate(s, 0)
		if err != nil {
			return nil, err
		}
		y, m, day := d.YMD()
		return &dateid.Partial{Year: y, Month: m, Day: day}, nil
	}

	var p dateid.Partial
	fields := []*int{&p.Year, &p.Month, &p.Day}
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, &dateid.InvalidDateError{}
		}
		*fields[i] = v
	}
	return &p, nil
}
