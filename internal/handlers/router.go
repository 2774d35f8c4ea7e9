package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the full route tree.
func NewRouter(h *Handler, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(h.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/players/{name}", func(r chi.Router) {
			r.Get("/", h.GetPlayer)
			r.Get("/profile", h.GetProfile)
			r.Get("/finales", h.GetFinales)
			r.Get("/wins", h.GetWins)
			r.Get("/series", h.GetSeries)
		})

		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/", h.GetLeaderboard)
			r.Get("/history", h.GetLeaderboardHistory)
			r.Get("/totm", h.GetTOTM)
			r.Get("/rankhistory", h.GetRankHistory)
		})

		r.Get("/compare", h.GetCompare)
		r.Get("/matchup", h.GetMatchup)

		r.Route("/seasons", func(r chi.Router) {
			r.Get("/", h.ListSeasons)
			r.Route("/{season}", func(r chi.Router) {
				r.Get("/", h.GetSeason)
				r.Get("/rounds/{number}", h.GetRound)
			})
		})
	})

	return r
}
