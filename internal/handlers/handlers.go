package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/twowcentral/glicko-api/internal/logic"
)

// SeriesQueue defines the interface for the series worker pool
type SeriesQueue interface {
	QueueDepth() int
}

type Config struct {
	WorkerPool SeriesQueue
	Store      logic.Ratings
	Redis      *redis.Client
	CacheTTL   time.Duration
	Logger     *zap.Logger
	// Services
	Players     logic.PlayerService
	Compare     logic.CompareService
	Seasons     logic.SeasonService
	Leaderboard logic.LeaderboardService
}

type Handler struct {
	pool        SeriesQueue
	store       logic.Ratings
	redis       *redis.Client
	cacheTTL    time.Duration
	logger      *zap.SugaredLogger
	validator   *validator.Validate
	players     logic.PlayerService
	compare     logic.CompareService
	seasons     logic.SeasonService
	leaderboard logic.LeaderboardService
}

func New(cfg Config) *Handler {
	return &Handler{
		pool:        cfg.WorkerPool,
		store:       cfg.Store,
		redis:       cfg.Redis,
		cacheTTL:    cfg.CacheTTL,
		logger:      cfg.Logger.Sugar(),
		validator:   validator.New(),
		players:     cfg.Players,
		compare:     cfg.Compare,
		seasons:     cfg.Seasons,
		leaderboard: cfg.Leaderboard,
	}
}
