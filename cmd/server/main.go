package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/twowcentral/glicko-api/internal/config"
	"github.com/twowcentral/glicko-api/internal/dataset"
	"github.com/twowcentral/glicko-api/internal/handlers"
	"github.com/twowcentral/glicko-api/internal/logic"
	"github.com/twowcentral/glicko-api/internal/store"
	"github.com/twowcentral/glicko-api/internal/worker"
)

func main() {
	// Missing .env is fine in production; everything comes from real env.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	arc, err := dataset.Load(ctx, cfg.DataDir, logger)
	if err != nil {
		log.Fatalw("loading dataset", "dir", cfg.DataDir, "error", err)
	}
	minDate, maxDate := arc.Bounds()
	log.Infow("dataset loaded",
		"players", len(arc.Names),
		"months", arc.MonthCount(),
		"from", minDate,
		"to", maxDate,
	)

	ratings := store.New(arc, logger)

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount: cfg.WorkerCount,
		QueueSize:   cfg.QueueSize,
		Source:      ratings,
		Logger:      logger,
	})
	pool.Start(ctx)
	defer pool.Stop()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalw("parsing redis url", "error", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warnw("redis unreachable, caching disabled", "error", err)
			redisClient = nil
		}
	}

	h := handlers.New(handlers.Config{
		WorkerPool:  pool,
		Store:       ratings,
		Redis:       redisClient,
		CacheTTL:    cfg.CacheTTL,
		Logger:      logger,
		Players:     logic.NewPlayerService(ratings, pool),
		Compare:     logic.NewCompareService(ratings),
		Seasons:     logic.NewSeasonService(ratings),
		Leaderboard: logic.NewLeaderboardService(ratings, pool),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handlers.NewRouter(h, cfg.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infow("server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server error", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown", "error", err)
	}
}
