// Package worker implements the bounded worker pool used for per-player
// series extraction. Graph and leaderboard-history queries walk one day
// at a time across dozens of players; the pool fans those walks out
// across a fixed number of goroutines so a single wide query cannot
// monopolize the process, and exposes its queue depth for readiness
// checks.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/models"
)

// Prometheus metrics
var (
	seriesJobs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glicko_series_jobs_total",
		Help: "Total number of series extraction jobs processed",
	})

	seriesJobsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glicko_series_jobs_failed_total",
		Help: "Total number of series extraction jobs that failed",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "glicko_series_queue_depth",
		Help: "Current depth of the series extraction queue",
	})

	extractDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "glicko_series_extract_duration_seconds",
		Help:    "Duration of single-player series extraction",
		Buckets: prometheus.DefBuckets,
	})
)

// StatsSource is the slice of the store the pool needs: point-in-time
// stat and rank lookups.
type StatsSource interface {
	PlayerInfo(name string, date dateid.Date, scaled bool) (models.StatLine, bool)
	PlayerRank(name string, date dateid.Date) (int, bool)
}

// Job asks for one player's stat series over a day range.
type Job struct {
	Player string
	Stat   models.StatKind
	From   dateid.Date
	To     dateid.Date

	result chan<- Result
}

// Result is one extracted series, keyed by player name.
type Result struct {
	Player string
	Points []models.SeriesPoint
	Err    error
}

// PoolConfig configures the extraction pool.
type PoolConfig struct {
	WorkerCount int
	QueueSize   int
	Source      StatsSource
	Logger      *zap.Logger
}

// Pool manages the extraction workers.
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates an extraction pool.
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	go p.reportQueueDepth()

	p.logger.Infow("series pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
	)
}

// Stop shuts the pool down and waits for the workers to exit. The job
// queue is never closed; a concurrent Extract may still be committing a
// send, and senders bail out on the pool context instead.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
	p.logger.Info("series pool stopped")
}

// QueueDepth returns the number of queued jobs.
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// Extract runs every job on the pool and gathers the results. Result
// order is unspecified; match on Result.Player. Returns early if ctx is
// canceled or the pool is shut down.
func (p *Pool) Extract(ctx context.Context, jobs []Job) ([]Result, error) {
	if p.ctx.Err() != nil {
		return nil, fmt.Errorf("series pool stopped")
	}

	results := make(chan Result, len(jobs))
	for i := range jobs {
		jobs[i].result = results
		select {
		case p.jobQueue <- jobs[i]:
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.ctx.Done():
			return nil, fmt.Errorf("series pool stopped")
		}
	}

	out := make([]Result, 0, len(jobs))
	for range jobs {
		select {
		case r := <-results:
			out = append(out, r)
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.ctx.Done():
			return nil, fmt.Errorf("series pool stopped")
		}
	}
	return out, nil
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job := <-p.jobQueue:
			start := time.Now()
			points, err := p.extract(job)
			extractDuration.Observe(time.Since(start).Seconds())

			seriesJobs.Inc()
			if err != nil {
				seriesJobsFailed.Inc()
				p.logger.Warnw("series extraction failed",
					"worker", id,
					"player", job.Player,
					"error", err,
				)
			}
			job.result <- Result{Player: job.Player, Points: points, Err: err}
		}
	}
}

// extract walks the job's day range one day at a time. Days where the
// player resolves to the default line (not yet active) or has no rank
// are skipped rather than zero-filled.
func (p *Pool) extract(job Job) ([]models.SeriesPoint, error) {
	var points []models.SeriesPoint

	for date := job.From; date <= job.To; {
		switch job.Stat {
		case models.StatRank:
			if rank, ok := p.config.Source.PlayerRank(job.Player, date); ok {
				points = append(points, models.SeriesPoint{Date: date, Value: float64(rank)})
			}
		default:
			line, ok := p.config.Source.PlayerInfo(job.Player, date, true)
			if ok && line != models.DefaultLineScaled {
				points = append(points, models.SeriesPoint{Date: date, Value: statValue(line, job.Stat)})
			}
		}

		next, err := date.Add(1, 0, 0)
		if err != nil {
			return points, fmt.Errorf("advancing past %v: %w", date, err)
		}
		date = next
	}
	return points, nil
}

func statValue(line models.StatLine, stat models.StatKind) float64 {
	switch stat {
	case models.StatRM:
		return line.RM
	case models.StatRD:
		return line.RD
	case models.StatRP:
		return float64(line.RP)
	default:
		return line.Score
	}
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
