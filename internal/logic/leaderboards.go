package logic

import (
	"context"
	"fmt"
	"sort"

	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/glicko"
	"github.com/twowcentral/glicko-api/internal/models"
	"github.com/twowcentral/glicko-api/internal/worker"
)

type leaderboardService struct {
	store Ratings
	pool  SeriesExtractor
}

func NewLeaderboardService(store Ratings, pool SeriesExtractor) LeaderboardService {
	return &leaderboardService{store: store, pool: pool}
}

func (s *leaderboardService) Leaderboard(ctx context.Context, date dateid.Date, limit int, cutoff bool) ([]models.LeaderboardEntry, error) {
	minDate, maxDate := s.store.Archive().Bounds()
	if date < minDate || date > maxDate {
		return nil, fmt.Errorf("%v: %w", date, ErrNoData)
	}
	return s.store.Leaderboard(date, limit, cutoff), nil
}

// History extracts the score series of the board's top players over the
// days leading up to date, fanned out over the worker pool.
func (s *leaderboardService) History(ctx context.Context, date dateid.Date, top, days int) ([]models.PlayerSeries, error) {
	board, err := s.Leaderboard(ctx, date, top, true)
	if err != nil {
		return nil, err
	}
	if len(board) == 0 {
		return nil, fmt.Errorf("%v: %w", date, ErrNoData)
	}

	from, err := date.Add(-(days - 1), 0, 0)
	if err != nil {
		return nil, fmt.Errorf("history window: %w", err)
	}
	if minDate, _ := s.store.Archive().Bounds(); from < minDate {
		from = minDate
	}

	jobs := make([]worker.Job, len(board))
	for i, entry := range board {
		jobs[i] = worker.Job{
			Player: entry.Name,
			Stat:   models.StatScore,
			From:   from,
			To:     date,
		}
	}
	results, err := s.pool.Extract(ctx, jobs)
	if err != nil {
		return nil, fmt.Errorf("extracting board history: %w", err)
	}

	byPlayer := make(map[string][]models.SeriesPoint, len(results))
	for _, r := range results {
		if r.Err != nil {
			return nil, fmt.Errorf("series for %s: %w", r.Player, r.Err)
		}
		byPlayer[r.Player] = r.Points
	}

	out := make([]models.PlayerSeries, len(board))
	for i, entry := range board {
		out[i] = models.PlayerSeries{
			Player: entry.Name,
			Stat:   models.StatScore.String(),
			Points: byPlayer[entry.Name],
		}
	}
	return out, nil
}

func (s *leaderboardService) TOTM(ctx context.Context, year, month int) (*models.TOTMReport, error) {
	first, err := dateid.FromYMD(year, month, 1)
	if err != nil {
		return nil, fmt.Errorf("%d-%02d: %w", year, month, ErrMonthOutOfRange)
	}

	arc := s.store.Archive()
	idx, err := dateid.MonthDiff(first, dateid.MinDate)
	if err != nil || idx < 0 || idx >= len(arc.TOTM) {
		return nil, fmt.Errorf("%d-%02d: %w", year, month, ErrMonthOutOfRange)
	}

	report := &models.TOTMReport{Year: year, Month: month}
	for name, rating := range arc.TOTM[idx] {
		report.Players = append(report.Players, models.TOTMEntry{
			Name:   name,
			Rating: rating * glicko.DisplayScale,
		})
	}
	sort.Slice(report.Players, func(i, j int) bool {
		if report.Players[i].Rating != report.Players[j].Rating {
			return report.Players[i].Rating > report.Players[j].Rating
		}
		return report.Players[i].Name < report.Players[j].Name
	})
	return report, nil
}

// RankHistory counts, per player, the days spent exactly at rank, or at
// rank or better when includeAbove is set. Ratio is against the player's
// own ranked-day count.
func (s *leaderboardService) RankHistory(ctx context.Context, rank int, includeAbove bool) ([]models.RankHistoryEntry, error) {
	if rank < 1 {
		return nil, fmt.Errorf("rank %d: %w", rank, ErrNoData)
	}

	arc := s.store.Archive()
	var entries []models.RankHistoryEntry
	for name, series := range arc.Ranks {
		days := 0
		for _, r := range series.Ranks {
			if r == rank || (includeAbove && r > 0 && r < rank) {
				days++
			}
		}
		if days == 0 {
			continue
		}
		entries = append(entries, models.RankHistoryEntry{
			Name:  name,
			Days:  days,
			Ratio: float64(days) / float64(len(series.Ranks)),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Days != entries[j].Days {
			return entries[i].Days > entries[j].Days
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}
