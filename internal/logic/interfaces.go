package logic

import (
	"context"
	"errors"

	"github.com/twowcentral/glicko-api/internal/dataset"
	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/models"
	"github.com/twowcentral/glicko-api/internal/worker"
)

// Sentinel errors the handlers translate into HTTP status codes.
var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrSeasonNotFound  = errors.New("season not found")
	ErrRoundNotFound   = errors.New("round not found")
	ErrNoSharedRounds  = errors.New("players share no rounds")
	ErrNoData          = errors.New("no data for the requested range")
	ErrMonthOutOfRange = errors.New("month outside dataset range")
)

// Ratings defines the interface for the historical rating store
type Ratings interface {
	Players() []string
	Archive() *dataset.Archive
	Resolve(name string) (string, bool)
	StartDate(name string) (dateid.Date, bool)
	PlayerInfo(name string, date dateid.Date, scaled bool) (models.StatLine, bool)
	PlayerRank(name string, date dateid.Date) (int, bool)
	Leaderboard(date dateid.Date, limit int, cutoff bool) []models.LeaderboardEntry
	AllSeasons() []string
	IsValidSeason(season string) (string, bool)
	SeasonRounds(season string) ([]models.RoundSummary, bool)
	SeasonInfo(season string) (models.SeasonInfo, bool)
	RoundInfo(season string, number int) (*models.RoundRanking, bool)
}

// SeriesExtractor defines the interface for the stat-series worker pool
type SeriesExtractor interface {
	Extract(ctx context.Context, jobs []worker.Job) ([]worker.Result, error)
}

// PlayerService answers single-player queries
type PlayerService interface {
	Snapshot(ctx context.Context, name string, date dateid.Date, scaled bool) (*models.PlayerSnapshot, error)
	Profile(ctx context.Context, name string, from, to *dateid.Partial, roundPrefix string) (*models.ProfileReport, error)
	Finales(ctx context.Context, name string) (*models.FinaleReport, error)
	Wins(ctx context.Context, name string) (*models.WinsReport, error)
	Series(ctx context.Context, name string, stat models.StatKind, from, to dateid.Date) (*models.PlayerSeries, error)
}

// CompareService answers two-player queries
type CompareService interface {
	Compare(ctx context.Context, nameA, nameB string, date dateid.Date) (*models.CompareReport, error)
	Matchup(ctx context.Context, nameA, nameB string) (*models.MatchupReport, error)
}

// SeasonService answers season and round queries
type SeasonService interface {
	Seasons(ctx context.Context) ([]models.SeasonInfo, error)
	Season(ctx context.Context, name string) (*models.SeasonDetail, error)
	Round(ctx context.Context, season string, number int) (*models.RoundDetail, error)
}

// LeaderboardService answers board-wide queries
type LeaderboardService interface {
	Leaderboard(ctx context.Context, date dateid.Date, limit int, cutoff bool) ([]models.LeaderboardEntry, error)
	History(ctx context.Context, date dateid.Date, top, days int) ([]models.PlayerSeries, error)
	TOTM(ctx context.Context, year, month int) (*models.TOTMReport, error)
	RankHistory(ctx context.Context, rank int, includeAbove bool) ([]models.RankHistoryEntry, error)
}
