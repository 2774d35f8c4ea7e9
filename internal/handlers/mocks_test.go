package handlers

import (
	"context"

	"github.com/twowcentral/glicko-api/internal/dataset"
	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/logic"
	"github.com/twowcentral/glicko-api/internal/models"
)

type mockStore struct{}

func (m *mockStore) Players() []string                    { return nil }
func (m *mockStore) Archive() *dataset.Archive            { return &dataset.Archive{} }
func (m *mockStore) Resolve(string) (string, bool)        { return "", false }
func (m *mockStore) StartDate(string) (dateid.Date, bool) { return 0, false }
func (m *mockStore) PlayerInfo(string, dateid.Date, bool) (models.StatLine, bool) {
	return models.StatLine{}, false
}
func (m *mockStore) PlayerRank(string, dateid.Date) (int, bool) { return 0, false }
func (m *mockStore) Leaderboard(dateid.Date, int, bool) []models.LeaderboardEntry {
	return nil
}
func (m *mockStore) AllSeasons() []string                              { return nil }
func (m *mockStore) IsValidSeason(string) (string, bool)               { return "", false }
func (m *mockStore) SeasonRounds(string) ([]models.RoundSummary, bool) { return nil, false }
func (m *mockStore) SeasonInfo(string) (models.SeasonInfo, bool) {
	return models.SeasonInfo{}, false
}
func (m *mockStore) RoundInfo(string, int) (*models.RoundRanking, bool) { return nil, false }

type mockPool struct{ depth int }

func (m *mockPool) QueueDepth() int { return m.depth }

type mockPlayerService struct {
	SnapshotFunc func(ctx context.Context, name string, date dateid.Date, scaled bool) (*models.PlayerSnapshot, error)
	ProfileFunc  func(ctx context.Context, name string, from, to *dateid.Partial, roundPrefix string) (*models.ProfileReport, error)
	FinalesFunc  func(ctx context.Context, name string) (*models.FinaleReport, error)
	WinsFunc     func(ctx context.Context, name string) (*models.WinsReport, error)
	SeriesFunc   func(ctx context.Context, name string, stat models.StatKind, from, to dateid.Date) (*models.PlayerSeries, error)
}

func (m *mockPlayerService) Snapshot(ctx context.Context, name string, date dateid.Date, scaled bool) (*models.PlayerSnapshot, error) {
	return m.SnapshotFunc(ctx, name, date, scaled)
}
func (m *mockPlayerService) Profile(ctx context.Context, name string, from, to *dateid.Partial, roundPrefix string) (*models.ProfileReport, error) {
	return m.ProfileFunc(ctx, name, from, to, roundPrefix)
}
func (m *mockPlayerService) Finales(ctx context.Context, name string) (*models.FinaleReport, error) {
	return m.FinalesFunc(ctx, name)
}
func (m *mockPlayerService) Wins(ctx context.Context, name string) (*models.WinsReport, error) {
	return m.WinsFunc(ctx, name)
}
func (m *mockPlayerService) Series(ctx context.Context, name string, stat models.StatKind, from, to dateid.Date) (*models.PlayerSeries, error) {
	return m.SeriesFunc(ctx, name, stat, from, to)
}

type mockCompareService struct {
	CompareFunc func(ctx context.Context, nameA, nameB string, date dateid.Date) (*models.CompareReport, error)
	MatchupFunc func(ctx context.Context, nameA, nameB string) (*models.MatchupReport, error)
}

func (m *mockCompareService) Compare(ctx context.Context, nameA, nameB string, date dateid.Date) (*models.CompareReport, error) {
	return m.CompareFunc(ctx, nameA, nameB, date)
}
func (m *mockCompareService) Matchup(ctx context.Context, nameA, nameB string) (*models.MatchupReport, error) {
	return m.MatchupFunc(ctx, nameA, nameB)
}

type mockSeasonService struct {
	SeasonsFunc func(ctx context.Context) ([]models.SeasonInfo, error)
	SeasonFunc  func(ctx context.Context, name string) (*models.SeasonDetail, error)
	RoundFunc   func(ctx context.Context, season string, number int) (*models.RoundDetail, error)
}

func (m *mockSeasonService) Seasons(ctx context.Context) ([]models.SeasonInfo, error) {
	return m.SeasonsFunc(ctx)
}
func (m *mockSeasonService) Season(ctx context.Context, name string) (*models.SeasonDetail, error) {
	return m.SeasonFunc(ctx, name)
}
func (m *mockSeasonService) Round(ctx context.Context, season string, number int) (*models.RoundDetail, error) {
	return m.RoundFunc(ctx, season, number)
}

type mockLeaderboardService struct {
	LeaderboardFunc func(ctx context.Context, date dateid.Date, limit int, cutoff bool) ([]models.LeaderboardEntry, error)
	HistoryFunc     func(ctx context.Context, date dateid.Date, top, days int) ([]models.PlayerSeries, error)
	TOTMFunc        func(ctx context.Context, year, month int) (*models.TOTMReport, error)
	RankHistoryFunc func(ctx context.Context, rank int, includeAbove bool) ([]models.RankHistoryEntry, error)
}

func (m *mockLeaderboardService) Leaderboard(ctx context.Context, date dateid.Date, limit int, cutoff bool) ([]models.LeaderboardEntry, error) {
	return m.LeaderboardFunc(ctx, date, limit, cutoff)
}
func (m *mockLeaderboardService) History(ctx context.Context, date dateid.Date, top, days int) ([]models.PlayerSeries, error) {
	return m.HistoryFunc(ctx, date, top, days)
}
func (m *mockLeaderboardService) TOTM(ctx context.Context, year, month int) (*models.TOTMReport, error) {
	return m.TOTMFunc(ctx, year, month)
}
func (m *mockLeaderboardService) RankHistory(ctx context.Context, rank int, includeAbove bool) ([]models.RankHistoryEntry, error) {
	return m.RankHistoryFunc(ctx, rank, includeAbove)
}

var _ logic.Ratings = (*mockStore)(nil)
var _ logic.PlayerService = (*mockPlayerService)(nil)
var _ logic.CompareService = (*mockCompareService)(nil)
var _ logic.SeasonService = (*mockSeasonService)(nil)
var _ logic.LeaderboardService = (*mockLeaderboardService)(nil)
