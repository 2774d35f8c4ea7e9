package logic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/twowcentral/glicko-api/internal/dataset"
	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/models"
	"github.com/twowcentral/glicko-api/internal/worker"
)

// fakeStore is a hand-rolled Ratings backed by one raw stat line per
// player. Scaling and default-line behavior mirror the real store.
type fakeStore struct {
	arc     *dataset.Archive
	starts  map[string]dateid.Date
	lines   map[string]models.StatLine
	ranks   map[string]int
	seasons []string
	rounds  map[string]*models.RoundRanking
}

func (f *fakeStore) Players() []string {
	names := make([]string, 0, len(f.lines))
	for name := range f.lines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *fakeStore) Archive() *dataset.Archive { return f.arc }

func (f *fakeStore) Resolve(name string) (string, bool) {
	for canonical := range f.lines {
		if strings.EqualFold(canonical, name) {
			return canonical, true
		}
	}
	return "", false
}

func (f *fakeStore) StartDate(name string) (dateid.Date, bool) {
	player, ok := f.Resolve(name)
	if !ok {
		return 0, false
	}
	return f.starts[player], true
}

func (f *fakeStore) PlayerInfo(name string, date dateid.Date, scaled bool) (models.StatLine, bool) {
	player, ok := f.Resolve(name)
	if !ok {
		return models.StatLine{}, false
	}
	if date < f.starts[player] {
		if scaled {
			return models.DefaultLineScaled, true
		}
		return models.DefaultLine, true
	}
	line := f.lines[player]
	if scaled {
		line.Score *= 5
		line.RM *= 5
		line.RD *= 5
	}
	return line, true
}

func (f *fakeStore) PlayerRank(name string, date dateid.Date) (int, bool) {
	player, ok := f.Resolve(name)
	if !ok || date < f.starts[player] {
		return 0, false
	}
	rank, ok := f.ranks[player]
	return rank, ok
}

func (f *fakeStore) Leaderboard(date dateid.Date, limit int, cutoff bool) []models.LeaderboardEntry {
	var entries []models.LeaderboardEntry
	for _, name := range f.Players() {
		line, _ := f.PlayerInfo(name, date, true)
		entries = append(entries, models.LeaderboardEntry{
			Name: name, Score: line.Score, RM: line.RM, RD: line.RD, RP: line.RP,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	for i := range entries {
		entries[i].Rank = i + 1
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries
}

func (f *fakeStore) AllSeasons() []string { return f.seasons }

func (f *fakeStore) IsValidSeason(season string) (string, bool) {
	for _, name := range f.seasons {
		if strings.EqualFold(name, season) {
			return name, true
		}
	}
	return "", false
}

func (f *fakeStore) SeasonRounds(season string) ([]models.RoundSummary, bool) {
	return nil, true
}

func (f *fakeStore) SeasonInfo(season string) (models.SeasonInfo, bool) {
	return models.SeasonInfo{Name: season, Rounds: 1}, true
}

func (f *fakeStore) RoundInfo(season string, number int) (*models.RoundRanking, bool) {
	ranking, ok := f.rounds[qualifiedRound(season, number)]
	return ranking, ok
}

func qualifiedRound(season string, number int) string {
	return fmt.Sprintf("%s R%d", season, number)
}

type fakeExtractor struct {
	extractFunc func(ctx context.Context, jobs []worker.Job) ([]worker.Result, error)
}

func (f *fakeExtractor) Extract(ctx context.Context, jobs []worker.Job) ([]worker.Result, error) {
	return f.extractFunc(ctx, jobs)
}

// newFakeStore covers January and February 2016: a two-player finale in
// January and a ten-player round in February.
func newFakeStore() *fakeStore {
	arc := &dataset.Archive{
		Ranks: map[string]models.RankSeries{
			"Alice": {Start: 160110, Ranks: []int{1, 1, 2}},
			"Bob":   {Start: 160110, Ranks: []int{2, 2, 1}},
		},
		Rounds: []models.MonthRounds{
			{"ALPHA R1": {Strength: 213.8, Date: 160111}},
			{"BETA R1": {Strength: 250, Date: 160205}},
		},
		History: []models.MonthHistory{
			{
				"Alice": {"ALPHA R1": {RMChange: -12.5, FinishRank: 2, FieldSize: 2}},
				"Bob":   {"ALPHA R1": {RMChange: 12.5, FinishRank: 1, FieldSize: 2}},
			},
			{
				"Alice": {"BETA R1": {RMChange: 30, FinishRank: 1, FieldSize: 10}},
				"Bob":   {"BETA R1": {RMChange: 5, FinishRank: 2, FieldSize: 10}},
			},
		},
		TOTM: []map[string]float64{
			{},
			{"Alice": 531.1, "Bob": 540},
		},
	}

	return &fakeStore{
		arc: arc,
		starts: map[string]dateid.Date{
			"Alice": 160110,
			"Bob":   160110,
			"Carol": 170101,
		},
		lines: map[string]models.StatLine{
			"Alice": {Score: 830, RM: 1000, RD: 85, RP: 5},
			"Bob":   {Score: 740, RM: 900, RD: 80, RP: 8},
			"Carol": {Score: 700, RM: 860, RD: 80, RP: 2},
		},
		ranks:   map[string]int{"Alice": 1, "Bob": 2},
		seasons: []string{"GAMMA"},
		rounds: map[string]*models.RoundRanking{
			"GAMMA R2": {
				Season:    "GAMMA",
				Number:    2,
				Date:      160111,
				Strength:  213.8,
				Players:   []string{"Bob", "Alice", "Carol"},
				RMChanges: []float64{10, 0, -10},
			},
		},
	}
}
