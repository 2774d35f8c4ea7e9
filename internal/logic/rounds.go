package logic

import (
	"context"
	"fmt"

	"github.com/twowcentral/glicko-api/internal/glicko"
	"github.com/twowcentral/glicko-api/internal/models"
)

type seasonService struct {
	store Ratings
}

func NewSeasonService(store Ratings) SeasonService {
	return &seasonService{store: store}
}

func (s *seasonService) Seasons(ctx context.Context) ([]models.SeasonInfo, error) {
	names := s.store.AllSeasons()
	infos := make([]models.SeasonInfo, 0, len(names))
	for _, name := range names {
		if info, ok := s.store.SeasonInfo(name); ok {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

func (s *seasonService) Season(ctx context.Context, name string) (*models.SeasonDetail, error) {
	canonical, ok := s.store.IsValidSeason(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrSeasonNotFound)
	}
	info, ok := s.store.SeasonInfo(canonical)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrSeasonNotFound)
	}
	rounds, _ := s.store.SeasonRounds(canonical)
	return &models.SeasonDetail{Info: info, Rounds: rounds}, nil
}

// Round reconstructs one round's full table: every contestant's rating
// before and after, their normalized result, and the performance rating
// that result implies against the round's strength. Ratings are read on
// the eve of the round since the day of the round already includes its
// outcome.
func (s *seasonService) Round(ctx context.Context, season string, number int) (*models.RoundDetail, error) {
	canonical, ok := s.store.IsValidSeason(season)
	if !ok {
		return nil, fmt.Errorf("%q: %w", season, ErrSeasonNotFound)
	}
	ranking, ok := s.store.RoundInfo(canonical, number)
	if !ok {
		return nil, fmt.Errorf("%s round %d: %w", canonical, number, ErrRoundNotFound)
	}

	eve, err := ranking.Date.DayBefore()
	if err != nil {
		return nil, fmt.Errorf("round date %v: %w", ranking.Date, err)
	}

	n := len(ranking.Players)
	scale := float64(glicko.DisplayScale)

	// Certainty comes from the raw-scale deviations the rating job saw
	// going into the round.
	var sumG float64
	for _, player := range ranking.Players {
		line, ok := s.store.PlayerInfo(player, eve, false)
		if !ok {
			line = models.DefaultLine
		}
		sumG += glicko.Certainty(line.RD)
	}
	avgG := sumG / float64(n)

	rawStrength := ranking.Strength/scale + 100

	standings := make([]models.RoundStanding, 0, n)
	for i, player := range ranking.Players {
		rank := i + 1
		before, ok := s.store.PlayerInfo(player, eve, true)
		if !ok {
			before = models.DefaultLineScaled
		}

		standing := models.RoundStanding{
			Rank:     rank,
			Name:     player,
			RMChange: ranking.RMChanges[i],
			RMBefore: before.RM,
			RMAfter:  before.RM + ranking.RMChanges[i],
		}
		if nr, err := glicko.NormalizedResult(rank, n); err == nil {
			standing.NR = nr
			perf, err := glicko.Performance(nr, rawStrength, avgG)
			switch {
			case err == nil:
				display := perf * scale
				standing.Performance = &display
			case nr >= 1:
				standing.PerformanceMark = "+inf"
			default:
				standing.PerformanceMark = "-inf"
			}
		}
		standings = append(standings, standing)
	}

	return &models.RoundDetail{
		Season:       canonical,
		Number:       number,
		Date:         ranking.Date,
		Size:         n,
		Strength:     ranking.Strength,
		NominalRM:    ranking.Strength + 500,
		AvgCertainty: avgG,
		Standings:    standings,
	}, nil
}
