package logic

import (
	"context"
	"fmt"
	"sort"

	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/glicko"
	"github.com/twowcentral/glicko-api/internal/models"
)

type compareService struct {
	store Ratings
}

func NewCompareService(store Ratings) CompareService {
	return &compareService{store: store}
}

// Compare puts two players side by side on one date. Win chances come
// from the raw-scale ratings, so display lines are divided back down
// before the math.
func (s *compareService) Compare(ctx context.Context, nameA, nameB string, date dateid.Date) (*models.CompareReport, error) {
	a, ok := s.store.Resolve(nameA)
	if !ok {
		return nil, fmt.Errorf("%q: %w", nameA, ErrPlayerNotFound)
	}
	b, ok := s.store.Resolve(nameB)
	if !ok {
		return nil, fmt.Errorf("%q: %w", nameB, ErrPlayerNotFound)
	}

	lineA, ok := s.store.PlayerInfo(a, date, true)
	if !ok || lineA == models.DefaultLineScaled {
		return nil, fmt.Errorf("%s on %v: %w", a, date, ErrNoData)
	}
	lineB, ok := s.store.PlayerInfo(b, date, true)
	if !ok || lineB == models.DefaultLineScaled {
		return nil, fmt.Errorf("%s on %v: %w", b, date, ErrNoData)
	}

	rankA, _ := s.store.PlayerRank(a, date)
	rankB, _ := s.store.PlayerRank(b, date)

	scale := float64(glicko.DisplayScale)
	winA := glicko.WinChance(lineA.RM/scale, lineA.RD/scale, lineB.RM/scale, lineB.RD/scale)

	return &models.CompareReport{
		Date: date,
		A:    models.ComparedPlayer{Name: a, Rank: rankA, Line: lineA, WinChance: winA},
		B:    models.ComparedPlayer{Name: b, Rank: rankB, Line: lineB, WinChance: 1 - winA},
	}, nil
}

// Matchup tallies every round both players competed in.
func (s *compareService) Matchup(ctx context.Context, nameA, nameB string) (*models.MatchupReport, error) {
	a, ok := s.store.Resolve(nameA)
	if !ok {
		return nil, fmt.Errorf("%q: %w", nameA, ErrPlayerNotFound)
	}
	b, ok := s.store.Resolve(nameB)
	if !ok {
		return nil, fmt.Errorf("%q: %w", nameB, ErrPlayerNotFound)
	}

	arc := s.store.Archive()
	report := &models.MatchupReport{PlayerA: a, PlayerB: b}

	var sumA, sumB float64
	for m := 0; m < arc.MonthCount(); m++ {
		histA := arc.History[m][a]
		histB := arc.History[m][b]
		if len(histA) == 0 || len(histB) == 0 {
			continue
		}
		for roundName, partA := range histA {
			partB, ok := histB[roundName]
			if !ok {
				continue
			}
			meta, ok := arc.Rounds[m][roundName]
			if !ok {
				continue
			}

			nrA, errA := glicko.NormalizedResult(partA.FinishRank, partA.FieldSize)
			nrB, errB := glicko.NormalizedResult(partB.FinishRank, partB.FieldSize)
			if errA != nil || errB != nil {
				continue
			}
			report.Rounds = append(report.Rounds, models.MatchupRound{
				Name: roundName,
				Date: meta.Date,
				NRA:  nrA,
				NRB:  nrB,
			})

			sumA += nrA
			sumB += nrB
			if partA.FinishRank < partB.FinishRank {
				report.WinsA++
			} else {
				report.WinsB++
			}
		}
	}

	n := len(report.Rounds)
	if n == 0 {
		return nil, fmt.Errorf("%s vs %s: %w", a, b, ErrNoSharedRounds)
	}

	sort.Slice(report.Rounds, func(i, j int) bool {
		return report.Rounds[i].Date < report.Rounds[j].Date
	})
	report.AvgNRA = sumA / float64(n)
	report.AvgNRB = sumB / float64(n)
	report.Leverage = (report.AvgNRA - report.AvgNRB) / 2
	return report, nil
}
