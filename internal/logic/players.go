package logic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/glicko"
	"github.com/twowcentral/glicko-api/internal/models"
	"github.com/twowcentral/glicko-api/internal/worker"
)

type playerService struct {
	store Ratings
	pool  SeriesExtractor
}

func NewPlayerService(store Ratings, pool SeriesExtractor) PlayerService {
	return &playerService{store: store, pool: pool}
}

func (s *playerService) Snapshot(ctx context.Context, name string, date dateid.Date, scaled bool) (*models.PlayerSnapshot, error) {
	canonical, ok := s.store.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrPlayerNotFound)
	}

	line, ok := s.store.PlayerInfo(canonical, date, scaled)
	if !ok {
		return nil, fmt.Errorf("%v: %w", date, ErrNoData)
	}
	start, _ := s.store.StartDate(canonical)
	rank, _ := s.store.PlayerRank(canonical, date)

	return &models.PlayerSnapshot{
		Name:   canonical,
		Date:   date,
		Start:  start,
		Rank:   rank,
		Line:   line,
		Scaled: scaled,
	}, nil
}

// Profile lists every round the player competed in over the requested
// range. A nil from means the whole archive; a nil to means from's own
// span (a bare year or month reads as that whole year or month). When
// roundPrefix is empty the report also carries the before/after delta of
// the player's line and rank across the range.
func (s *playerService) Profile(ctx context.Context, name string, from, to *dateid.Partial, roundPrefix string) (*models.ProfileReport, error) {
	canonical, ok := s.store.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrPlayerNotFound)
	}

	arc := s.store.Archive()
	minDate, maxDate := arc.Bounds()

	dayStart, dayEnd := minDate, maxDate
	monthStart, monthEnd := 0, arc.MonthCount()-1
	if from != nil {
		last := *from
		if to != nil {
			last = *to
		}
		var err error
		dayStart, dayEnd, monthStart, monthEnd, err = dateid.LookupRange(*from, last)
		if err != nil {
			return nil, err
		}
	}

	start, ok := s.store.StartDate(canonical)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrPlayerNotFound)
	}
	if dayEnd < start || dayStart > maxDate {
		return nil, fmt.Errorf("%s began on %v: %w", canonical, start, ErrNoData)
	}
	if dayStart < start {
		dayStart = start
	}
	if dayEnd > maxDate {
		dayEnd = maxDate
	}
	if monthStart < 0 {
		monthStart = 0
	}
	if last := arc.MonthCount() - 1; monthEnd > last {
		monthEnd = last
	}

	prefix := strings.ToLower(roundPrefix)
	report := &models.ProfileReport{Player: canonical, From: dayStart, To: dayEnd}

	var sumNR float64
	var fieldSum, rankSum int
	for m := monthStart; m <= monthEnd; m++ {
		for roundName, part := range arc.History[m][canonical] {
			if prefix != "" && !strings.HasPrefix(strings.ToLower(roundName), prefix) {
				continue
			}
			meta, ok := arc.Rounds[m][roundName]
			if !ok || meta.Date < dayStart || meta.Date > dayEnd {
				continue
			}

			nr, err := glicko.NormalizedResult(part.FinishRank, part.FieldSize)
			if err != nil {
				continue
			}
			report.Rounds = append(report.Rounds, models.ProfileRound{
				Name:     roundName,
				RMChange: part.RMChange,
				Rank:     part.FinishRank,
				Size:     part.FieldSize,
				Strength: meta.Strength,
				Date:     meta.Date,
				NR:       nr,
			})

			sumNR += nr
			fieldSum += part.FieldSize
			rankSum += part.FinishRank
			report.TotalRMChange += part.RMChange
			if part.FinishRank == 1 {
				report.RoundWins++
			}
		}
	}

	sort.Slice(report.Rounds, func(i, j int) bool {
		if report.Rounds[i].Date != report.Rounds[j].Date {
			return report.Rounds[i].Date < report.Rounds[j].Date
		}
		return report.Rounds[i].Name < report.Rounds[j].Name
	})

	if n := len(report.Rounds); n > 0 {
		report.AvgNR = sumNR / float64(n)
		report.MatchupsWon = fieldSum - rankSum
		report.MatchupsTotal = fieldSum - n
	}

	if prefix == "" {
		if delta, err := s.rangeDelta(canonical, dayStart, dayEnd); err == nil {
			report.Delta = delta
		}
	}
	return report, nil
}

func (s *playerService) rangeDelta(name string, dayStart, dayEnd dateid.Date) (*models.RangeDelta, error) {
	eve, err := dayStart.DayBefore()
	if err != nil {
		return nil, err
	}

	before, ok := s.store.PlayerInfo(name, eve, true)
	if !ok {
		return nil, fmt.Errorf("%v: %w", eve, ErrNoData)
	}
	after, ok := s.store.PlayerInfo(name, dayEnd, true)
	if !ok {
		return nil, fmt.Errorf("%v: %w", dayEnd, ErrNoData)
	}
	beforeRank, _ := s.store.PlayerRank(name, eve)
	afterRank, _ := s.store.PlayerRank(name, dayEnd)

	return &models.RangeDelta{
		BeforeDate: eve,
		AfterDate:  dayEnd,
		BeforeRank: beforeRank,
		AfterRank:  afterRank,
		Before:     before,
		After:      after,
	}, nil
}

func (s *playerService) Finales(ctx context.Context, name string) (*models.FinaleReport, error) {
	canonical, ok := s.store.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrPlayerNotFound)
	}

	arc := s.store.Archive()
	report := &models.FinaleReport{Player: canonical}

	for m := 0; m < arc.MonthCount(); m++ {
		for roundName, part := range arc.History[m][canonical] {
			report.RoundCount++
			if part.FieldSize != 2 {
				continue
			}
			meta, ok := arc.Rounds[m][roundName]
			if !ok {
				continue
			}

			won := part.FinishRank == 1
			if won {
				report.Wins++
			} else {
				report.Losses++
			}
			report.Finales = append(report.Finales, models.FinaleRound{
				Name:     roundName,
				RMChange: part.RMChange,
				Rank:     part.FinishRank,
				Strength: meta.Strength,
				Date:     meta.Date,
				Won:      won,
			})
		}
	}

	sort.Slice(report.Finales, func(i, j int) bool {
		return report.Finales[i].Date < report.Finales[j].Date
	})
	return report, nil
}

func (s *playerService) Wins(ctx context.Context, name string) (*models.WinsReport, error) {
	canonical, ok := s.store.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrPlayerNotFound)
	}

	arc := s.store.Archive()
	report := &models.WinsReport{Player: canonical}

	for m := 0; m < arc.MonthCount(); m++ {
		for roundName, part := range arc.History[m][canonical] {
			report.RoundCount++
			if part.FinishRank != 1 {
				continue
			}
			meta, ok := arc.Rounds[m][roundName]
			if !ok {
				continue
			}
			report.Wins = append(report.Wins, models.WinRound{
				Name:     roundName,
				RMChange: part.RMChange,
				Size:     part.FieldSize,
				Strength: meta.Strength,
				Date:     meta.Date,
			})
		}
	}

	sort.Slice(report.Wins, func(i, j int) bool {
		return report.Wins[i].Date < report.Wins[j].Date
	})
	return report, nil
}

func (s *playerService) Series(ctx context.Context, name string, stat models.StatKind, from, to dateid.Date) (*models.PlayerSeries, error) {
	canonical, ok := s.store.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrPlayerNotFound)
	}

	minDate, maxDate := s.store.Archive().Bounds()
	if from < minDate {
		from = minDate
	}
	if to > maxDate {
		to = maxDate
	}
	if from > to {
		return nil, fmt.Errorf("%v..%v: %w", from, to, ErrNoData)
	}

	results, err := s.pool.Extract(ctx, []worker.Job{{
		Player: canonical,
		Stat:   stat,
		From:   from,
		To:     to,
	}})
	if err != nil {
		return nil, fmt.Errorf("extracting %s series: %w", stat, err)
	}
	if results[0].Err != nil {
		return nil, results[0].Err
	}

	return &models.PlayerSeries{
		Player: canonical,
		Stat:   stat.String(),
		Points: results[0].Points,
	}, nil
}
