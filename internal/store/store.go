// Package store answers point-in-time and range queries over the loaded
// rating archive. It owns the raw/display scale boundary: callers choose
// a scale per lookup and never mix the two inside one computation.
package store

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/twowcentral/glicko-api/internal/dataset"
	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/models"
)

// RDCutoff is the leaderboard deviation cutoff in display scale. The
// cutoff keeps players whose RD is BELOW it, excluding highly uncertain
// or long-inactive players.
const RDCutoff = 500

// Store is a read-only query index over one Archive.
type Store struct {
	arc    *dataset.Archive
	logger *zap.SugaredLogger
}

func New(arc *dataset.Archive, logger *zap.Logger) *Store {
	return &Store{arc: arc, logger: logger.Sugar()}
}

// Players returns every canonical player name, sorted.
func (s *Store) Players() []string {
	return s.arc.Names
}

// Archive exposes the underlying dataset's month buckets to the query
// facade. The returned archive is immutable.
func (s *Store) Archive() *dataset.Archive {
	return s.arc
}

// Resolve maps user input to a canonical player name. Precedence: exact
// name, then case-insensitive match, then unique lowercase prefix, then
// alias. Unknown names report ok=false; callers decide how to phrase the
// miss.
func (s *Store) Resolve(name string) (string, bool) {
	if _, known := s.arc.Daily[name]; known {
		return name, true
	}

	lower := strings.ToLower(name)
	if canonical, ok := s.arc.Lower[lower]; ok {
		return canonical, true
	}

	var prefixed string
	for low, canonical := range s.arc.Lower {
		if strings.HasPrefix(low, lower) {
			if prefixed != "" {
				prefixed = ""
				break
			}
			prefixed = canonical
		}
	}
	if prefixed != "" {
		return prefixed, true
	}

	if target, ok := s.arc.Aliases[lower]; ok {
		if canonical, known := s.arc.Lower[target]; known {
			return canonical, true
		}
	}
	return "", false
}

// StartDate returns the player's first active day.
func (s *Store) StartDate(name string) (dateid.Date, bool) {
	player, ok := s.Resolve(name)
	if !ok {
		return 0, false
	}
	return s.arc.Daily[player].Start, true
}

// PlayerInfo returns a player's stat line on the given day. Dates before
// the player's start yield the default line. A sparse record reuses the
// RM and RP of the most recent full record; the stored RD already has
// decay baked in by the batch job, so no decay is recomputed here.
func (s *Store) PlayerInfo(name string, date dateid.Date, scaled bool) (models.StatLine, bool) {
	player, ok := s.Resolve(name)
	if !ok {
		return models.StatLine{}, false
	}
	series := s.arc.Daily[player]

	if date < series.Start {
		if scaled {
			return models.DefaultLineScaled, true
		}
		return models.DefaultLine, true
	}

	idx, err := dateid.DayDiff(date, series.Start)
	if err != nil || idx >= len(series.Records) {
		return models.StatLine{}, false
	}

	rec := series.Records[idx]
	rd, rm, rp := rec.RD, rec.RM, rec.RP
	if rec.Sparse {
		for back := idx - 1; back >= 0; back-- {
			if prev := series.Records[back]; !prev.Sparse {
				rm, rp = prev.RM, prev.RP
				break
			}
		}
	}

	line := models.StatLine{Score: rm - 2*rd, RM: rm, RD: rd, RP: rp}
	if scaled {
		line.Score *= 5
		line.RM *= 5
		line.RD *= 5
	}
	return line, true
}

// PlayerRank returns the player's leaderboard rank on the given day, or
// ok=false if they had no rank entry yet.
func (s *Store) PlayerRank(name string, date dateid.Date) (int, bool) {
	player, ok := s.Resolve(name)
	if !ok {
		return 0, false
	}
	series, ok := s.arc.Ranks[player]
	if !ok || date < series.Start {
		return 0, false
	}

	idx, err := dateid.DayDiff(date, series.Start)
	if err != nil || idx >= len(series.Ranks) {
		return 0, false
	}
	return series.Ranks[idx], true
}

// Leaderboard computes every player's display-scale stat line on the
// given day, ordered by descending score. With cutoff set, and provided
// at least one player qualifies, players at or above the RD cutoff are
// dropped. A positive limit truncates the result.
func (s *Store) Leaderboard(date dateid.Date, limit int, cutoff bool) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(s.arc.Names))
	for _, name := range s.arc.Names {
		line, ok := s.PlayerInfo(name, date, true)
		if !ok {
			s.logger.Warnw("player series too short for date", "player", name, "date", date)
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			Name:  name,
			Score: line.Score,
			RM:    line.RM,
			RD:    line.RD,
			RP:    line.RP,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if cutoff && anyBelowCutoff(entries) {
		kept := entries[:0]
		for _, e := range entries {
			if e.RD < RDCutoff {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries
}

func anyBelowCutoff(entries []models.LeaderboardEntry) bool {
	for _, e := range entries {
		if e.RD < RDCutoff {
			return true
		}
	}
	return false
}
