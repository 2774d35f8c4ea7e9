package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/models"
)

// Season and round lookups read the per-round text files lazily: the
// files are static, small, and only touched by these queries, so nothing
// is cached. A round file holds the round's compact date on its first
// line and the ranked contestant list on the rest.

// AllSeasons lists every season that appears in the season index and has
// a folder on disk, in index order.
func (s *Store) AllSeasons() []string {
	entries, err := os.ReadDir(s.arc.Dir())
	if err != nil {
		s.logger.Errorw("season folder scan failed", "dir", s.arc.Dir(), "error", err)
		return nil
	}
	folders := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			folders[e.Name()] = true
		}
	}

	var seasons []string
	for _, season := range s.arc.SeasonIndex {
		if folders[seasonFolder(season)] {
			seasons = append(seasons, season)
		}
	}
	return seasons
}

// IsValidSeason resolves a case-insensitive season name to its listed
// form.
func (s *Store) IsValidSeason(season string) (string, bool) {
	lower := strings.ToLower(season)
	for _, name := range s.AllSeasons() {
		if strings.ToLower(name) == lower {
			return name, true
		}
	}
	return "", false
}

// SeasonRounds lists the rated rounds of a season, ordered by round
// number. Rounds absent from their month's round bucket did not count
// toward ratings and are skipped.
func (s *Store) SeasonRounds(season string) ([]models.RoundSummary, bool) {
	folder := filepath.Join(s.arc.Dir(), seasonFolder(season))
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, false
	}

	var rounds []models.RoundSummary
	for _, e := range entries {
		number, ok := roundFileNumber(e.Name())
		if !ok {
			continue
		}
		date, contestants, err := s.readRoundFile(folder, number)
		if err != nil {
			s.logger.Warnw("unreadable round file", "season", season, "round", number, "error", err)
			continue
		}

		meta, ok := s.ratedRound(season, number, date)
		if !ok {
			continue
		}
		rounds = append(rounds, models.RoundSummary{
			Number:   number,
			Date:     date,
			Size:     len(contestants),
			Strength: meta.Strength,
		})
	}

	sort.Slice(rounds, func(i, j int) bool { return rounds[i].Number < rounds[j].Number })
	return rounds, true
}

// SeasonInfo summarizes a season's rated rounds.
func (s *Store) SeasonInfo(season string) (models.SeasonInfo, bool) {
	rounds, ok := s.SeasonRounds(season)
	if !ok || len(rounds) == 0 {
		return models.SeasonInfo{}, false
	}

	info := models.SeasonInfo{
		Name:      season,
		Rounds:    len(rounds),
		StartDate: rounds[0].Date,
		EndDate:   rounds[0].Date,
	}
	var total float64
	for _, r := range rounds {
		if r.Date < info.StartDate {
			info.StartDate = r.Date
		}
		if r.Date > info.EndDate {
			info.EndDate = r.Date
		}
		total += r.Strength
	}
	info.AvgStrength = total / float64(len(rounds))
	return info, true
}

// RoundInfo returns the ranked outcome of a single round. Contestants
// that fail name resolution or have no participation record for the
// round are silently dropped. A round missing from its month bucket was
// never rated and reports not-found.
func (s *Store) RoundInfo(season string, number int) (*models.RoundRanking, bool) {
	folder := filepath.Join(s.arc.Dir(), seasonFolder(season))
	date, contestants, err := s.readRoundFile(folder, number)
	if err != nil {
		return nil, false
	}

	meta, ok := s.ratedRound(season, number, date)
	if !ok {
		return nil, false
	}
	monthIdx, err := dateid.MonthDiff(date, dateid.MinDate)
	if err != nil || monthIdx < 0 || monthIdx >= len(s.arc.History) {
		return nil, false
	}
	history := s.arc.History[monthIdx]
	roundName := qualifiedRoundName(season, number)

	ranking := &models.RoundRanking{
		Season:   season,
		Number:   number,
		Date:     date,
		Strength: meta.Strength,
	}
	for _, raw := range contestants {
		name, ok := s.Resolve(strings.TrimSpace(raw))
		if !ok {
			continue
		}
		part, ok := history[name][roundName]
		if !ok {
			continue
		}
		ranking.Players = append(ranking.Players, name)
		ranking.RMChanges = append(ranking.RMChanges, part.RMChange)
	}
	return ranking, true
}

// ratedRound looks a round up in its month bucket, reporting whether it
// counted toward ratings and, if so, its metadata.
func (s *Store) ratedRound(season string, number int, date dateid.Date) (models.RoundMeta, bool) {
	monthIdx, err := dateid.MonthDiff(date, dateid.MinDate)
	if err != nil || monthIdx < 0 || monthIdx >= len(s.arc.Rounds) {
		return models.RoundMeta{}, false
	}
	meta, ok := s.arc.Rounds[monthIdx][qualifiedRoundName(season, number)]
	return meta, ok
}

func (s *Store) readRoundFile(folder string, number int) (dateid.Date, []string, error) {
	data, err := os.ReadFile(filepath.Join(folder, fmt.Sprintf("%d.txt", number)))
	if err != nil {
		return 0, nil, err
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return 0, nil, fmt.Errorf("round file has %d lines", len(lines))
	}
	raw, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return 0, nil, fmt.Errorf("round date line: %w", err)
	}

	var contestants []string
	for _, line := range lines[1:] {
		if line = strings.TrimSpace(line); line != "" {
			contestants = append(contestants, line)
		}
	}
	return dateid.Date(raw), contestants, nil
}

// roundFileNumber extracts the round number from a "<n>.txt" file name.
func roundFileNumber(name string) (int, bool) {
	base, found := strings.CutSuffix(name, ".txt")
	if !found {
		return 0, false
	}
	number, err := strconv.Atoi(base)
	if err != nil || number < 1 {
		return 0, false
	}
	return number, true
}

func qualifiedRoundName(season string, number int) string {
	return fmt.Sprintf("%s R%d", season, number)
}

// seasonFolder maps a season name to its on-disk folder. Folder names
// came from a Windows-1252 export that reread the name's UTF-8 bytes one
// byte at a time ("Lé Unicorn" is stored as "LÃ© Unicorn"); bytes with
// no Windows-1252 character were dropped.
func seasonFolder(season string) string {
	var b strings.Builder
	for _, c := range []byte(season) {
		switch c {
		case 0x81, 0x8d, 0x8f, 0x90, 0x9d:
			continue
		}
		b.WriteRune(charmap.Windows1252.DecodeByte(c))
	}
	return b.String()
}
