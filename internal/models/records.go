// Package models defines the typed records of the historical rating
// dataset and the result shapes returned by the query services.
//
// The on-disk JSON documents use positional arrays rather than objects
// (a compatibility contract with the batch rating job), so the series
// types implement their own UnmarshalJSON to map those arrays onto
// explicit fields instead of inspecting lengths at query time.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/twowcentral/glicko-api/internal/dateid"
)

// DailyRecord is one day of a player's rating series. A full record
// carries deviation, mean, and rounds played; a sparse record carries
// only the deviation, meaning nothing but decay happened that day and
// RM/RP carry over from the most recent full record.
type DailyRecord struct {
	RD     float64
	RM     float64
	RP     int
	Sparse bool
}

// UnmarshalJSON accepts the dataset's positional form: [RD] for a sparse
// day, [RD, RM, RP] for a full one.
func (r *DailyRecord) UnmarshalJSON(data []byte) error {
	var vals []float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("daily record: %w", err)
	}
	switch {
	case len(vals) == 1:
		*r = DailyRecord{RD: vals[0], Sparse: true}
	case len(vals) >= 3:
		*r = DailyRecord{RD: vals[0], RM: vals[1], RP: int(vals[2])}
	default:
		return fmt.Errorf("daily record: %d values", len(vals))
	}
	return nil
}

// DailySeries is a player's day-by-day rating history. Records[0] is the
// player's first active day (Start); Records[i] is Start plus i days.
type DailySeries struct {
	Start   dateid.Date
	Records []DailyRecord
}

// UnmarshalJSON accepts the dataset form [startDate, rec, rec, ...].
// The first record after the start date must be full.
func (s *DailySeries) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("daily series: %w", err)
	}
	if len(raw) < 2 {
		return fmt.Errorf("daily series: %d elements", len(raw))
	}

	var start int
	if err := json.Unmarshal(raw[0], &start); err != nil {
		return fmt.Errorf("daily series start date: %w", err)
	}
	s.Start = dateid.Date(start)

	s.Records = make([]DailyRecord, len(raw)-1)
	for i, rv := range raw[1:] {
		if err := json.Unmarshal(rv, &s.Records[i]); err != nil {
			return fmt.Errorf("daily series entry %d: %w", i, err)
		}
	}
	if s.Records[0].Sparse {
		return fmt.Errorf("daily series: first record is sparse")
	}
	return nil
}

// RankSeries is a player's day-by-day leaderboard rank, index-aligned
// with their DailySeries.
type RankSeries struct {
	Start dateid.Date
	Ranks []int
}

// UnmarshalJSON accepts the dataset form [startDate, rank, rank, ...].
func (s *RankSeries) UnmarshalJSON(data []byte) error {
	var vals []int
	if err := json.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("rank series: %w", err)
	}
	if len(vals) < 2 {
		return fmt.Errorf("rank series: %d elements", len(vals))
	}
	s.Start = dateid.Date(vals[0])
	s.Ranks = vals[1:]
	return nil
}

// RoundMeta is a rated round's strength score and date.
type RoundMeta struct {
	Strength float64
	Date     dateid.Date
}

// UnmarshalJSON accepts the dataset form [strength, dateID].
func (m *RoundMeta) UnmarshalJSON(data []byte) error {
	var vals []float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("round meta: %w", err)
	}
	if len(vals) < 2 {
		return fmt.Errorf("round meta: %d values", len(vals))
	}
	m.Strength = vals[0]
	m.Date = dateid.Date(int(vals[1]))
	return nil
}

// Participation is one player's result in one rated round. RMChange is
// in display scale, matching the batch job's output.
type Participation struct {
	RMChange   float64
	FinishRank int
	FieldSize  int
}

// UnmarshalJSON accepts the dataset form [ratingChange, finishRank, fieldSize].
func (p *Participation) UnmarshalJSON(data []byte) error {
	var vals []float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("participation: %w", err)
	}
	if len(vals) < 3 {
		return fmt.Errorf("participation: %d values", len(vals))
	}
	p.RMChange = vals[0]
	p.FinishRank = int(vals[1])
	p.FieldSize = int(vals[2])
	return nil
}

// MonthRounds maps qualified round names to their metadata within one
// month bucket (bucket 0 holds the month containing MinDate).
type MonthRounds map[string]RoundMeta

// MonthHistory maps player name to round name to participation within
// one month bucket.
type MonthHistory map[string]map[string]Participation
