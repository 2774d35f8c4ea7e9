package models

import "github.com/twowcentral/glicko-api/internal/dateid"

// StatLine is a player's point-in-time statistic tuple. Score is the
// conservative estimate RM - 2·RD. Whether values are raw or display
// scale (×5) is decided at the store boundary; RP is never scaled.
type StatLine struct {
	Score float64 `json:"score"`
	RM    float64 `json:"rm"`
	RD    float64 `json:"rd"`
	RP    int     `json:"rp"`
}

// Default stat lines for any date before a player's first active day,
// in raw and display scale.
var (
	DefaultLine       = StatLine{Score: 550, RM: 900, RD: 175, RP: 0}
	DefaultLineScaled = StatLine{Score: 2750, RM: 4500, RD: 875, RP: 0}
)

// LeaderboardEntry is one row of a date leaderboard, always in display
// scale.
type LeaderboardEntry struct {
	Rank  int     `json:"rank"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	RM    float64 `json:"rm"`
	RD    float64 `json:"rd"`
	RP    int     `json:"rp"`
}

// PlayerSnapshot is the full point-in-time answer for one player: stat
// line, leaderboard rank (0 when not yet ranked), and first active day.
type PlayerSnapshot struct {
	Name   string      `json:"name"`
	Date   dateid.Date `json:"date"`
	Start  dateid.Date `json:"start"`
	Rank   int         `json:"rank"`
	Line   StatLine    `json:"line"`
	Scaled bool        `json:"scaled"`
}

// RoundSummary is one round of a season as listed by the season lookup.
type RoundSummary struct {
	Number   int         `json:"number"`
	Date     dateid.Date `json:"date"`
	Size     int         `json:"size"`
	Strength float64     `json:"strength"`
}

// SeasonInfo summarizes a season's rated rounds.
type SeasonInfo struct {
	Name        string      `json:"name"`
	Rounds      int         `json:"rounds"`
	StartDate   dateid.Date `json:"start_date"`
	EndDate     dateid.Date `json:"end_date"`
	AvgStrength float64     `json:"avg_strength"`
}

// SeasonDetail pairs a season's summary with its full round listing.
type SeasonDetail struct {
	Info   SeasonInfo     `json:"info"`
	Rounds []RoundSummary `json:"rounds"`
}

// RoundRanking is the raw ranked outcome of one round: contestant names
// resolved to canonical form, parallel to their display-scale RM changes.
// Names that fail to resolve or lack participation data are dropped.
type RoundRanking struct {
	Season    string      `json:"season"`
	Number    int         `json:"number"`
	Date      dateid.Date `json:"date"`
	Strength  float64     `json:"strength"`
	Players   []string    `json:"players"`
	RMChanges []float64   `json:"rm_changes"`
}

// RoundStanding is one contestant's row in a round performance table.
// Performance is nil at the normalized-result extremes, where no finite
// performance rating exists; PerformanceMark then carries the direction,
// "+inf" for a clean win and "-inf" for a clean loss.
type RoundStanding struct {
	Rank            int      `json:"rank"`
	Name            string   `json:"name"`
	RMChange        float64  `json:"rm_change"`
	RMBefore        float64  `json:"rm_before"`
	RMAfter         float64  `json:"rm_after"`
	NR              float64  `json:"nr"`
	Performance     *float64 `json:"performance"`
	PerformanceMark string   `json:"performance_mark,omitempty"`
}

// RoundDetail is the full performance table for one round. Strength is
// the round's score-scale strength; NominalRM is the display-scale RM a
// median performance corresponds to. AvgCertainty is the mean matchup
// certainty weight of the field on the eve of the round.
type RoundDetail struct {
	Season       string          `json:"season"`
	Number       int             `json:"number"`
	Date         dateid.Date     `json:"date"`
	Size         int             `json:"size"`
	Strength     float64         `json:"strength"`
	NominalRM    float64         `json:"nominal_rm"`
	AvgCertainty float64         `json:"avg_certainty"`
	Standings    []RoundStanding `json:"standings"`
}

// ProfileRound is one round in a player's profile listing.
type ProfileRound struct {
	Name     string      `json:"name"`
	RMChange float64     `json:"rm_change"`
	Rank     int         `json:"rank"`
	Size     int         `json:"size"`
	Strength float64     `json:"strength"`
	Date     dateid.Date `json:"date"`
	NR       float64     `json:"nr"`
}

// RangeDelta captures a player's stat line and rank just before and at
// the end of a queried period. Ranks are zero when the player was not
// yet on the board.
type RangeDelta struct {
	BeforeDate dateid.Date `json:"before_date"`
	AfterDate  dateid.Date `json:"after_date"`
	BeforeRank int         `json:"before_rank"`
	AfterRank  int         `json:"after_rank"`
	Before     StatLine    `json:"before"`
	After      StatLine    `json:"after"`
}

// ProfileReport is a player's round history over a time range.
type ProfileReport struct {
	Player        string         `json:"player"`
	From          dateid.Date    `json:"from"`
	To            dateid.Date    `json:"to"`
	Rounds        []ProfileRound `json:"rounds"`
	AvgNR         float64        `json:"avg_nr"`
	MatchupsWon   int            `json:"matchups_won"`
	MatchupsTotal int            `json:"matchups_total"`
	TotalRMChange float64        `json:"total_rm_change"`
	RoundWins     int            `json:"round_wins"`
	Delta         *RangeDelta    `json:"delta,omitempty"`
}

// MatchupRound is one round two players shared, with both normalized
// results.
type MatchupRound struct {
	Name string      `json:"name"`
	Date dateid.Date `json:"date"`
	NRA  float64     `json:"nr_a"`
	NRB  float64     `json:"nr_b"`
}

// MatchupReport is the head-to-head record of two players across every
// round they both competed in. Leverage is half the average NR gap,
// positive when A leads.
type MatchupReport struct {
	PlayerA  string         `json:"player_a"`
	PlayerB  string         `json:"player_b"`
	Rounds   []MatchupRound `json:"rounds"`
	WinsA    int            `json:"wins_a"`
	WinsB    int            `json:"wins_b"`
	AvgNRA   float64        `json:"avg_nr_a"`
	AvgNRB   float64        `json:"avg_nr_b"`
	Leverage float64        `json:"leverage"`
}

// FinaleRound is a two-player round in a player's history.
type FinaleRound struct {
	Name     string      `json:"name"`
	RMChange float64     `json:"rm_change"`
	Rank     int         `json:"rank"`
	Strength float64     `json:"strength"`
	Date     dateid.Date `json:"date"`
	Won      bool        `json:"won"`
}

// FinaleReport lists a player's finales (rounds with exactly two
// contestants) and their record in them.
type FinaleReport struct {
	Player     string        `json:"player"`
	RoundCount int           `json:"round_count"`
	Wins       int           `json:"wins"`
	Losses     int           `json:"losses"`
	Finales    []FinaleRound `json:"finales"`
}

// WinRound is a round a player finished first in.
type WinRound struct {
	Name     string      `json:"name"`
	RMChange float64     `json:"rm_change"`
	Size     int         `json:"size"`
	Strength float64     `json:"strength"`
	Date     dateid.Date `json:"date"`
}

// WinsReport lists a player's round wins.
type WinsReport struct {
	Player     string     `json:"player"`
	RoundCount int        `json:"round_count"`
	Wins       []WinRound `json:"wins"`
}

// TOTMEntry is one player's rating in a month's TOTM table, display
// scale.
type TOTMEntry struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// TOTMReport is the TOTM table for one calendar month.
type TOTMReport struct {
	Year    int         `json:"year"`
	Month   int         `json:"month"`
	Players []TOTMEntry `json:"players"`
}

// RankHistoryEntry is how long one player spent at (or above) a target
// leaderboard rank, with the share of their active days that represents.
type RankHistoryEntry struct {
	Name  string  `json:"name"`
	Days  int     `json:"days"`
	Ratio float64 `json:"ratio"`
}

// ComparedPlayer is one side of a two-player comparison.
type ComparedPlayer struct {
	Name      string   `json:"name"`
	Rank      int      `json:"rank"`
	Line      StatLine `json:"line"`
	WinChance float64  `json:"win_chance"`
}

// CompareReport compares two players' standing on one date.
type CompareReport struct {
	Date dateid.Date    `json:"date"`
	A    ComparedPlayer `json:"a"`
	B    ComparedPlayer `json:"b"`
}

// StatKind selects which statistic a series query extracts.
type StatKind int

const (
	StatScore StatKind = iota
	StatRM
	StatRD
	StatRP
	StatRank
)

func (k StatKind) String() string {
	switch k {
	case StatRM:
		return "rm"
	case StatRD:
		return "rd"
	case StatRP:
		return "rp"
	case StatRank:
		return "rank"
	}
	return "score"
}

// ParseStatKind maps a query-string stat name to its StatKind.
func ParseStatKind(s string) (StatKind, bool) {
	switch s {
	case "", "score":
		return StatScore, true
	case "rm":
		return StatRM, true
	case "rd":
		return StatRD, true
	case "rp":
		return StatRP, true
	case "rank":
		return StatRank, true
	}
	return 0, false
}

// SeriesPoint is one day of an extracted stat series.
type SeriesPoint struct {
	Date  dateid.Date `json:"date"`
	Value float64     `json:"value"`
}

// PlayerSeries is a player's extracted stat series over a date range.
type PlayerSeries struct {
	Player string        `json:"player"`
	Stat   string        `json:"stat"`
	Points []SeriesPoint `json:"points"`
}
