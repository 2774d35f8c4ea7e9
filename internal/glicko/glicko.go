// Package glicko holds the stateless rating mathematics behind the
// historical TWOW Glicko dataset: matchup certainty, expected score,
// deviation decay, and the performance inversion used for round tables.
// Every function is pure; all values are in the raw (unscaled) system
// unless noted.
package glicko

import (
	"fmt"
	"math"
)

const (
	// Q is the general Glicko calibration constant.
	Q = math.Ln10 / 400

	// DecayC drives daily RD growth; calibrated so a 250 RD reaches the
	// 875 cap (display scale) after 2.5 years of inactivity.
	DecayC = 30.6186218

	// MaxRD is the deviation ceiling in raw units.
	MaxRD = 175

	// DisplayScale converts raw values to sheet (display) values.
	DisplayScale = 5
)

// DomainError reports an input outside a function's mathematical domain,
// such as a normalized result of exactly 0 or 1 where no finite
// performance rating exists.
type DomainError struct {
	Op    string
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("glicko: %s undefined for input %g", e.Op, e.Value)
}

// Certainty is the matchup certainty weight g(RD). Lower deviation gives
// a value closer to 1; the result is always in (0, 1].
func Certainty(rd float64) float64 {
	return math.Sqrt(1 / (1 + 3*Q*Q*rd*rd/(math.Pi*math.Pi)))
}

// ExpectedScore is player A's expected result against player B, weighted
// by the certainty of B's rating.
func ExpectedScore(rmA, rmB, rdB float64) float64 {
	return 1 / (1 + math.Pow(10, -Certainty(rdB)*(rmA-rmB)/400))
}

// WinChance is player A's chance of beating player B in a single
// matchup, using the pair's combined deviation.
func WinChance(rmA, rdA, rmB, rdB float64) float64 {
	combined := math.Sqrt(rdA*rdA + rdB*rdB)
	return 1 / (1 + math.Pow(10, -Certainty(combined)*(rmA-rmB)/400))
}

// DecayRD ages a deviation by the given number of inactive days. Each day
// first pulls very low deviations back toward 50 and then grows the
// uncertainty, capped at MaxRD. The sub-50 pull is nonlinear, so the
// decay must be applied one day at a time rather than in closed form.
func DecayRD(rd float64, days int) float64 {
	for i := 0; i < days; i++ {
		if rd < 50 {
			rd = (29*rd + 50) / 30
		}
		rd = math.Sqrt(rd*rd + DecayC*DecayC/30)
		if rd > MaxRD {
			rd = MaxRD
		}
	}
	return rd
}

// Performance inverts the expected-score formula: the rating that would
// produce normalized result nr in a round of the given strength, with
// certainty the round's average matchup certainty weight. nr must lie
// strictly between 0 and 1; the extremes have no finite inversion.
func Performance(nr, strength, certainty float64) (float64, error) {
	if nr <= 0 || nr >= 1 {
		return 0, &DomainError{Op: "performance", Value: nr}
	}
	p := certainty*strength*math.Ln10 - 400*math.Log(1/nr-1)
	return p / (certainty * math.Ln10), nil
}

// RoundWeight is the matchup-weight heuristic for a round with the given
// number of contestants. Tiny rounds weigh their literal matchup count;
// larger fields follow an empirical fit.
func RoundWeight(fieldSize int) float64 {
	if fieldSize < 5 {
		return float64(fieldSize - 1)
	}
	n := float64(fieldSize)
	return 0.0547*n + 4*math.Sqrt(n) - 5.7663
}

// NormalizedResult rescales a finish position to (0,1): winning a round
// is 1, finishing last is 0. Rounds with a single contestant have no
// normalized result.
func NormalizedResult(rank, fieldSize int) (float64, error) {
	if fieldSize < 2 {
		return 0, &DomainError{Op: "normalized result", Value: float64(fieldSize)}
	}
	return float64(fieldSize-rank) / float64(fieldSize-1), nil
}
