package logic

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/models"
	"github.com/twowcentral/glicko-api/internal/worker"
)

func TestSnapshot(t *testing.T) {
	svc := NewPlayerService(newFakeStore(), nil)

	snap, err := svc.Snapshot(context.Background(), "alice", 160112, true)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Name != "Alice" || snap.Start != 160110 || snap.Rank != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Line.RM != 5000 || snap.Line.RP != 5 {
		t.Errorf("line = %+v", snap.Line)
	}

	_, err = svc.Snapshot(context.Background(), "zed", 160112, true)
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("unknown player: error = %v", err)
	}
}

func TestProfileFullRange(t *testing.T) {
	svc := NewPlayerService(newFakeStore(), nil)

	report, err := svc.Profile(context.Background(), "Alice", nil, nil, "")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}

	if report.From != 160110 {
		t.Errorf("From = %v, want clamped to start 160110", report.From)
	}
	if report.To != dateid.MaxDate {
		t.Errorf("To = %v", report.To)
	}
	if len(report.Rounds) != 2 {
		t.Fatalf("rounds = %+v", report.Rounds)
	}
	if report.Rounds[0].Name != "ALPHA R1" || report.Rounds[1].Name != "BETA R1" {
		t.Errorf("round order = %s, %s", report.Rounds[0].Name, report.Rounds[1].Name)
	}

	// ALPHA R1: last of two, NR 0. BETA R1: first of ten, NR 1.
	if math.Abs(report.AvgNR-0.5) > 1e-9 {
		t.Errorf("AvgNR = %g, want 0.5", report.AvgNR)
	}
	if report.MatchupsWon != 9 || report.MatchupsTotal != 10 {
		t.Errorf("matchups = %d/%d, want 9/10", report.MatchupsWon, report.MatchupsTotal)
	}
	if report.TotalRMChange != 17.5 || report.RoundWins != 1 {
		t.Errorf("totals = %g change, %d wins", report.TotalRMChange, report.RoundWins)
	}

	if report.Delta == nil {
		t.Fatal("Delta = nil, want before/after lines")
	}
	if report.Delta.Before != models.DefaultLineScaled {
		t.Errorf("Delta.Before = %+v, want default", report.Delta.Before)
	}
	if report.Delta.AfterRank != 1 {
		t.Errorf("Delta.AfterRank = %d", report.Delta.AfterRank)
	}
}

func TestProfileMonthFilter(t *testing.T) {
	svc := NewPlayerService(newFakeStore(), nil)

	from := &dateid.Partial{Year: 2016, Month: 2}
	report, err := svc.Profile(context.Background(), "Alice", from, nil, "")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if len(report.Rounds) != 1 || report.Rounds[0].Name != "BETA R1" {
		t.Errorf("rounds = %+v, want only BETA R1", report.Rounds)
	}
}

func TestProfileRoundPrefix(t *testing.T) {
	svc := NewPlayerService(newFakeStore(), nil)

	report, err := svc.Profile(context.Background(), "Alice", nil, nil, "beta")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if len(report.Rounds) != 1 || report.Rounds[0].Name != "BETA R1" {
		t.Errorf("rounds = %+v", report.Rounds)
	}
	if report.Delta != nil {
		t.Error("Delta should be omitted for filtered profiles")
	}
}

func TestProfileBeforePlayerStart(t *testing.T) {
	svc := NewPlayerService(newFakeStore(), nil)

	from := &dateid.Partial{Year: 2015}
	_, err := svc.Profile(context.Background(), "Alice", from, nil, "")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("range before start: error = %v", err)
	}
}

func TestFinales(t *testing.T) {
	svc := NewPlayerService(newFakeStore(), nil)

	report, err := svc.Finales(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("Finales: %v", err)
	}
	if report.RoundCount != 2 {
		t.Errorf("RoundCount = %d, want 2", report.RoundCount)
	}
	if len(report.Finales) != 1 || report.Finales[0].Name != "ALPHA R1" {
		t.Fatalf("finales = %+v", report.Finales)
	}
	if report.Wins != 0 || report.Losses != 1 || report.Finales[0].Won {
		t.Errorf("record = %d-%d", report.Wins, report.Losses)
	}
}

func TestWins(t *testing.T) {
	svc := NewPlayerService(newFakeStore(), nil)

	report, err := svc.Wins(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("Wins: %v", err)
	}
	if len(report.Wins) != 1 || report.Wins[0].Name != "BETA R1" || report.Wins[0].Size != 10 {
		t.Errorf("wins = %+v", report.Wins)
	}

	bob, err := svc.Wins(context.Background(), "Bob")
	if err != nil {
		t.Fatalf("Wins: %v", err)
	}
	if len(bob.Wins) != 1 || bob.Wins[0].Name != "ALPHA R1" {
		t.Errorf("bob wins = %+v", bob.Wins)
	}
}

func TestSeries(t *testing.T) {
	var captured []worker.Job
	pool := &fakeExtractor{
		extractFunc: func(ctx context.Context, jobs []worker.Job) ([]worker.Result, error) {
			captured = jobs
			return []worker.Result{{
				Player: jobs[0].Player,
				Points: []models.SeriesPoint{{Date: 160110, Value: 4150}},
			}}, nil
		},
	}
	svc := NewPlayerService(newFakeStore(), pool)

	series, err := svc.Series(context.Background(), "alice", models.StatScore, 150101, 990101)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if series.Player != "Alice" || series.Stat != "score" || len(series.Points) != 1 {
		t.Errorf("series = %+v", series)
	}

	if len(captured) != 1 {
		t.Fatalf("jobs = %+v", captured)
	}
	if captured[0].From != dateid.MinDate || captured[0].To != dateid.MaxDate {
		t.Errorf("range not clamped: %v..%v", captured[0].From, captured[0].To)
	}
}
