package worker

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/models"
)

// fakeSource serves a fixed line per player per day; days before start
// return the default line, days in ranks get a rank.
type fakeSource struct {
	start dateid.Date
	lines map[string]models.StatLine
	ranks map[string]int
}

func (f *fakeSource) PlayerInfo(name string, date dateid.Date, scaled bool) (models.StatLine, bool) {
	line, ok := f.lines[name]
	if !ok {
		return models.StatLine{}, false
	}
	if date < f.start {
		return models.DefaultLineScaled, true
	}
	return line, true
}

func (f *fakeSource) PlayerRank(name string, date dateid.Date) (int, bool) {
	rank, ok := f.ranks[name]
	return rank, ok && date >= f.start
}

func startedPool(t *testing.T, src StatsSource) *Pool {
	t.Helper()
	pool := NewPool(PoolConfig{
		WorkerCount: 2,
		QueueSize:   16,
		Source:      src,
		Logger:      zap.NewNop(),
	})
	pool.Start(context.Background())
	t.Cleanup(pool.Stop)
	return pool
}

func TestExtract(t *testing.T) {
	src := &fakeSource{
		start: 160112,
		lines: map[string]models.StatLine{
			"Alice": {Score: 4150, RM: 5050, RD: 450, RP: 6},
			"Bob":   {Score: 4980, RM: 5550, RD: 285, RP: 10},
		},
		ranks: map[string]int{"Alice": 2, "Bob": 1},
	}
	pool := startedPool(t, src)

	jobs := []Job{
		{Player: "Alice", Stat: models.StatScore, From: 160110, To: 160114},
		{Player: "Bob", Stat: models.StatRM, From: 160110, To: 160114},
	}
	results, err := pool.Extract(context.Background(), jobs)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}

	byPlayer := map[string]Result{}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("result for %s: %v", r.Player, r.Err)
		}
		byPlayer[r.Player] = r
	}

	// Default-line days before the start are skipped, so only the
	// 12th through the 14th appear.
	alice := byPlayer["Alice"].Points
	if len(alice) != 3 || alice[0].Date != 160112 || alice[0].Value != 4150 {
		t.Errorf("alice points = %+v", alice)
	}
	bob := byPlayer["Bob"].Points
	if len(bob) != 3 || bob[2].Date != 160114 || bob[2].Value != 5550 {
		t.Errorf("bob points = %+v", bob)
	}
}

func TestExtractRankSeries(t *testing.T) {
	src := &fakeSource{
		start: 160112,
		lines: map[string]models.StatLine{"Alice": {Score: 4150}},
		ranks: map[string]int{"Alice": 2},
	}
	pool := startedPool(t, src)

	results, err := pool.Extract(context.Background(), []Job{
		{Player: "Alice", Stat: models.StatRank, From: 160111, To: 160113},
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	points := results[0].Points
	if len(points) != 2 || points[0].Date != 160112 || points[0].Value != 2 {
		t.Errorf("points = %+v", points)
	}
}

func TestExtractInvalidDate(t *testing.T) {
	src := &fakeSource{
		start: 160101,
		lines: map[string]models.StatLine{"Alice": {Score: 4150}},
	}
	pool := startedPool(t, src)

	// Day 30 of February cannot be advanced past.
	results, err := pool.Extract(context.Background(), []Job{
		{Player: "Alice", Stat: models.StatScore, From: 160230, To: 160301},
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if results[0].Err == nil {
		t.Error("job over an invalid date: want Result.Err")
	}
}

func TestExtractAfterStop(t *testing.T) {
	src := &fakeSource{
		start: 160101,
		lines: map[string]models.StatLine{"Alice": {Score: 4150}},
	}
	pool := startedPool(t, src)
	pool.Stop()

	// Enqueueing against a stopped pool must fail cleanly rather than
	// land on a dead queue.
	_, err := pool.Extract(context.Background(), []Job{
		{Player: "Alice", Stat: models.StatScore, From: 160101, To: 160105},
	})
	if err == nil {
		t.Fatal("Extract on a stopped pool: want error")
	}
}

func TestQueueDepth(t *testing.T) {
	src := &fakeSource{start: 160101, lines: map[string]models.StatLine{}}
	pool := startedPool(t, src)

	deadline := time.Now().Add(2 * time.Second)
	for pool.QueueDepth() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("queue never drained")
		}
	}
}
