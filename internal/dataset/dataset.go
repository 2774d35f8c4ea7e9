// Package dataset loads the historical rating archive produced by the
// external batch job: five append-only JSON documents plus two flat-text
// index files. Everything is read once at process start and is immutable
// for the process lifetime, so concurrent queries need no locking.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/twowcentral/glicko-api/internal/dateid"
	"github.com/twowcentral/glicko-api/internal/models"
)

const (
	jsonDirName  = "JSON Data"
	filesDirName = "Data"

	seasonIndexFile = "index.txt"
	aliasFile       = "alias.txt"
)

// Archive is the in-memory form of the whole dataset. All fields are
// read-only after Load returns.
type Archive struct {
	Daily   map[string]models.DailySeries
	Ranks   map[string]models.RankSeries
	Rounds  []models.MonthRounds
	History []models.MonthHistory
	TOTM    []map[string]float64

	// SeasonIndex preserves the season list file's order.
	SeasonIndex []string

	// Names holds every canonical player name, sorted; Lower maps the
	// lowercase form back to canonical. Aliases maps a lowercase alias
	// to the lowercase canonical name it ultimately resolves to.
	Names   []string
	Lower   map[string]string
	Aliases map[string]string

	dir string
}

// Load reads the entire archive from dir. The five JSON documents are
// decoded in parallel; the per-round text files under Data/<season>/ are
// not read here but lazily by the season lookups.
func Load(ctx context.Context, dir string, logger *zap.Logger) (*Archive, error) {
	arc := &Archive{dir: dir}
	log := logger.Sugar()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return arc.loadJSON(dir, "resultdaily.json", &arc.Daily) })
	g.Go(func() error { return arc.loadJSON(dir, "ranks.json", &arc.Ranks) })
	g.Go(func() error { return arc.loadJSON(dir, "rounds.json", &arc.Rounds) })
	g.Go(func() error { return arc.loadJSON(dir, "history.json", &arc.History) })
	g.Go(func() error { return arc.loadJSON(dir, "totm.json", &arc.TOTM) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(arc.Rounds) != len(arc.History) {
		return nil, fmt.Errorf("dataset: %d round buckets but %d history buckets",
			len(arc.Rounds), len(arc.History))
	}

	arc.Names = make([]string, 0, len(arc.Daily))
	arc.Lower = make(map[string]string, len(arc.Daily))
	for name := range arc.Daily {
		arc.Names = append(arc.Names, name)
	}
	sort.Strings(arc.Names)
	for _, name := range arc.Names {
		lower := strings.ToLower(name)
		if _, taken := arc.Lower[lower]; !taken {
			arc.Lower[lower] = name
		}
	}

	seasons, err := readLines(filepath.Join(dir, filesDirName, seasonIndexFile))
	if err != nil {
		return nil, fmt.Errorf("season index: %w", err)
	}
	arc.SeasonIndex = seasons

	aliases, err := readLines(filepath.Join(dir, filesDirName, aliasFile))
	if err != nil {
		return nil, fmt.Errorf("alias list: %w", err)
	}
	if arc.Aliases, err = buildAliasMap(aliases); err != nil {
		return nil, err
	}

	log.Infow("dataset loaded",
		"players", len(arc.Daily),
		"months", len(arc.Rounds),
		"seasons", len(arc.SeasonIndex),
		"aliases", len(arc.Aliases),
	)
	return arc, nil
}

// Bounds returns the first and last day the dataset covers.
func (a *Archive) Bounds() (dateid.Date, dateid.Date) {
	return dateid.MinDate, dateid.MaxDate
}

// MonthCount returns the number of month buckets in the archive.
func (a *Archive) MonthCount() int {
	return len(a.Rounds)
}

// Dir returns the archive's on-disk root, used by the lazy per-round
// file reads.
func (a *Archive) Dir() string {
	return filepath.Join(a.dir, filesDirName)
}

func (a *Archive) loadJSON(dir, name string, out any) error {
	path := filepath.Join(dir, jsonDirName, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("dataset %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("dataset %s: %w", name, err)
	}
	return nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// buildAliasMap turns the flat alternating alias/target list into a map
// from lowercase alias to the lowercase name its chain ends at. A chain
// that loops back on itself means the alias file is malformed, which
// fails the load rather than risking an unbounded walk at query time.
func buildAliasMap(lines []string) (map[string]string, error) {
	direct := make(map[string]string, len(lines)/2)
	for i := 0; i+1 < len(lines); i += 2 {
		direct[strings.ToLower(lines[i])] = strings.ToLower(lines[i+1])
	}

	resolved := make(map[string]string, len(direct))
	for alias := range direct {
		target := alias
		seen := map[string]bool{alias: true}
		for {
			next, ok := direct[target]
			if !ok {
				break
			}
			if seen[next] {
				return nil, fmt.Errorf("alias list: cycle through %q", alias)
			}
			seen[next] = true
			target = next
		}
		if target != alias {
			resolved[alias] = target
		}
	}
	return resolved, nil
}
