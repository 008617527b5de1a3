package tools

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nathanhack/gdd/benchmarking"
)

// BenchStats is the persisted form of a bench run: accumulated stats per
// alphabet size, tagged so continued runs are matched against the same
// family and trial size.
type BenchStats struct {
	TypeInfo string
	Stats    map[uint]benchmarking.Stats
}

// LoadResults loads a previously saved BenchStats; a missing file returns
// nil without error so callers can start fresh.
func LoadResults(filepath string) (*BenchStats, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, nil
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %v: %w", filepath, err)
	}

	var stats BenchStats
	if err := json.Unmarshal(bs, &stats); err != nil {
		return nil, fmt.Errorf("unable to parse %v: %w", filepath, err)
	}
	return &stats, nil
}

// SaveResults writes the BenchStats to filepath.
func SaveResults(filepath string, stats *BenchStats) error {
	bs, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, bs, 0644)
}
