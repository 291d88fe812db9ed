package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names materialized per domain for the report assembly
// tooling and the season freeze
const (
	DeltasFile        = "deltas.json"
	PowerRankingsFile = "power_rankings.json"
	PythagFile        = "pythag_over_under.json"
)

// Export materializes the run's delta and ranking tables next to the
// domain's snapshot pair. Ranked lists are views, not state: they are
// rewritten wholesale each run.
func Export(result *RunResult, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export %s: %w", result.Domain, err)
	}

	if !result.FirstRun {
		if err := writeJSONFile(filepath.Join(dir, DeltasFile), result.Deltas); err != nil {
			return err
		}
	}

	if err := writeJSONFile(filepath.Join(dir, PowerRankingsFile), PowerRankings(result.Teams)); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(dir, PythagFile), PythagOverUnder(result.Teams)); err != nil {
		return err
	}

	return nil
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
