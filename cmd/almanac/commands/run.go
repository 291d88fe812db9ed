package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wonny/almanac/internal/pipeline"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the weekly reporting run",
	Long: `Executes one full reporting run for the domain:

1. Load and normalize the extract tables
2. Compute derived metrics for every team
3. Rotate current -> previous and commit the new current snapshot
4. Diff against the previous period (skipped on the first run)
5. Materialize the delta and ranking tables

Example:
  go run ./cmd/almanac run
  go run ./cmd/almanac run --domain season_1982`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	d, err := setup()
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := context.Background()

	result, err := d.runner.Run(ctx, domain)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	exportDir := filepath.Join(d.cfg.Paths.SnapshotDir, domain)
	if err := pipeline.Export(result, exportDir); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("Run complete: %d teams", len(result.Teams))
	if result.FirstRun {
		fmt.Print(" (first run, no deltas yet)")
	} else {
		fmt.Printf(", %d delta records", len(result.Deltas))
	}
	fmt.Println()

	// Quick power-ranking preview, the first thing the workflow wants
	ranked := pipeline.PowerRankings(result.Teams)
	limit := 10
	if len(ranked) < limit {
		limit = len(ranked)
	}
	fmt.Println("\nPower rankings (top", limit, "):")
	for _, row := range ranked[:limit] {
		m := row.Record
		fmt.Printf("  #%-3d %-24s %3d-%-3d (%.3f)  streak %-4s power %.0f\n",
			row.Rank, m.Name, m.Wins, m.Losses, m.WinPct, m.Streak.Display(), m.PowerTotal)
	}

	return nil
}
