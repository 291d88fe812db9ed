package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wonny/almanac/internal/archive"
	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/internal/pipeline"
)

var freezePeriod string

// freezeCmd represents the freeze command
var freezeCmd = &cobra.Command{
	Use:   "freeze",
	Short: "Freeze a completed period into the archive",
	Long: `Freezes the period's derived artifacts into an immutable archive
bundle with a manifest. The current snapshot and ranking tables are
required; the previous snapshot and delta table are optional because a
single-run period never produced them.

Freezing is write-once: a period with an existing manifest cannot be
frozen again.

Example:
  go run ./cmd/almanac freeze
  go run ./cmd/almanac freeze --period season_1981`,
	RunE: runFreeze,
}

func init() {
	rootCmd.AddCommand(freezeCmd)
	freezeCmd.Flags().StringVar(&freezePeriod, "period", "", "period to freeze (defaults to --domain)")
}

func runFreeze(cmd *cobra.Command, args []string) error {
	d, err := setup()
	if err != nil {
		return err
	}
	defer d.Close()

	period := freezePeriod
	if period == "" {
		period = domain
	}

	snapDir := filepath.Join(d.cfg.Paths.SnapshotDir, period)

	required := []archive.Artifact{
		{LogicalName: "current snapshot", Path: filepath.Join(snapDir, "current.json")},
		{LogicalName: "power rankings", Path: filepath.Join(snapDir, pipeline.PowerRankingsFile)},
		{LogicalName: "pythagorean over/under", Path: filepath.Join(snapDir, pipeline.PythagFile)},
	}
	optional := []archive.Artifact{
		{LogicalName: "previous snapshot", Path: filepath.Join(snapDir, "previous.json")},
		{LogicalName: "weekly deltas", Path: filepath.Join(snapDir, pipeline.DeltasFile)},
	}

	manifest, err := d.archiver.Freeze(period, required, optional)
	if err != nil {
		var frozen *contracts.AlreadyFrozenError
		if errors.As(err, &frozen) {
			return fmt.Errorf("period %s is already frozen (manifest at %s)", frozen.Period, frozen.Manifest)
		}
		var incomplete *contracts.IncompleteSnapshotError
		if errors.As(err, &incomplete) {
			fmt.Printf("Cannot freeze %s, missing required artifacts:\n", period)
			for _, path := range incomplete.Missing {
				fmt.Printf("  - %s\n", path)
			}
			return errors.New("freeze aborted")
		}
		return err
	}

	fmt.Printf("Frozen %s: %d files in %s\n", period, len(manifest.Files), manifest.ArchiveDir)
	for _, f := range manifest.Files {
		fmt.Printf("  %-24s %8d bytes\n", f.LogicalName, f.Bytes)
	}
	for _, name := range manifest.SkippedOptional {
		fmt.Printf("  %-24s (optional, not present)\n", name)
	}
	return nil
}
