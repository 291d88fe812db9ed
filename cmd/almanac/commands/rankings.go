package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/internal/pipeline"
	"github.com/wonny/almanac/internal/ranking"
)

// rankingsCmd represents the rankings command group
var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Print ranking tables from the current snapshot",
	Long: `Prints deterministic ranking tables over the committed snapshots.

Subcommands:
  power    forum power score (A+B+C+D)
  pythag   pythagorean over/under
  movers   week-over-week movement (needs two committed periods)
  streaks  longest active winning and losing streaks

Example:
  go run ./cmd/almanac rankings power
  go run ./cmd/almanac rankings movers --domain season_1982`,
}

var rankingsPowerCmd = &cobra.Command{
	Use:   "power",
	Short: "Forum power rankings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCurrentTeams(func(teams []contracts.TeamMetrics) error {
			fmt.Printf("=== %s Power Rankings ===\n", domain)
			for _, row := range pipeline.PowerRankings(teams) {
				m := row.Record
				fmt.Printf("#%-3d %-24s %3d-%-3d (%.3f) rd %+4d  A=%.0f B=%+.0f C=%+.0f D=%+.0f  total %.0f\n",
					row.Rank, m.Name, m.Wins, m.Losses, m.WinPct, m.RunDiff,
					m.PowerA, m.PowerB, m.PowerC, m.PowerD, m.PowerTotal)
			}
			return nil
		})
	},
}

var rankingsPythagCmd = &cobra.Command{
	Use:   "pythag",
	Short: "Pythagorean over/under",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCurrentTeams(func(teams []contracts.TeamMetrics) error {
			fmt.Printf("=== %s Pythagorean Over/Under ===\n", domain)
			for _, row := range pipeline.PythagOverUnder(teams) {
				m := row.Record
				fmt.Printf("#%-3d %-24s actual %.3f pythag %.3f  diff %+5.1f wins  %s\n",
					row.Rank, m.Name, m.WinPct, m.PythagWinPct, m.PythagDiff, m.AngleCategory)
			}
			return nil
		})
	},
}

var rankingsMoversCmd = &cobra.Command{
	Use:   "movers",
	Short: "Week-over-week movers",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}
		defer d.Close()

		deltas, err := d.engine.Diff(context.Background(), domain)
		if err != nil {
			return fmt.Errorf("movers: %w", err)
		}

		fmt.Printf("=== %s Weekly Movers ===\n", domain)
		for _, row := range pipeline.WeeklyMovers(deltas) {
			rec := row.Record
			if rec.Status == contracts.DeltaNew {
				fmt.Printf("#%-3d %-24s (new this period)\n", row.Rank, rec.Name)
				continue
			}
			fmt.Printf("#%-3d %-24s %+3.0f wins  %+4.0f run diff  win%% %+.3f\n",
				row.Rank, rec.Name, rec.Delta("wins"), rec.Delta("run_diff"), rec.Delta("win_pct"))
		}
		return nil
	},
}

var streakTop int

var rankingsStreaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Longest active streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCurrentTeams(func(teams []contracts.TeamMetrics) error {
			fmt.Printf("=== %s Winning Streaks ===\n", domain)
			printStreaks(pipeline.StreakLeaders(teams, contracts.StreakWin))

			fmt.Printf("\n=== %s Losing Streaks ===\n", domain)
			printStreaks(pipeline.StreakLeaders(teams, contracts.StreakLoss))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(rankingsCmd)
	rankingsCmd.AddCommand(rankingsPowerCmd)
	rankingsCmd.AddCommand(rankingsPythagCmd)
	rankingsCmd.AddCommand(rankingsMoversCmd)
	rankingsCmd.AddCommand(rankingsStreaksCmd)

	rankingsStreaksCmd.Flags().IntVar(&streakTop, "top", 5, "streaks to show per side")
}

// withCurrentTeams loads the current snapshot and hands its records to f
func withCurrentTeams(f func([]contracts.TeamMetrics) error) error {
	d, err := setup()
	if err != nil {
		return err
	}
	defer d.Close()

	snap, err := d.store.Load(context.Background(), domain, contracts.GenerationCurrent)
	if err != nil {
		return fmt.Errorf("no current snapshot for %s (run the pipeline first): %w", domain, err)
	}
	return f(snap.Records)
}

func printStreaks(rows []ranking.Ranked[contracts.TeamMetrics]) {
	if len(rows) == 0 {
		fmt.Println("  (none)")
		return
	}
	limit := streakTop
	if len(rows) < limit {
		limit = len(rows)
	}
	for _, row := range rows[:limit] {
		m := row.Record
		fmt.Printf("#%-3d %-24s %-4s  %3d-%-3d (%.3f)\n",
			row.Rank, m.Name, m.Streak.Display(), m.Wins, m.Losses, m.WinPct)
	}
}
