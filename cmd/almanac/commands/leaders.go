package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wonny/almanac/internal/pipeline"
	"github.com/wonny/almanac/internal/ranking"
)

// leadersCmd represents the leaders command
var leadersCmd = &cobra.Command{
	Use:   "leaders",
	Short: "Face of the franchise per team",
	Long: `Picks the most popular player on each team from the player value
extract: local popularity first, then national popularity, then season
value. Players without a team assignment are grouped separately.

Example:
  go run ./cmd/almanac leaders`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}
		defer d.Close()

		players, err := d.runner.Players(context.Background())
		if err != nil {
			return fmt.Errorf("leaders: %w", err)
		}

		faces := pipeline.FaceOfFranchise(players)

		groups := make([]string, 0, len(faces))
		for g := range faces {
			groups = append(groups, g)
		}
		sort.Strings(groups)

		fmt.Println("=== Face of the Franchise ===")
		for _, g := range groups {
			p := faces[g]
			label := g
			if g == ranking.UngroupedBucket {
				label = "(no team)"
			}
			fmt.Printf("%-6s %-24s %-4s local %d national %d WAR %.1f\n",
				label, p.Name, p.Position, p.LocalPop, p.NationalPop, p.TotalWAR)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(leadersCmd)
}
