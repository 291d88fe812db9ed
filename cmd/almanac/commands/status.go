package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/almanac/internal/contracts"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show snapshot and archive state for the domain",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := context.Background()
		fmt.Printf("Domain: %s\n", domain)

		for _, gen := range []contracts.Generation{contracts.GenerationCurrent, contracts.GenerationPrevious} {
			snap, err := d.store.Load(ctx, domain, gen)
			if err != nil {
				if errors.Is(err, contracts.ErrSnapshotNotFound) {
					fmt.Printf("  %-9s (none)\n", gen)
					continue
				}
				return fmt.Errorf("status: %w", err)
			}
			fmt.Printf("  %-9s %d records, committed %s\n",
				gen, len(snap.Records), snap.CreatedAt.Format("2006-01-02 15:04:05 MST"))
		}

		if d.archiver.Frozen(domain) {
			fmt.Printf("  archive   frozen (%s)\n", d.archiver.ManifestPath(domain))
		} else {
			fmt.Println("  archive   not frozen")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
