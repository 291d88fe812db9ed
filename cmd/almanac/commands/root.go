package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	domain  string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "almanac",
	Short: "Almanac - league reporting backend",
	Long: `Almanac reporting backend.

Computes derived metrics from re-exported stat tables, rotates the
current/previous snapshot pair, and produces deltas and rankings for
the weekly reporting workflow.

Usage:
  go run ./cmd/almanac [command]

Examples:
  go run ./cmd/almanac run
  go run ./cmd/almanac rankings power
  go run ./cmd/almanac freeze --period season_1981
  go run ./cmd/almanac api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&domain, "domain", "season_1981", "tracked domain (one season)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
