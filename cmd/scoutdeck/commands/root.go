package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scoutdeck",
	Short: "Prospect evaluation and card deal discovery pipeline",
	Long: `ScoutDeck

Fuses prospect rankings from multiple providers with live minor-league
stats into composite scores, then scans card marketplaces for listings
priced below estimated fair value.

Usage:
  go run ./cmd/scoutdeck [command]

Examples:
  go run ./cmd/scoutdeck api
  go run ./cmd/scoutdeck analyze
  go run ./cmd/scoutdeck scan
  go run ./cmd/scoutdeck schedule`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
