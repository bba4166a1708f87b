package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// analyzeCmd runs one prospect evaluation cycle and exits.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one prospect evaluation cycle",
	Long: `Fetch rankings from all providers, enrich with live stats, compute
composite scores and refresh watchlists. Runs once and exits.

Example:
  go run ./cmd/scoutdeck analyze`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	summary, err := app.analyzer.Run(context.Background())
	if err != nil {
		return fmt.Errorf("analysis cycle failed: %w", err)
	}

	fmt.Printf("Processed: %d\n", summary.Processed)
	fmt.Printf("Updated:   %d\n", summary.Updated)
	fmt.Printf("Inserted:  %d\n", summary.Inserted)
	for source, count := range summary.DataSources {
		fmt.Printf("  %s: %d\n", source, count)
	}

	return nil
}
