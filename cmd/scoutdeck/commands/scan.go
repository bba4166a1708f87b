package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// scanCmd runs one market scan cycle and exits.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one market scan cycle",
	Long: `Search all marketplaces for every watched player, estimate fair
value and store listings that clear the profit thresholds. Runs once
and exits.

Example:
  go run ./cmd/scoutdeck scan`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	summary, err := app.scanner.Run(context.Background())
	if err != nil {
		return fmt.Errorf("scan cycle failed: %w", err)
	}

	fmt.Printf("Users scanned:  %d\n", summary.UsersScanned)
	fmt.Printf("Deals found:    %d\n", summary.DealsFound)
	fmt.Printf("Deals inserted: %d\n", summary.DealsInserted)

	return nil
}
