package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hcallahan/scoutdeck/internal/scheduler"
	"github.com/hcallahan/scoutdeck/internal/scheduler/jobs"
)

// scheduleCmd runs both pipelines on their cron schedules.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipelines on their schedules",
	Long: `Start the scheduler with the prospect-analysis and market-scan
jobs. Schedules come from ANALYZE_SCHEDULE and SCAN_SCHEDULE.

Example:
  go run ./cmd/scoutdeck schedule`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	sched := scheduler.New(app.log)

	if err := sched.AddJob(jobs.NewAnalysisJob(app.analyzer, app.cfg.AnalyzeSchedule, app.log)); err != nil {
		return fmt.Errorf("add analysis job: %w", err)
	}
	if err := sched.AddJob(jobs.NewScanJob(app.scanner, app.cfg.ScanSchedule, app.log)); err != nil {
		return fmt.Errorf("add scan job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	fmt.Println("Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
