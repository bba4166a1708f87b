package jobs

import (
	"context"

	"github.com/hcallahan/scoutdeck/internal/pipeline"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

// ScanJob runs the hourly market scan cycle.
type ScanJob struct {
	scanner  *pipeline.Scanner
	schedule string
	logger   *logger.Logger
}

// NewScanJob creates the market scan job.
func NewScanJob(scanner *pipeline.Scanner, schedule string, log *logger.Logger) *ScanJob {
	return &ScanJob{
		scanner:  scanner,
		schedule: schedule,
		logger:   log,
	}
}

func (j *ScanJob) Name() string {
	return "market-scan"
}

func (j *ScanJob) Schedule() string {
	return j.schedule
}

func (j *ScanJob) Run(ctx context.Context) error {
	summary, err := j.scanner.Run(ctx)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"deals_found":    summary.DealsFound,
		"deals_inserted": summary.DealsInserted,
		"users_scanned":  summary.UsersScanned,
	}).Info("Scheduled market scan finished")

	return nil
}
