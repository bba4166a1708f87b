package jobs

import (
	"context"

	"github.com/hcallahan/scoutdeck/internal/pipeline"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

// AnalysisJob runs the daily prospect evaluation cycle.
type AnalysisJob struct {
	analyzer *pipeline.Analyzer
	schedule string
	logger   *logger.Logger
}

// NewAnalysisJob creates the prospect analysis job.
func NewAnalysisJob(analyzer *pipeline.Analyzer, schedule string, log *logger.Logger) *AnalysisJob {
	return &AnalysisJob{
		analyzer: analyzer,
		schedule: schedule,
		logger:   log,
	}
}

func (j *AnalysisJob) Name() string {
	return "prospect-analysis"
}

func (j *AnalysisJob) Schedule() string {
	return j.schedule
}

func (j *AnalysisJob) Run(ctx context.Context) error {
	summary, err := j.analyzer.Run(ctx)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"processed": summary.Processed,
		"updated":   summary.Updated,
		"inserted":  summary.Inserted,
	}).Info("Scheduled prospect analysis finished")

	return nil
}
