package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcallahan/scoutdeck/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	err      error
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }
func (j *stubJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := New(logger.NewNop())

	require.NoError(t, s.AddJob(&stubJob{name: "market-scan", schedule: "0 0 * * * *"}))
	err := s.AddJob(&stubJob{name: "market-scan", schedule: "0 0 * * * *"})
	assert.Error(t, err)
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := New(logger.NewNop())

	err := s.AddJob(&stubJob{name: "broken", schedule: "not a cron expr"})
	assert.Error(t, err)
}

func TestRunJobUnknownName(t *testing.T) {
	s := New(logger.NewNop())
	assert.Error(t, s.RunJob("missing"))
}

func TestRunJobRecordsHistory(t *testing.T) {
	s := New(logger.NewNop())
	s.retryDelay = time.Millisecond

	job := &stubJob{name: "prospect-analysis", schedule: "0 0 6 * * *"}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.GetJobHistory("prospect-analysis")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)

	last := history.Last()
	require.NotNil(t, last)
	assert.True(t, last.Success)
	assert.Equal(t, 1, last.Attempts)
	assert.Equal(t, int32(1), job.runs.Load())
	assert.Equal(t, 1.0, history.SuccessRate())
}

func TestRunJobRetriesOnFailure(t *testing.T) {
	s := New(logger.NewNop())
	s.retryDelay = time.Millisecond

	job := &stubJob{name: "flaky", schedule: "0 0 * * * *", err: errors.New("boom")}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.GetJobHistory("flaky")
	require.NoError(t, err)

	last := history.Last()
	require.NotNil(t, last)
	assert.False(t, last.Success)
	assert.Equal(t, s.maxRetries+1, last.Attempts)
	assert.Equal(t, "boom", last.Error)
}

func TestJobHistoryRetentionCap(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.Add(JobResult{JobName: "x", Success: true})
	}
	assert.Len(t, h.Results, historyLimit)
}
