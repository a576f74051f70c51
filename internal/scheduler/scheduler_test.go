package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerpulse/backend/pkg/config"
	"github.com/tickerpulse/backend/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	err      error
	runs     int
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }
func (j *stubJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

func schedLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := New(schedLogger())

	require.NoError(t, s.AddJob(&stubJob{name: "scan", schedule: "@hourly"}))
	err := s.AddJob(&stubJob{name: "scan", schedule: "@daily"})
	assert.Error(t, err)

	assert.Equal(t, []string{"scan"}, s.GetAllJobs())
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := New(schedLogger())
	err := s.AddJob(&stubJob{name: "scan", schedule: "not a cron expression"})
	assert.Error(t, err)
}

func TestRunJobUnknownName(t *testing.T) {
	s := New(schedLogger())
	assert.Error(t, s.RunJob("missing"))
}

func TestJobHistoryWindow(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "scan", Success: i%2 == 0})
	}

	assert.Len(t, h.Results, 100, "history keeps the last 100 results")
	assert.Len(t, h.GetLatestResults(10), 10)
	assert.InDelta(t, 0.5, h.GetSuccessRate(), 0.01)
}

func TestJobHistoryFailedResults(t *testing.T) {
	h := &JobHistory{}
	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: false, Error: errors.New("boom").Error()})

	failed := h.GetFailedResults()
	require.Len(t, failed, 1)
	assert.Equal(t, "boom", failed[0].Error)
}
