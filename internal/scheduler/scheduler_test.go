package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gunneryarms/loan-notifier/internal/config"
	"github.com/gunneryarms/loan-notifier/internal/jobs"
)

func testRunner(daily, penalty string) *jobs.JobRunner {
	cfg := &config.Config{}
	cfg.Scheduler.DailyRun = daily
	cfg.Scheduler.PenaltyRun = penalty
	return jobs.NewJobRunner(jobs.Repositories{}, nil, cfg)
}

func TestNewScheduler_RegistersJobs(t *testing.T) {
	s := NewScheduler(testRunner("0 0 6 * * *", "0 30 6 3 * *"))
	assert.True(t, s.IsRunning(), "both cron entries should be registered")

	s.Start()
	s.Stop()
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	// Bad specs are logged and skipped, never fatal
	s := NewScheduler(testRunner("not a cron spec", "0 30 6 3 * *"))
	assert.True(t, s.IsRunning(), "the valid entry still registers")
}
