package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gunneryarms/loan-notifier/internal/jobs"
	"github.com/gunneryarms/loan-notifier/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	// Daily notification run. The run itself decides which notifications
	// today's date calls for.
	_, err := s.cron.AddFunc(cfg.DailyRun, func() {
		opts := jobs.RunOptions{AdminSummary: true}
		if err := s.jobs.Run(context.Background(), opts); err != nil {
			logger.Error("Scheduled notification run failed", "error", err)
		}
	})
	if err != nil {
		logger.Error("Failed to register daily notification run", "error", err)
	}

	// Monthly penalty run on the 3rd
	_, err = s.cron.AddFunc(cfg.PenaltyRun, func() {
		applied, skipped := s.jobs.ApplyPenalties(context.Background(), false)
		logger.Info("Scheduled penalty run finished", "applied", applied, "skipped", skipped)
	})
	if err != nil {
		logger.Error("Failed to register penalty run", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has registered entries
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
