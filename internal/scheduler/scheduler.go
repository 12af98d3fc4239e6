// Package scheduler wires the job runner into cron.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"rentdesk-backend/internal/jobs"
	"rentdesk-backend/internal/logger"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.Runner
}

// NewScheduler creates a scheduler with UTC timezone and seconds precision.
func NewScheduler(runner *jobs.Runner) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: runner,
	}
	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.ApplyLateFees, func() {
		_ = s.jobs.ApplyLateFees(context.Background())
	}); err != nil {
		logger.Error("Failed to register ApplyLateFees job", "error", err)
	}

	if _, err := s.cron.AddFunc(cfg.RefreshNotifications, func() {
		_ = s.jobs.RefreshNotifications(context.Background())
	}); err != nil {
		logger.Error("Failed to register RefreshNotifications job", "error", err)
	}

	if _, err := s.cron.AddFunc(cfg.SendUpcomingReminders, func() {
		_ = s.jobs.SendUpcomingReminders(context.Background())
	}); err != nil {
		logger.Error("Failed to register SendUpcomingReminders job", "error", err)
	}

	if _, err := s.cron.AddFunc(cfg.SendOverdueReminders, func() {
		_ = s.jobs.SendOverdueReminders(context.Background())
	}); err != nil {
		logger.Error("Failed to register SendOverdueReminders job", "error", err)
	}

	logger.Info("All cron jobs registered")
}

// Start begins executing scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Scheduler stopped")
}
