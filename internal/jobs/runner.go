// Package jobs holds the scheduled automation: late fee accrual, upcoming and
// overdue reminder emails, and notification feed refreshes. Jobs run from the
// cron scheduler and from the admin automation endpoints.
package jobs

import (
	"context"
	"fmt"
	"time"

	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/metrics"
	"rentdesk-backend/internal/repository"
	"rentdesk-backend/internal/service"
)

// Runner coordinates all scheduled jobs.
type Runner struct {
	orders        repository.OrderRepository
	notifications service.NotificationService
	email         service.EmailService
	config        *config.Config
	now           func() time.Time
}

func NewRunner(orders repository.OrderRepository, notifications service.NotificationService, email service.EmailService, cfg *config.Config) *Runner {
	return &Runner{
		orders:        orders,
		notifications: notifications,
		email:         email,
		config:        cfg,
		now:           time.Now,
	}
}

func (r *Runner) Config() *config.Config {
	return r.config
}

// RunAll executes every job once, for manual runs and the cronjob binary's
// run-once mode. Errors are logged per job; the last one is returned.
func (r *Runner) RunAll(ctx context.Context) error {
	var lastErr error
	if err := r.ApplyLateFees(ctx); err != nil {
		lastErr = err
	}
	if err := r.RefreshNotifications(ctx); err != nil {
		lastErr = err
	}
	if err := r.SendUpcomingReminders(ctx); err != nil {
		lastErr = err
	}
	if err := r.SendOverdueReminders(ctx); err != nil {
		lastErr = err
	}
	return lastErr
}

// runWithRecovery wraps job execution with panic recovery so a bad order
// cannot kill the scheduler. Each run reports exactly one outcome: panic,
// error, or ok.
func (r *Runner) runWithRecovery(ctx context.Context, jobName string, jobFunc func(ctx context.Context) error) error {
	var (
		err      error
		panicked bool
	)
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				panicked = true
				err = fmt.Errorf("job %s panicked: %v", jobName, rec)
				logger.Error("Job panicked", "job", jobName, "panic", rec)
				metrics.JobRunsTotal.WithLabelValues(jobName, "panic").Inc()
			}
		}()

		logger.Info("Starting job", "job", jobName)
		err = jobFunc(ctx)
	}()

	if panicked {
		return err
	}
	if err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		metrics.JobRunsTotal.WithLabelValues(jobName, "error").Inc()
		return err
	}
	logger.Info("Job completed", "job", jobName)
	metrics.JobRunsTotal.WithLabelValues(jobName, "ok").Inc()
	return nil
}
