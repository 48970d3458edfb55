// Package cron schedules the weekly reminder and deadline jobs using
// robfig/cron.
package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/samihq/weekly-reports/internal/domain/notify"
	"github.com/samihq/weekly-reports/pkg/config"
)

// Scheduler manages the recurring notification jobs.
type Scheduler struct {
	cron   *cron.Cron
	notify *notify.Service
	cfg    config.ReportConfig
	logger *slog.Logger
}

// NewScheduler creates a scheduler in the reporting timezone.
func NewScheduler(notifySvc *notify.Service, cfg config.ReportConfig, logger *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))),
	)

	return &Scheduler{
		cron:   c,
		notify: notifySvc,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Start registers the reminder and deadline jobs and begins running them.
// The reminder fires a configurable number of hours before the deadline,
// the digest fires at the deadline itself.
func (s *Scheduler) Start() error {
	reminderDay, reminderHour := s.reminderSlot()

	reminderSpec := fmt.Sprintf("%d %d * * %d", s.cfg.DeadlineMinute, reminderHour, reminderDay)
	if _, err := s.cron.AddFunc(reminderSpec, s.runReminders); err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}

	deadlineSpec := fmt.Sprintf("%d %d * * %d", s.cfg.DeadlineMinute, s.cfg.DeadlineHour, s.cfg.DeadlineDay)
	if _, err := s.cron.AddFunc(deadlineSpec, s.runDeadlineDigest); err != nil {
		return fmt.Errorf("failed to schedule deadline job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.String("reminder", reminderSpec),
		slog.String("deadline", deadlineSpec),
		slog.String("timezone", s.cfg.Timezone))
	return nil
}

// Stop gracefully stops the scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunRemindersNow manually triggers the reminder round, for admins.
func (s *Scheduler) RunRemindersNow() {
	go s.runReminders()
}

// reminderSlot shifts the deadline back by the reminder offset, wrapping
// across midnight into the previous weekday when needed.
func (s *Scheduler) reminderSlot() (day, hour int) {
	day = s.cfg.DeadlineDay
	hour = s.cfg.DeadlineHour - s.cfg.ReminderHours
	for hour < 0 {
		hour += 24
		day--
	}
	if day < 0 {
		day += 7
	}
	return day, hour
}

func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	s.logger.Info("running reminder job")
	sent, failed, err := s.notify.RemindMissing(ctx)
	if err != nil {
		s.logger.Error("reminder job failed", slog.Any("error", err))
		return
	}
	s.logger.Info("reminder job completed", slog.Int("sent", sent), slog.Int("failed", failed))
}

func (s *Scheduler) runDeadlineDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	s.logger.Info("running deadline digest job")
	if err := s.notify.DeadlineDigest(ctx); err != nil {
		s.logger.Error("deadline digest job failed", slog.Any("error", err))
		return
	}
	s.logger.Info("deadline digest job completed")
}
