package scheduler

import (
	"context"
	"fmt"
	"time"

	"team_status_bot/internal/app"
	"team_status_bot/internal/domain/status"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// sweepTimeout bounds one reminder run.
const sweepTimeout = 5 * time.Minute

// Sweeper is the reminder job the scheduler triggers.
type Sweeper interface {
	Sweep(ctx context.Context) (app.SweepReport, error)
}

type ReminderScheduler struct {
	cronEngine *cron.Cron
	sweeper    Sweeper
	logger     *logrus.Entry
	cronSpec   string
}

func NewReminderScheduler(
	sweeper Sweeper,
	logger *logrus.Entry,
	loc *time.Location,
	cronSpec string, // e.g., "0 10 * * *" (10:00 daily)
) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine: cron.New(cron.WithLocation(loc)),
		sweeper:    sweeper,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *ReminderScheduler) Start() error {
	s.logger.WithField("cron_spec", s.cronSpec).Info("Starting reminder scheduler...")

	if _, err := s.cronEngine.AddFunc(s.cronSpec, s.runSweep); err != nil {
		return fmt.Errorf("could not add reminder cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.Info("Reminder scheduler started.")
	return nil
}

func (s *ReminderScheduler) runSweep() {
	s.logger.Info("Cron job triggered for daily reminders.")
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	report, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Error during reminder sweep")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"date":    report.Date.Format(status.DateLayout),
		"weekend": report.Weekend,
		"users":   report.Users,
		"sent":    report.Sent,
		"skipped": report.Skipped,
		"failed":  report.Failed,
	}).Info("Reminder sweep finished")
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
