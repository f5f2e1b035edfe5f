// internal/app/reminder_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"team_status_bot/internal/domain/reminder"
	"team_status_bot/internal/domain/status"
	domainTelegram "team_status_bot/internal/domain/telegram"
	"team_status_bot/internal/infra/telegram/markup"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const reminderText = "Привет! Ты ещё не указал статус на сегодня. Выбери:"

// SweepReport summarizes one reminder sweep.
type SweepReport struct {
	Date    time.Time
	Weekend bool
	Claimed bool // false when today's run already belongs to another sweep
	Users   int
	Sent    int
	Skipped int // already reported today
	Failed  int
}

// ReminderService sends the preset menu to every active user who has not
// reported a status for today.
type ReminderService struct {
	statuses       *StatusService
	runs           reminder.Repository
	telegramClient domainTelegram.Client
	logger         *logrus.Entry
}

func NewReminderService(statuses *StatusService, runs reminder.Repository, tc domainTelegram.Client, logger *logrus.Entry) *ReminderService {
	return &ReminderService{statuses: statuses, runs: runs, telegramClient: tc, logger: logger}
}

// Sweep runs one reminder pass. Saturdays and Sundays are skipped entirely,
// and a day already claimed by an earlier sweep is not repeated. Per-user
// failures are logged and counted; only store errors before the first
// reminder abort the sweep.
func (s *ReminderService) Sweep(ctx context.Context) (SweepReport, error) {
	today := s.statuses.Today()
	report := SweepReport{Date: today}
	log := s.logger.WithField("date", today.Format(status.DateLayout))

	if status.IsWeekend(today) {
		report.Weekend = true
		log.Info("Weekend, skipping reminder sweep")
		return report, nil
	}

	// Users are listed before the day is claimed, so a store failure here
	// leaves the day open for a later sweep.
	users, err := s.statuses.ListActiveUsers(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list active users")
		return report, fmt.Errorf("reminder sweep: %w", err)
	}

	run, claimed, err := s.runs.Claim(ctx, today)
	if err != nil {
		log.WithError(err).Error("Failed to claim reminder run")
		return report, fmt.Errorf("reminder sweep: %w", err)
	}
	if !claimed {
		log.Info("Reminders for today were already sent, skipping")
		return report, nil
	}
	report.Claimed = true
	report.Users = len(users)

	for _, u := range users {
		userLog := log.WithField("user_id", u.ID)

		has, err := s.statuses.HasStatusOn(ctx, u.ID, today)
		if err != nil {
			userLog.WithError(err).Error("Failed to check today's status")
			report.Failed++
			continue
		}
		if has {
			report.Skipped++
			continue
		}

		chatID := u.ChatID
		if chatID == 0 {
			chatID = u.ID // private chat ID equals the user ID
		}
		err = s.telegramClient.SendMessage(chatID, reminderText, &telebot.SendOptions{ReplyMarkup: markup.StatusMenu()})
		if err != nil {
			userLog.WithError(err).Warn("Failed to send reminder")
			report.Failed++
			continue
		}
		report.Sent++
	}

	run.Sent, run.Skipped, run.Failed = report.Sent, report.Skipped, report.Failed
	if err := s.runs.Finish(ctx, run); err != nil {
		log.WithError(err).Warn("Failed to record reminder run")
	}

	log.WithFields(logrus.Fields{
		"users":   report.Users,
		"sent":    report.Sent,
		"skipped": report.Skipped,
		"failed":  report.Failed,
	}).Info("Reminder sweep finished")
	return report, nil
}
