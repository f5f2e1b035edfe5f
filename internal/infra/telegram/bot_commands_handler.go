// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"context"
	"fmt"

	"team_status_bot/internal/app"
	"team_status_bot/internal/infra/telegram/markup"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterBotCommands wires the one-shot commands that do not start a conversation.
func RegisterBotCommands(
	ctx context.Context,
	b *telebot.Bot,
	statuses *app.StatusService,
	baseLogger *logrus.Entry,
) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")
	statusLogger := baseLogger.WithField("handler_group", "status")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := startHelpLogger.WithField("command", "/start").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /start command")
		return c.Send(greeting(c.Sender().FirstName), markup.Remove())
	})

	b.Handle("/help", func(c telebot.Context) error {
		startHelpLogger.WithField("command", "/help").WithField("sender_id", c.Sender().ID).Info("Processing /help command")
		return c.Send(helpText)
	})

	b.Handle("/status", func(c telebot.Context) error {
		logCtx := statusLogger.WithField("command", "/status").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /status command")

		entries, err := statuses.ListRecent(ctx, app.DefaultWindowDays)
		if err != nil {
			logCtx.WithError(err).Error("Failed to list recent statuses")
			return c.Send(msgFailed)
		}
		return c.Send(formatRecent(entries, app.DefaultWindowDays))
	})

	b.Handle("/clearstatus", func(c telebot.Context) error {
		logCtx := statusLogger.WithField("command", "/clearstatus").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /clearstatus command")

		removed, err := statuses.DeleteToday(ctx, c.Sender().ID)
		if err != nil {
			logCtx.WithError(err).Error("Failed to delete today's status")
			return c.Send(msgFailed)
		}
		if !removed {
			return c.Send(msgNoStatusToday)
		}
		return c.Send(msgClearedToday)
	})

	b.Handle("/clearall", func(c telebot.Context) error {
		logCtx := statusLogger.WithField("command", "/clearall").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /clearall command")

		n, err := statuses.DeleteAll(ctx, c.Sender().ID)
		if err != nil {
			logCtx.WithError(err).Error("Failed to delete statuses")
			return c.Send(msgFailed)
		}
		if n == 0 {
			return c.Send(msgNoStatuses)
		}
		return c.Send(fmt.Sprintf(msgClearedAll, n))
	})

	b.Handle("/remindoff", func(c telebot.Context) error {
		return setReminders(ctx, c, statuses, statusLogger.WithField("command", "/remindoff"), false)
	})
	b.Handle("/remindon", func(c telebot.Context) error {
		return setReminders(ctx, c, statuses, statusLogger.WithField("command", "/remindon"), true)
	})
}

func setReminders(ctx context.Context, c telebot.Context, statuses *app.StatusService, logCtx *logrus.Entry, enabled bool) error {
	logCtx = logCtx.WithField("sender_id", c.Sender().ID)
	logCtx.Info("Processing reminder toggle")

	if err := statuses.SetReminders(ctx, c.Sender().ID, enabled); err != nil {
		logCtx.WithError(err).Error("Failed to toggle reminders")
		return c.Send(msgFailed)
	}
	if enabled {
		return c.Send(msgRemindersOn)
	}
	return c.Send(msgRemindersOff)
}
