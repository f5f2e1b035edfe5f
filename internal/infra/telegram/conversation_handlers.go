package telegram

import (
	"context"

	"team_status_bot/internal/app"
	"team_status_bot/internal/infra/telegram/markup"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterConversationHandlers wires the calendar and status-selection flows,
// calendar button taps and free text. Text outside a conversation goes to the
// reminder replies and finally gets the help text; unknown commands are never
// taken as status text.
func RegisterConversationHandlers(
	ctx context.Context,
	b *telebot.Bot,
	statuses *app.StatusService,
	conversations *app.ConversationService,
	replies *app.ReminderReplies,
	baseLogger *logrus.Entry,
) {
	convLogger := baseLogger.WithField("handler_group", "conversation")

	begin := func(command string, start func(app.Actor) app.Outcome) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			a := actorOf(c)
			convLogger.WithField("command", command).WithField("sender_id", a.UserID).Info("Starting conversation")
			return deliver(c, render(start(a), statuses.Today()))
		}
	}

	b.Handle("/setstatus", begin("/setstatus", conversations.BeginToday))
	b.Handle("/calendar", begin("/calendar", conversations.BeginRange))
	b.Handle("/clearbydate", begin("/clearbydate", conversations.BeginClear))

	b.Handle("/cancel", func(c telebot.Context) error {
		a := actorOf(c)
		convLogger.WithField("command", "/cancel").WithField("sender_id", a.UserID).Info("Processing /cancel command")
		if !conversations.Cancel(a) {
			return c.Send(msgNothingToCancel, markup.Remove())
		}
		return c.Send(msgCancelled, markup.Remove())
	})

	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		a := actorOf(c)
		logCtx := convLogger.WithField("sender_id", a.UserID)
		if err := c.Respond(); err != nil {
			logCtx.WithError(err).Warn("Failed to answer callback query")
		}

		out, err := conversations.HandleCallback(ctx, a, c.Callback().Data)
		if err != nil {
			logCtx.WithError(err).Error("Calendar step failed")
		}
		return deliver(c, render(out, statuses.Today()))
	})

	b.Handle(telebot.OnText, func(c telebot.Context) error {
		a := actorOf(c)
		logCtx := convLogger.WithField("sender_id", a.UserID)

		out, handled, err := routeText(ctx, a, c.Text(), conversations.HandleText, replies.Handle)
		if err != nil {
			logCtx.WithError(err).Error("Text step failed")
		}
		if !handled {
			if isCommand(c.Text()) {
				return c.Send(msgUnknownCommand + "\n\n" + helpText)
			}
			return c.Send(helpText)
		}
		return deliver(c, render(out, statuses.Today()))
	})
}
