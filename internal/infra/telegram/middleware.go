package telegram

import (
	"context"

	"team_status_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// actorOf extracts who sent the update and where to answer.
func actorOf(c telebot.Context) app.Actor {
	sender := c.Sender()
	a := app.Actor{UserID: sender.ID, ChatID: sender.ID, Username: sender.Username}
	if chat := c.Chat(); chat != nil {
		a.ChatID = chat.ID
	}
	if a.Username == "" {
		a.Username = sender.FirstName
	}
	return a
}

// EnsureUser registers every sender before its update is handled. Updates
// without a sender (channel posts) are dropped.
func EnsureUser(ctx context.Context, statuses *app.StatusService, baseLogger *logrus.Entry) telebot.MiddlewareFunc {
	log := baseLogger.WithField("middleware", "ensure_user")
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if c.Sender() == nil {
				return nil
			}
			a := actorOf(c)
			if err := statuses.EnsureUser(ctx, a); err != nil {
				// Writes for an unknown user fail later and are reported there.
				log.WithError(err).WithField("sender_id", a.UserID).Error("Failed to register user")
			}
			return next(c)
		}
	}
}
