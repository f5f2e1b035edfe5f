package app

import (
	"context"
	"strings"
	"time"

	"team_status_bot/internal/domain/status"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

// ReminderReplies answers the preset menu sent by the reminder sweep. It only
// sees messages that arrive outside a conversation and always writes today's
// status.
type ReminderReplies struct {
	statuses *StatusService
	awaiting *expirable.LRU[int64, struct{}] // users who tapped "write custom"
	logger   *logrus.Entry
}

func NewReminderReplies(statuses *StatusService, size int, ttl time.Duration, logger *logrus.Entry) *ReminderReplies {
	return &ReminderReplies{
		statuses: statuses,
		awaiting: expirable.NewLRU[int64, struct{}](size, nil, ttl),
		logger:   logger,
	}
}

// Handle reports handled=false when text is not a reminder answer.
func (r *ReminderReplies) Handle(ctx context.Context, a Actor, text string) (Outcome, bool, error) {
	_, typing := r.awaiting.Get(a.UserID)

	switch {
	case typing && text == status.Cancel:
		r.awaiting.Remove(a.UserID)
		return Outcome{Kind: OutcomeCancelled, Flow: FlowToday}, true, nil
	case typing && strings.TrimSpace(text) != "":
		r.awaiting.Remove(a.UserID)
		return r.save(ctx, a, text)
	case status.IsPreset(text):
		return r.save(ctx, a, text)
	case text == status.WriteCustom:
		r.awaiting.Add(a.UserID, struct{}{})
		return Outcome{Kind: OutcomeAskCustomText, Flow: FlowToday, Period: status.SingleDay(r.statuses.Today())}, true, nil
	}
	return Outcome{}, false, nil
}

func (r *ReminderReplies) save(ctx context.Context, a Actor, text string) (Outcome, bool, error) {
	today := r.statuses.Today()
	if err := r.statuses.UpsertStatus(ctx, a, text, today); err != nil {
		r.logger.WithError(err).WithField("user_id", a.UserID).Error("Failed to save reminder reply")
		return Outcome{Kind: OutcomeFailed, Flow: FlowToday}, true, err
	}
	r.logger.WithField("user_id", a.UserID).Info("Status saved from reminder reply")
	return Outcome{
		Kind:   OutcomeSaved,
		Flow:   FlowToday,
		Period: status.SingleDay(today),
		Text:   text,
		Days:   1,
	}, true, nil
}
