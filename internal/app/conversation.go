package app

import (
	"context"
	"strings"
	"time"

	"team_status_bot/internal/domain/calendar"
	"team_status_bot/internal/domain/status"

	"github.com/sirupsen/logrus"
)

// OutcomeKind tells the transport what to show after a conversation step.
type OutcomeKind int

const (
	OutcomeIgnored        OutcomeKind = iota // nothing to show
	OutcomeCalendar                          // show Grid; Flow picks the header on entry
	OutcomeAskRangeEnd                       // start recorded, show Grid to pick the end
	OutcomeRangeRejected                     // end before start, show Grid again
	OutcomeChooseStatus                      // show the preset menu for Period
	OutcomeChoiceReprompt                    // input was not a menu option
	OutcomeAskCustomText                     // ask for free-form text
	OutcomeUsePicker                         // text arrived while a calendar is expected
	OutcomeSaved                             // Text saved for Period (Days rows)
	OutcomeCleared                           // status on Date deleted
	OutcomeNothingToClear                    // no status on Date
	OutcomeCancelled                         // conversation aborted, nothing written
	OutcomeFailed                            // store error, conversation ended
)

// Outcome is the result of one conversation step.
type Outcome struct {
	Kind   OutcomeKind
	Flow   Flow
	Grid   calendar.Grid
	Period status.Period
	Date   time.Time
	Text   string
	Days   int
}

// step is what a transition decides: the next state (nil ends the
// conversation), what to show, and at most one store operation.
type step struct {
	next  State
	out   Outcome
	write *statusWrite
	clear *time.Time
}

type statusWrite struct {
	text   string
	period status.Period
}

// selectDay is the transition for a tapped calendar day.
func selectDay(st State, day time.Time) step {
	switch st := st.(type) {
	case RangeStart:
		return step{
			next: RangeEnd{Start: day},
			out: Outcome{
				Kind: OutcomeAskRangeEnd,
				Flow: FlowRange,
				Grid: calendar.Render(day.Year(), day.Month()),
				Date: day,
			},
		}
	case RangeEnd:
		p, err := status.NewPeriod(st.Start, day)
		if err != nil {
			return step{
				next: st,
				out: Outcome{
					Kind: OutcomeRangeRejected,
					Flow: FlowRange,
					Grid: calendar.Render(st.Start.Year(), st.Start.Month()),
					Date: st.Start,
				},
			}
		}
		return step{
			next: RangeChoice{Period: p},
			out:  Outcome{Kind: OutcomeChooseStatus, Flow: FlowRange, Period: p},
		}
	case ClearDate:
		return step{clear: &day, out: Outcome{Flow: FlowClear, Date: day}}
	}
	return step{next: st, out: Outcome{Kind: OutcomeIgnored, Flow: st.Flow()}}
}

// receiveText is the transition for a text message. today resolves the
// same-day flow's target.
func receiveText(st State, text string, today time.Time) step {
	switch st := st.(type) {
	case TodayChoice:
		return choose(st, text, status.SingleDay(today), TodayText{})
	case RangeChoice:
		return choose(st, text, st.Period, RangeText{Period: st.Period})
	case TodayText:
		return custom(st, text, status.SingleDay(today))
	case RangeText:
		return custom(st, text, st.Period)
	}
	return step{next: st, out: Outcome{Kind: OutcomeUsePicker, Flow: st.Flow()}}
}

func choose(st State, text string, p status.Period, typing State) step {
	switch {
	case status.IsPreset(text):
		return step{write: &statusWrite{text: text, period: p}, out: Outcome{Flow: st.Flow()}}
	case text == status.WriteCustom:
		return step{next: typing, out: Outcome{Kind: OutcomeAskCustomText, Flow: st.Flow(), Period: p}}
	}
	return step{next: st, out: Outcome{Kind: OutcomeChoiceReprompt, Flow: st.Flow(), Period: p}}
}

func custom(st State, text string, p status.Period) step {
	switch {
	case text == status.Cancel:
		return step{out: Outcome{Kind: OutcomeCancelled, Flow: st.Flow()}}
	case strings.TrimSpace(text) == "":
		return step{next: st, out: Outcome{Kind: OutcomeAskCustomText, Flow: st.Flow(), Period: p}}
	}
	return step{write: &statusWrite{text: text, period: p}, out: Outcome{Flow: st.Flow()}}
}

// ConversationService drives the per-user selection state machine. Calls for
// the same user must not run concurrently; the transport serializes them.
type ConversationService struct {
	statuses *StatusService
	sessions *Sessions
	logger   *logrus.Entry
}

func NewConversationService(statuses *StatusService, sessions *Sessions, logger *logrus.Entry) *ConversationService {
	return &ConversationService{statuses: statuses, sessions: sessions, logger: logger}
}

// BeginToday starts the same-day flow, replacing any active conversation.
func (s *ConversationService) BeginToday(a Actor) Outcome {
	s.sessions.Put(a.UserID, TodayChoice{})
	return Outcome{Kind: OutcomeChooseStatus, Flow: FlowToday, Period: status.SingleDay(s.statuses.Today())}
}

// BeginRange starts the range flow on the current month.
func (s *ConversationService) BeginRange(a Actor) Outcome {
	s.sessions.Put(a.UserID, RangeStart{})
	return Outcome{Kind: OutcomeCalendar, Flow: FlowRange, Grid: calendar.Current(s.statuses.Now())}
}

// BeginClear starts the delete-by-date flow on the current month.
func (s *ConversationService) BeginClear(a Actor) Outcome {
	s.sessions.Put(a.UserID, ClearDate{})
	return Outcome{Kind: OutcomeCalendar, Flow: FlowClear, Grid: calendar.Current(s.statuses.Now())}
}

// Cancel drops the user's conversation. It reports whether one was active.
func (s *ConversationService) Cancel(a Actor) bool {
	return s.sessions.Remove(a.UserID)
}

// Active returns the user's current state, if any.
func (s *ConversationService) Active(userID int64) (State, bool) {
	return s.sessions.Get(userID)
}

// HandleCallback processes a calendar button payload. Navigation re-renders
// the calendar without touching state; unknown payloads and day taps outside
// a calendar state are ignored.
func (s *ConversationService) HandleCallback(ctx context.Context, a Actor, payload string) (Outcome, error) {
	action, err := calendar.Parse(payload)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", a.UserID).Debug("Ignoring callback")
		return Outcome{Kind: OutcomeIgnored}, nil
	}

	st, active := s.sessions.Get(a.UserID)
	flow := FlowRange
	if active {
		flow = st.Flow()
	}

	switch action.Kind {
	case calendar.ActionToday:
		s.touch(a.UserID, st, active)
		return Outcome{Kind: OutcomeCalendar, Flow: flow, Grid: calendar.Current(s.statuses.Now())}, nil
	case calendar.ActionPrev, calendar.ActionNext:
		s.touch(a.UserID, st, active)
		return Outcome{Kind: OutcomeCalendar, Flow: flow, Grid: calendar.Render(action.Year, action.Month)}, nil
	case calendar.ActionSelectDay:
		if !active {
			return Outcome{Kind: OutcomeIgnored}, nil
		}
		return s.apply(ctx, a, selectDay(st, action.Date(s.statuses.Location())))
	}
	return Outcome{Kind: OutcomeIgnored, Flow: flow}, nil
}

// HandleText processes a text message. handled is false when the user has no
// active conversation, leaving the message to other capabilities.
func (s *ConversationService) HandleText(ctx context.Context, a Actor, text string) (out Outcome, handled bool, err error) {
	st, active := s.sessions.Get(a.UserID)
	if !active {
		return Outcome{}, false, nil
	}
	out, err = s.apply(ctx, a, receiveText(st, text, s.statuses.Today()))
	return out, true, err
}

// apply performs the step's store operation and stores or drops the next state.
func (s *ConversationService) apply(ctx context.Context, a Actor, st step) (Outcome, error) {
	out := st.out
	log := s.logger.WithFields(logrus.Fields{"user_id": a.UserID, "flow": out.Flow})

	switch {
	case st.write != nil:
		n, err := s.statuses.Save(ctx, a, st.write.text, st.write.period)
		if err != nil {
			s.sessions.Remove(a.UserID)
			log.WithError(err).Error("Failed to save status")
			return Outcome{Kind: OutcomeFailed, Flow: out.Flow}, err
		}
		out.Kind = OutcomeSaved
		out.Text = st.write.text
		out.Period = st.write.period
		out.Days = n
		log.WithFields(logrus.Fields{"period": st.write.period.String(), "days": n}).Info("Status saved")

	case st.clear != nil:
		removed, err := s.statuses.DeleteOn(ctx, a.UserID, *st.clear)
		if err != nil {
			s.sessions.Remove(a.UserID)
			log.WithError(err).Error("Failed to delete status")
			return Outcome{Kind: OutcomeFailed, Flow: out.Flow}, err
		}
		out.Date = *st.clear
		out.Kind = OutcomeNothingToClear
		if removed {
			out.Kind = OutcomeCleared
		}
		log.WithFields(logrus.Fields{"date": st.clear.Format(status.DateLayout), "removed": removed}).Info("Status cleared by date")
	}

	if st.next == nil {
		s.sessions.Remove(a.UserID)
	} else {
		s.sessions.Put(a.UserID, st.next)
	}
	return out, nil
}

// touch restarts the expiry of an active conversation during navigation.
func (s *ConversationService) touch(userID int64, st State, active bool) {
	if active {
		s.sessions.Put(userID, st)
	}
}
