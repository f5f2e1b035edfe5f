package telegram

import (
	"fmt"
	"strings"
	"time"

	"team_status_bot/internal/app"
	"team_status_bot/internal/domain/status"
	"team_status_bot/internal/infra/telegram/markup"

	"gopkg.in/telebot.v3"
)

type replyMode int

const (
	modeSend     replyMode = iota // new message
	modeEdit                      // replace the text (and keyboard) of the calendar message
	modeKeyboard                  // swap only the calendar keyboard
)

type reply struct {
	mode   replyMode
	text   string
	markup *telebot.ReplyMarkup
}

func (r reply) empty() bool {
	return r.text == "" && r.markup == nil
}

// render decides how an outcome is shown. Edit modes only apply to updates
// that come from a calendar button; text updates always get a new message.
func render(out app.Outcome, today time.Time) reply {
	switch out.Kind {
	case app.OutcomeCalendar:
		return reply{mode: modeKeyboard, text: calendarHeader(out.Flow), markup: markup.Calendar(out.Grid)}
	case app.OutcomeAskRangeEnd:
		return reply{
			mode:   modeEdit,
			text:   fmt.Sprintf(msgPickRangeEnd, out.Date.Format(status.DateLayout)),
			markup: markup.Calendar(out.Grid),
		}
	case app.OutcomeRangeRejected:
		return reply{mode: modeEdit, text: msgRangeRejected, markup: markup.Calendar(out.Grid)}
	case app.OutcomeChooseStatus:
		text := msgChooseToday
		if out.Flow == app.FlowRange {
			text = fmt.Sprintf(msgChooseRange, out.Period.Start.Format(status.DateLayout), out.Period.End.Format(status.DateLayout))
		}
		return reply{text: text, markup: markup.StatusMenu()}
	case app.OutcomeChoiceReprompt:
		return reply{text: msgChoiceReprompt, markup: markup.StatusMenu()}
	case app.OutcomeAskCustomText:
		return reply{text: msgAskCustom, markup: markup.CancelOnly()}
	case app.OutcomeUsePicker:
		return reply{text: msgUsePicker}
	case app.OutcomeSaved:
		return reply{text: savedText(out.Period, today), markup: markup.Remove()}
	case app.OutcomeCleared:
		return reply{mode: modeEdit, text: fmt.Sprintf(msgCleared, out.Date.Format(status.DateLayout))}
	case app.OutcomeNothingToClear:
		return reply{mode: modeEdit, text: fmt.Sprintf(msgNothingToClear, out.Date.Format(status.DateLayout))}
	case app.OutcomeCancelled:
		return reply{text: msgCancelled, markup: markup.Remove()}
	case app.OutcomeFailed:
		return reply{text: msgFailed, markup: markup.Remove()}
	}
	return reply{}
}

func calendarHeader(flow app.Flow) string {
	if flow == app.FlowClear {
		return msgPickClearDate
	}
	return msgPickRangeStart
}

func savedText(p status.Period, today time.Time) string {
	switch {
	case p.IsSingleDay() && p.Start.Equal(today):
		return msgSavedToday
	case p.IsSingleDay():
		return fmt.Sprintf(msgSavedDay, p.Start.Format(status.DateLayout))
	}
	return fmt.Sprintf(msgSavedRange, p.Start.Format(status.DateLayout), p.End.Format(status.DateLayout))
}

// deliver sends r through c. Outside callbacks every reply is a new message.
func deliver(c telebot.Context, r reply) error {
	if r.empty() {
		return nil
	}

	var opts []interface{}
	if r.markup != nil {
		opts = append(opts, r.markup)
	}

	if c.Callback() != nil {
		switch r.mode {
		case modeKeyboard:
			_, err := c.Bot().EditReplyMarkup(c.Callback(), r.markup)
			return ignoreNotModified(err)
		case modeEdit:
			return ignoreNotModified(c.Edit(r.text, opts...))
		}
	}
	return c.Send(r.text, opts...)
}

// ignoreNotModified drops the error Telegram returns when an edit would not
// change the message, e.g. "today" tapped on the current month.
func ignoreNotModified(err error) error {
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}
