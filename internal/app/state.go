package app

import (
	"time"

	"team_status_bot/internal/domain/status"
)

// Flow names the three conversations a user can be in.
type Flow int

const (
	FlowToday Flow = iota // /setstatus: status for today
	FlowRange             // /calendar: status for a date range
	FlowClear             // /clearbydate: delete one day
)

// State is the conversation state of one user. Each flow has its own state
// types and every piece of data a state needs is a field of that state.
type State interface {
	Flow() Flow
}

// TodayChoice waits for a preset or "write custom" for today.
type TodayChoice struct{}

// TodayText waits for free-form status text for today.
type TodayText struct{}

// RangeStart waits for the first day of the range.
type RangeStart struct{}

// RangeEnd waits for the last day of the range.
type RangeEnd struct {
	Start time.Time
}

// RangeChoice waits for a preset or "write custom" for a complete range.
type RangeChoice struct {
	Period status.Period
}

// RangeText waits for free-form status text for a complete range.
type RangeText struct {
	Period status.Period
}

// ClearDate waits for the day whose status should be deleted.
type ClearDate struct{}

func (TodayChoice) Flow() Flow { return FlowToday }
func (TodayText) Flow() Flow   { return FlowToday }
func (RangeStart) Flow() Flow  { return FlowRange }
func (RangeEnd) Flow() Flow    { return FlowRange }
func (RangeChoice) Flow() Flow { return FlowRange }
func (RangeText) Flow() Flow   { return FlowRange }
func (ClearDate) Flow() Flow   { return FlowClear }
