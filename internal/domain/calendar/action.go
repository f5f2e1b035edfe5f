package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrUnknownPayload = errors.New("unknown calendar payload")

// ActionKind identifies what a calendar button does.
type ActionKind int

const (
	ActionIgnore ActionKind = iota
	ActionToday
	ActionPrev
	ActionNext
	ActionSelectDay
)

const (
	payloadIgnore = "ignore"
	payloadToday  = "today"
	prefixPrev    = "prev:"
	prefixNext    = "next:"
	prefixDay     = "cal:"
	dateLayout    = "2006-01-02"
)

// Action is the decoded callback payload of a calendar button.
// Year and Month are the target month for ActionPrev/ActionNext and the
// selected date (with Day) for ActionSelectDay.
type Action struct {
	Kind  ActionKind
	Year  int
	Month time.Month
	Day   int
}

func Ignore() Action { return Action{Kind: ActionIgnore} }

func SelectDay(year int, month time.Month, day int) Action {
	return Action{Kind: ActionSelectDay, Year: year, Month: month, Day: day}
}

// Date returns the selected day at midnight in loc.
func (a Action) Date(loc *time.Location) time.Time {
	return time.Date(a.Year, a.Month, a.Day, 0, 0, 0, 0, loc)
}

// Encode renders the action as callback data:
// ignore | today | prev:YYYY-MM | next:YYYY-MM | cal:YYYY-MM-DD.
func Encode(a Action) string {
	switch a.Kind {
	case ActionToday:
		return payloadToday
	case ActionPrev:
		return fmt.Sprintf("%s%d-%02d", prefixPrev, a.Year, a.Month)
	case ActionNext:
		return fmt.Sprintf("%s%d-%02d", prefixNext, a.Year, a.Month)
	case ActionSelectDay:
		return fmt.Sprintf("%s%d-%02d-%02d", prefixDay, a.Year, a.Month, a.Day)
	default:
		return payloadIgnore
	}
}

// Parse decodes callback data produced by Encode.
func Parse(data string) (Action, error) {
	switch {
	case data == payloadIgnore:
		return Ignore(), nil
	case data == payloadToday:
		return Action{Kind: ActionToday}, nil
	case strings.HasPrefix(data, prefixPrev):
		y, m, err := parseYearMonth(strings.TrimPrefix(data, prefixPrev))
		if err != nil {
			return Action{}, fmt.Errorf("%w: %q: %v", ErrUnknownPayload, data, err)
		}
		return Action{Kind: ActionPrev, Year: y, Month: m}, nil
	case strings.HasPrefix(data, prefixNext):
		y, m, err := parseYearMonth(strings.TrimPrefix(data, prefixNext))
		if err != nil {
			return Action{}, fmt.Errorf("%w: %q: %v", ErrUnknownPayload, data, err)
		}
		return Action{Kind: ActionNext, Year: y, Month: m}, nil
	case strings.HasPrefix(data, prefixDay):
		d, err := time.Parse(dateLayout, strings.TrimPrefix(data, prefixDay))
		if err != nil {
			return Action{}, fmt.Errorf("%w: %q: %v", ErrUnknownPayload, data, err)
		}
		return SelectDay(d.Year(), d.Month(), d.Day()), nil
	}
	return Action{}, fmt.Errorf("%w: %q", ErrUnknownPayload, data)
}

func parseYearMonth(s string) (int, time.Month, error) {
	ys, ms, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, errors.New("missing month")
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("year: %w", err)
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return 0, 0, fmt.Errorf("month: %w", err)
	}
	if m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("month %d out of range", m)
	}
	return y, time.Month(m), nil
}
