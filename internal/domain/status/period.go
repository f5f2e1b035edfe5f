package status

import (
	"errors"
	"time"
)

var ErrEndBeforeStart = errors.New("period end is before its start")

// Period is an inclusive range of calendar days.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod returns the period [start, end]. Both bounds are truncated to
// calendar days before the order check.
func NewPeriod(start, end time.Time) (Period, error) {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return Period{}, ErrEndBeforeStart
	}
	return Period{Start: start, End: end}, nil
}

// SingleDay returns the period covering only d.
func SingleDay(d time.Time) Period {
	d = Day(d)
	return Period{Start: d, End: d}
}

// Days lists every calendar day of the period in ascending order.
func (p Period) Days() []time.Time {
	var days []time.Time
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (p Period) IsSingleDay() bool {
	return p.Start.Equal(p.End)
}

func (p Period) String() string {
	if p.IsSingleDay() {
		return p.Start.Format(DateLayout)
	}
	return p.Start.Format(DateLayout) + " – " + p.End.Format(DateLayout)
}
