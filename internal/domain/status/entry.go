package status

import "time"

// DateLayout is the ISO calendar date format used for storage and callbacks.
const DateLayout = "2006-01-02"

// Entry is one user's status for one calendar day.
// Corresponds to the 'statuses' table; (UserID, Date) is unique.
type Entry struct {
	ID     int64
	UserID int64
	ChatID int64
	Text   string
	Date   time.Time
}

// RecentEntry is a row of the team overview: a status joined with its author's name.
type RecentEntry struct {
	Date     time.Time
	Username string
	Text     string
}

// Day truncates t to midnight of its calendar day in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
