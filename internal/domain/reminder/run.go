// internal/domain/reminder/run.go
package reminder

import "time"

// Run records one reminder sweep. There is at most one run per calendar day,
// so a restarted or duplicated bot does not remind the team twice.
// Corresponds to the 'reminder_runs' table.
type Run struct {
	ID         int32     // SERIAL in DB
	RunDate    time.Time // Calendar day the sweep covers
	Sent       int
	Skipped    int
	Failed     int
	CreatedAt  time.Time
	FinishedAt *time.Time // nil while the sweep is in progress or if it crashed
}
