package status

import (
	"context"
	"time"
)

// Repository defines operations on per-day statuses.
type Repository interface {
	// Upsert writes e, overwriting text and chat of an existing entry for the same user and day.
	Upsert(ctx context.Context, e *Entry) error
	// UpsertRange upserts the same text for every day of p. Either every day is
	// written or none is. Returns the number of days written.
	UpsertRange(ctx context.Context, userID, chatID int64, text string, p Period) (int, error)
	DeleteOn(ctx context.Context, userID int64, date time.Time) (bool, error)
	DeleteAll(ctx context.Context, userID int64) (int64, error)
	// ListSince returns entries dated on or after since, newest day first, then by username.
	ListSince(ctx context.Context, since time.Time) ([]*RecentEntry, error)
	HasStatusOn(ctx context.Context, userID int64, date time.Time) (bool, error)
}
