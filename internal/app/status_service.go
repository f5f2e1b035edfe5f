package app

import (
	"context"
	"fmt"
	"time"

	"team_status_bot/internal/domain/status"
	"team_status_bot/internal/domain/user"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// DefaultWindowDays is the length of the team overview window.
const DefaultWindowDays = 7

// StatusService is the single entry point into the status store for every
// flow: commands, conversations, reminder replies, the sweep and the dashboard.
// "Today" is the calendar day of the injected clock in the configured location.
type StatusService struct {
	users    user.Repository
	statuses status.Repository
	clock    clockwork.Clock
	loc      *time.Location
	logger   *logrus.Entry
}

func NewStatusService(
	ur user.Repository,
	sr status.Repository,
	clock clockwork.Clock,
	loc *time.Location,
	logger *logrus.Entry,
) *StatusService {
	return &StatusService{
		users:    ur,
		statuses: sr,
		clock:    clock,
		loc:      loc,
		logger:   logger,
	}
}

// Now returns the current time in the configured location.
func (s *StatusService) Now() time.Time {
	return s.clock.Now().In(s.loc)
}

// Today returns midnight of the current calendar day in the configured location.
func (s *StatusService) Today() time.Time {
	return status.Day(s.Now())
}

// Location is the timezone calendar days are interpreted in.
func (s *StatusService) Location() *time.Location {
	return s.loc
}

// EnsureUser registers the actor if it is not known yet.
func (s *StatusService) EnsureUser(ctx context.Context, a Actor) error {
	u := &user.User{ID: a.UserID, Username: a.Username, ChatID: a.ChatID, IsActive: true}
	if err := s.users.Ensure(ctx, u); err != nil {
		return fmt.Errorf("failed to register user %d: %w", a.UserID, err)
	}
	return nil
}

// UpsertStatus sets the actor's status for one day, replacing any earlier text.
func (s *StatusService) UpsertStatus(ctx context.Context, a Actor, text string, date time.Time) error {
	e := &status.Entry{UserID: a.UserID, ChatID: a.ChatID, Text: text, Date: status.Day(date)}
	if err := s.statuses.Upsert(ctx, e); err != nil {
		return fmt.Errorf("failed to save status: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"user_id": a.UserID, "date": e.Date.Format(status.DateLayout)}).Debug("Status saved")
	return nil
}

// UpsertRange sets the same status on every day of p. The write is
// all-or-nothing: on error no day of the range has been changed.
func (s *StatusService) UpsertRange(ctx context.Context, a Actor, text string, p status.Period) (int, error) {
	n, err := s.statuses.UpsertRange(ctx, a.UserID, a.ChatID, text, p)
	if err != nil {
		return 0, fmt.Errorf("failed to save status for %s: %w", p, err)
	}
	s.logger.WithFields(logrus.Fields{"user_id": a.UserID, "period": p.String(), "days": n}).Debug("Status range saved")
	return n, nil
}

// Save writes text for p, using a single upsert when p is one day.
func (s *StatusService) Save(ctx context.Context, a Actor, text string, p status.Period) (int, error) {
	if p.IsSingleDay() {
		if err := s.UpsertStatus(ctx, a, text, p.Start); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return s.UpsertRange(ctx, a, text, p)
}

func (s *StatusService) DeleteToday(ctx context.Context, userID int64) (bool, error) {
	return s.DeleteOn(ctx, userID, s.Today())
}

func (s *StatusService) DeleteOn(ctx context.Context, userID int64, date time.Time) (bool, error) {
	removed, err := s.statuses.DeleteOn(ctx, userID, status.Day(date))
	if err != nil {
		return false, fmt.Errorf("failed to delete status: %w", err)
	}
	return removed, nil
}

func (s *StatusService) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	n, err := s.statuses.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete statuses: %w", err)
	}
	return n, nil
}

// ListRecent returns every status dated today-windowDays or later.
// A non-positive window falls back to DefaultWindowDays.
func (s *StatusService) ListRecent(ctx context.Context, windowDays int) ([]*status.RecentEntry, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	since := s.Today().AddDate(0, 0, -windowDays)
	entries, err := s.statuses.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent statuses: %w", err)
	}
	return entries, nil
}

func (s *StatusService) ListActiveUsers(ctx context.Context) ([]*user.User, error) {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	return users, nil
}

func (s *StatusService) ListUsers(ctx context.Context) ([]*user.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *StatusService) HasStatusOn(ctx context.Context, userID int64, date time.Time) (bool, error) {
	has, err := s.statuses.HasStatusOn(ctx, userID, status.Day(date))
	if err != nil {
		return false, fmt.Errorf("failed to check status: %w", err)
	}
	return has, nil
}

// SetReminders opts the user in or out of the daily reminder sweep.
func (s *StatusService) SetReminders(ctx context.Context, userID int64, enabled bool) error {
	if err := s.users.SetActive(ctx, userID, enabled); err != nil {
		return fmt.Errorf("failed to update reminder setting: %w", err)
	}
	return nil
}
