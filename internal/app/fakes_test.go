package app

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"team_status_bot/internal/domain/reminder"
	"team_status_bot/internal/domain/status"
	"team_status_bot/internal/domain/user"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

var errStoreDown = errors.New("connection refused")

var msk = time.FixedZone("MSK", 3*60*60)

type entryKey struct {
	userID int64
	date   string
}

// fakeStore implements user.Repository and status.Repository in memory.
type fakeStore struct {
	mu      sync.Mutex
	users   map[int64]*user.User
	entries map[entryKey]status.Entry

	upsertErr error
	deleteErr error
	listErr   error
	hasErr    map[int64]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[int64]*user.User),
		entries: make(map[entryKey]status.Entry),
		hasErr:  make(map[int64]error),
	}
}

func key(userID int64, d time.Time) entryKey {
	return entryKey{userID: userID, date: d.Format(status.DateLayout)}
}

func (f *fakeStore) Ensure(_ context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		cp := *u
		cp.IsActive = true
		f.users[u.ID] = &cp
	}
	return nil
}

func (f *fakeStore) ListActive(_ context.Context) ([]*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*user.User
	for _, u := range f.users {
		if u.IsActive {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*user.User
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) SetActive(_ context.Context, id int64, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeStore) Upsert(_ context.Context, e *status.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.entries[key(e.UserID, e.Date)] = *e
	return nil
}

func (f *fakeStore) UpsertRange(_ context.Context, userID, chatID int64, text string, p status.Period) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	days := p.Days()
	for _, d := range days {
		f.entries[key(userID, d)] = status.Entry{UserID: userID, ChatID: chatID, Text: text, Date: d}
	}
	return len(days), nil
}

func (f *fakeStore) DeleteOn(_ context.Context, userID int64, date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	k := key(userID, date)
	if _, ok := f.entries[k]; !ok {
		return false, nil
	}
	delete(f.entries, k)
	return true, nil
}

func (f *fakeStore) DeleteAll(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var n int64
	for k := range f.entries {
		if k.userID == userID {
			delete(f.entries, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ListSince(_ context.Context, since time.Time) ([]*status.RecentEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	cutoff := since.Format(status.DateLayout)
	var out []*status.RecentEntry
	for k, e := range f.entries {
		if k.date < cutoff {
			continue
		}
		name := ""
		if u, ok := f.users[e.UserID]; ok {
			name = u.Username
		}
		out = append(out, &status.RecentEntry{Date: e.Date, Username: name, Text: e.Text})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}

func (f *fakeStore) HasStatusOn(_ context.Context, userID int64, date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hasErr[userID]; err != nil {
		return false, err
	}
	_, ok := f.entries[key(userID, date)]
	return ok, nil
}

// text returns the stored status for the user on y-m-d, or "" if none.
func (f *fakeStore) text(userID int64, y int, m time.Month, d int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[key(userID, time.Date(y, m, d, 0, 0, 0, 0, msk))].Text
}

func (f *fakeStore) count(userID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for k := range f.entries {
		if k.userID == userID {
			n++
		}
	}
	return n
}

// fakeRuns keeps reminder runs by date.
type fakeRuns struct {
	mu       sync.Mutex
	runs     map[string]*reminder.Run
	claimErr error
}

func newFakeRuns() *fakeRuns {
	return &fakeRuns{runs: make(map[string]*reminder.Run)}
}

func (f *fakeRuns) Claim(_ context.Context, date time.Time) (*reminder.Run, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return nil, false, f.claimErr
	}
	k := date.Format(status.DateLayout)
	if _, ok := f.runs[k]; ok {
		return nil, false, nil
	}
	run := &reminder.Run{ID: int32(len(f.runs) + 1), RunDate: date}
	f.runs[k] = run
	return run, true, nil
}

func (f *fakeRuns) Finish(_ context.Context, run *reminder.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.runs[run.RunDate.Format(status.DateLayout)]
	if !ok || stored.ID != run.ID {
		return reminder.ErrRunNotFound
	}
	now := time.Now()
	stored.Sent, stored.Skipped, stored.Failed, stored.FinishedAt = run.Sent, run.Skipped, run.Failed, &now
	return nil
}

func (f *fakeRuns) GetByDate(_ context.Context, date time.Time) (*reminder.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[date.Format(status.DateLayout)]
	if !ok {
		return nil, reminder.ErrRunNotFound
	}
	return run, nil
}

type sentMessage struct {
	chatID int64
	text   string
	opts   *telebot.SendOptions
}

// fakeClient records messages and fails for chat IDs listed in fail.
type fakeClient struct {
	mu   sync.Mutex
	sent []sentMessage
	fail map[int64]error
}

func (c *fakeClient) SendMessage(chatID int64, text string, opts *telebot.SendOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.fail[chatID]; err != nil {
		return err
	}
	c.sent = append(c.sent, sentMessage{chatID: chatID, text: text, opts: opts})
	return nil
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// newTestStatusService pins "now" to the given wall-clock time in MSK.
func newTestStatusService(t *testing.T, now time.Time) (*StatusService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	clock := clockwork.NewFakeClockAt(now)
	return NewStatusService(store, store, clock, msk, testLogger()), store
}

var alice = Actor{UserID: 1, ChatID: 100, Username: "alice"}
