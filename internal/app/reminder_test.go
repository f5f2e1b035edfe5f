package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"team_status_bot/internal/domain/reminder"
	"team_status_bot/internal/domain/status"
	"team_status_bot/internal/domain/user"
)

func seedUsers(t *testing.T, store *fakeStore, users ...*user.User) {
	t.Helper()
	for _, u := range users {
		if err := store.Ensure(context.Background(), u); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSweepSkipsWeekend(t *testing.T) {
	for _, now := range []time.Time{
		time.Date(2024, time.May, 11, 10, 0, 0, 0, msk), // Saturday
		time.Date(2024, time.May, 12, 10, 0, 0, 0, msk), // Sunday
	} {
		statuses, store := newTestStatusService(t, now)
		seedUsers(t, store, &user.User{ID: 1, ChatID: 100}, &user.User{ID: 2, ChatID: 200})
		client := &fakeClient{}

		report, err := NewReminderService(statuses, newFakeRuns(), client, testLogger()).Sweep(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if !report.Weekend || report.Sent != 0 || len(client.sent) != 0 {
			t.Errorf("%s: report = %+v, sent %d, want no reminders", now.Weekday(), report, len(client.sent))
		}
	}
}

func TestSweepRemindsOnlyUsersWithoutStatus(t *testing.T) {
	statuses, store := newTestStatusService(t, friday)
	seedUsers(t, store,
		&user.User{ID: 1, ChatID: 100},
		&user.User{ID: 2, ChatID: 200},
		&user.User{ID: 3, ChatID: 300},
		&user.User{ID: 4}, // no chat recorded
	)
	if err := store.SetActive(context.Background(), 3, false); err != nil {
		t.Fatal(err)
	}
	if err := statuses.UpsertStatus(context.Background(), Actor{UserID: 2, ChatID: 200}, status.PresetAtWork, friday); err != nil {
		t.Fatal(err)
	}
	// Yesterday's status does not count.
	if err := statuses.UpsertStatus(context.Background(), Actor{UserID: 1, ChatID: 100}, status.PresetAtWork, friday.AddDate(0, 0, -1)); err != nil {
		t.Fatal(err)
	}
	client := &fakeClient{}

	report, err := NewReminderService(statuses, newFakeRuns(), client, testLogger()).Sweep(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Users != 3 || report.Sent != 2 || report.Skipped != 1 || report.Failed != 0 {
		t.Errorf("report = %+v, want 3 users, 2 sent, 1 skipped", report)
	}
	if len(client.sent) != 2 || client.sent[0].chatID != 100 || client.sent[1].chatID != 4 {
		t.Fatalf("sent = %+v, want chats 100 and 4", client.sent)
	}
	if client.sent[0].opts == nil || client.sent[0].opts.ReplyMarkup == nil {
		t.Error("reminder sent without the status menu")
	}
}

func TestSweepContinuesAfterSendFailure(t *testing.T) {
	statuses, store := newTestStatusService(t, friday)
	seedUsers(t, store, &user.User{ID: 1, ChatID: 100}, &user.User{ID: 2, ChatID: 200}, &user.User{ID: 3, ChatID: 300})
	store.hasErr[3] = errStoreDown
	client := &fakeClient{fail: map[int64]error{100: errors.New("Forbidden: bot was blocked by the user")}}

	report, err := NewReminderService(statuses, newFakeRuns(), client, testLogger()).Sweep(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Sent != 1 || report.Failed != 2 {
		t.Errorf("report = %+v, want 1 sent and 2 failed", report)
	}
	if len(client.sent) != 1 || client.sent[0].chatID != 200 {
		t.Errorf("sent = %+v, want only chat 200", client.sent)
	}
}

func TestSweepFailsWhenUsersCannotBeListed(t *testing.T) {
	statuses, store := newTestStatusService(t, friday)
	store.listErr = errStoreDown

	_, err := NewReminderService(statuses, newFakeRuns(), &fakeClient{}, testLogger()).Sweep(context.Background())
	if !errors.Is(err, errStoreDown) {
		t.Errorf("Sweep() error = %v, want store error", err)
	}
}

func TestSweepRunsOncePerDay(t *testing.T) {
	statuses, store := newTestStatusService(t, friday)
	seedUsers(t, store, &user.User{ID: 1, ChatID: 100}, &user.User{ID: 2, ChatID: 200})
	runs := newFakeRuns()
	client := &fakeClient{}
	svc := NewReminderService(statuses, runs, client, testLogger())

	report, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !report.Claimed || report.Sent != 2 {
		t.Fatalf("first sweep = %+v, want 2 reminders", report)
	}
	run, err := runs.GetByDate(context.Background(), friday)
	if err != nil {
		t.Fatal(err)
	}
	if run.Sent != 2 || run.FinishedAt == nil {
		t.Errorf("run = %+v, want finished with 2 sent", run)
	}

	report, err = svc.Sweep(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Claimed || report.Sent != 0 || len(client.sent) != 2 {
		t.Errorf("second sweep = %+v, sent total %d, want nothing new", report, len(client.sent))
	}
}

func TestSweepFailsWhenRunCannotBeClaimed(t *testing.T) {
	statuses, store := newTestStatusService(t, friday)
	seedUsers(t, store, &user.User{ID: 1, ChatID: 100})
	runs := newFakeRuns()
	runs.claimErr = errStoreDown
	client := &fakeClient{}

	_, err := NewReminderService(statuses, runs, client, testLogger()).Sweep(context.Background())
	if !errors.Is(err, errStoreDown) || len(client.sent) != 0 {
		t.Errorf("Sweep() error = %v, sent %d, want store error and no reminders", err, len(client.sent))
	}
}

func TestSweepLeavesDayOpenWhenUsersCannotBeListed(t *testing.T) {
	statuses, store := newTestStatusService(t, friday)
	seedUsers(t, store, &user.User{ID: 1, ChatID: 100})
	runs := newFakeRuns()
	client := &fakeClient{}
	svc := NewReminderService(statuses, runs, client, testLogger())

	store.listErr = errStoreDown
	if _, err := svc.Sweep(context.Background()); !errors.Is(err, errStoreDown) {
		t.Fatalf("Sweep() error = %v, want store error", err)
	}
	if _, err := runs.GetByDate(context.Background(), friday); !errors.Is(err, reminder.ErrRunNotFound) {
		t.Fatalf("run after failed listing: err = %v, want ErrRunNotFound", err)
	}

	store.listErr = nil
	report, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !report.Claimed || report.Sent != 1 || len(client.sent) != 1 {
		t.Errorf("retry = %+v, sent %d, want the day claimed and 1 reminder", report, len(client.sent))
	}
}

func TestReminderReplies(t *testing.T) {
	statuses, store := newTestStatusService(t, friday)
	r := NewReminderReplies(statuses, 16, time.Hour, testLogger())
	ctx := context.Background()

	out, handled, err := r.Handle(ctx, alice, "привет")
	if err != nil || handled {
		t.Fatalf("Handle(random) = %+v handled=%v err=%v, want unhandled", out, handled, err)
	}

	out, handled, err = r.Handle(ctx, alice, status.PresetVacation)
	if err != nil || !handled || out.Kind != OutcomeSaved {
		t.Fatalf("Handle(preset) = %+v handled=%v err=%v", out, handled, err)
	}
	if got := store.text(alice.UserID, 2024, time.May, 10); got != status.PresetVacation {
		t.Errorf("today = %q, want %q", got, status.PresetVacation)
	}

	out, _, _ = r.Handle(ctx, alice, status.WriteCustom)
	if out.Kind != OutcomeAskCustomText {
		t.Fatalf("Handle(write custom) = %v", out.Kind)
	}
	out, handled, err = r.Handle(ctx, alice, "работаю из кафе")
	if err != nil || !handled || out.Kind != OutcomeSaved {
		t.Fatalf("Handle(custom) = %+v handled=%v err=%v", out, handled, err)
	}
	if got := store.text(alice.UserID, 2024, time.May, 10); got != "работаю из кафе" {
		t.Errorf("today = %q, want custom text", got)
	}

	// The custom flag is consumed by the first reply.
	if _, handled, _ := r.Handle(ctx, alice, "ещё текст"); handled {
		t.Error("free text handled after custom reply")
	}

	r.Handle(ctx, alice, status.WriteCustom)
	out, _, _ = r.Handle(ctx, alice, status.Cancel)
	if out.Kind != OutcomeCancelled {
		t.Errorf("Handle(cancel) = %v, want OutcomeCancelled", out.Kind)
	}
	if got := store.text(alice.UserID, 2024, time.May, 10); got != "работаю из кафе" {
		t.Errorf("cancel changed status to %q", got)
	}
}

func TestReminderReplyStoreFailure(t *testing.T) {
	statuses, store := newTestStatusService(t, friday)
	store.upsertErr = errStoreDown
	r := NewReminderReplies(statuses, 16, time.Hour, testLogger())

	out, handled, err := r.Handle(context.Background(), alice, status.PresetSick)
	if !handled || !errors.Is(err, errStoreDown) || out.Kind != OutcomeFailed {
		t.Errorf("Handle() = %+v handled=%v err=%v, want failure", out, handled, err)
	}
}
