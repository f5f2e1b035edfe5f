package telegram

import (
	"sync"
	"testing"

	"gopkg.in/telebot.v3"
)

// listPoller emits a fixed list of updates and then waits to be stopped.
type listPoller struct {
	updates []telebot.Update
	sent    chan struct{}
}

func (p *listPoller) Poll(_ *telebot.Bot, dest chan telebot.Update, stop chan struct{}) {
	for _, u := range p.updates {
		dest <- u
	}
	close(p.sent)
	<-stop
}

func TestKeyedPollerKeepsPerUserOrder(t *testing.T) {
	users := []int64{11, 12, 13, 14, 15}
	var ups []telebot.Update
	for i := 0; i < 100; i++ {
		for _, uid := range users {
			ups = append(ups, telebot.Update{
				ID:      len(ups) + 1,
				Message: &telebot.Message{Sender: &telebot.User{ID: uid}},
			})
		}
	}

	inner := &listPoller{updates: ups, sent: make(chan struct{})}
	p := NewKeyedPoller(inner, 3)

	var mu sync.Mutex
	seen := make(map[int64][]int)
	p.process = func(_ *telebot.Bot, upd telebot.Update) {
		mu.Lock()
		defer mu.Unlock()
		uid := upd.Message.Sender.ID
		seen[uid] = append(seen[uid], upd.ID)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		p.Poll(nil, nil, stop)
		close(done)
	}()
	<-inner.sent
	close(stop)
	<-done

	total := 0
	for _, uid := range users {
		ids := seen[uid]
		total += len(ids)
		for i := 1; i < len(ids); i++ {
			if ids[i] <= ids[i-1] {
				t.Fatalf("user %d processed %d after %d", uid, ids[i], ids[i-1])
			}
		}
	}
	if total != len(ups) {
		t.Errorf("processed %d updates, want %d", total, len(ups))
	}
}

func TestUpdateKey(t *testing.T) {
	tests := []struct {
		name string
		upd  telebot.Update
		want int64
	}{
		{"message", telebot.Update{ID: 1, Message: &telebot.Message{Sender: &telebot.User{ID: 42}}}, 42},
		{"callback", telebot.Update{ID: 2, Callback: &telebot.Callback{Sender: &telebot.User{ID: 43}}}, 43},
		{"other", telebot.Update{ID: 7}, 7},
	}
	for _, tt := range tests {
		if got := updateKey(tt.upd); got != tt.want {
			t.Errorf("%s: updateKey() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
