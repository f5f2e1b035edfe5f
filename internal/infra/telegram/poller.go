package telegram

import (
	"sync"

	"gopkg.in/telebot.v3"
)

const keyedQueueSize = 64

// KeyedPoller fans updates from an inner poller out to a fixed set of
// workers keyed by sender, so one user's updates are handled in arrival
// order while different users proceed in parallel. Workers call
// Bot.ProcessUpdate directly; nothing is forwarded to the bot's own queue.
type KeyedPoller struct {
	Poller  telebot.Poller
	Workers int

	process func(b *telebot.Bot, upd telebot.Update)
}

func NewKeyedPoller(inner telebot.Poller, workers int) *KeyedPoller {
	if workers < 1 {
		workers = 1
	}
	return &KeyedPoller{Poller: inner, Workers: workers}
}

// Poll implements telebot.Poller. It returns after stop is closed and every
// received update has been processed.
func (p *KeyedPoller) Poll(b *telebot.Bot, _ chan telebot.Update, stop chan struct{}) {
	process := p.process
	if process == nil {
		process = func(b *telebot.Bot, upd telebot.Update) { b.ProcessUpdate(upd) }
	}

	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	queues := make([]chan telebot.Update, workers)
	for i := range queues {
		queues[i] = make(chan telebot.Update, keyedQueueSize)
		wg.Add(1)
		go func(q chan telebot.Update) {
			defer wg.Done()
			for upd := range q {
				process(b, upd)
			}
		}(queues[i])
	}

	dispatch := func(upd telebot.Update) {
		queues[shardOf(updateKey(upd), workers)] <- upd
	}

	in := make(chan telebot.Update, keyedQueueSize)
	innerStop := make(chan struct{})
	innerDone := make(chan struct{})
	go func() {
		p.Poller.Poll(b, in, innerStop)
		close(innerDone)
	}()

	for {
		select {
		case upd := <-in:
			dispatch(upd)
		case <-stop:
			close(innerStop)
			// The inner poller may be blocked sending, keep reading until it exits.
		drain:
			for {
				select {
				case upd := <-in:
					dispatch(upd)
				case <-innerDone:
					break drain
				}
			}
			for len(in) > 0 {
				dispatch(<-in)
			}
			for _, q := range queues {
				close(q)
			}
			wg.Wait()
			return
		}
	}
}

// updateKey picks the user an update belongs to, falling back to the update ID.
func updateKey(upd telebot.Update) int64 {
	switch {
	case upd.Message != nil && upd.Message.Sender != nil:
		return upd.Message.Sender.ID
	case upd.Callback != nil && upd.Callback.Sender != nil:
		return upd.Callback.Sender.ID
	case upd.EditedMessage != nil && upd.EditedMessage.Sender != nil:
		return upd.EditedMessage.Sender.ID
	}
	return int64(upd.ID)
}

func shardOf(key int64, n int) int {
	if key < 0 {
		key = -key
	}
	return int(key % int64(n))
}
