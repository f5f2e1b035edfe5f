package app

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Sessions holds the conversation state of each user. Entries expire after
// ttl without a write and the least recently used ones are evicted once size
// is reached, so abandoned conversations do not accumulate.
type Sessions struct {
	states *expirable.LRU[int64, State]
}

func NewSessions(size int, ttl time.Duration) *Sessions {
	return &Sessions{states: expirable.NewLRU[int64, State](size, nil, ttl)}
}

func (s *Sessions) Get(userID int64) (State, bool) {
	return s.states.Get(userID)
}

// Put stores st for the user and restarts its expiry.
func (s *Sessions) Put(userID int64, st State) {
	s.states.Add(userID, st)
}

func (s *Sessions) Remove(userID int64) bool {
	return s.states.Remove(userID)
}
