package user

import "errors"

var ErrNotFound = errors.New("user not found")

// User is a Telegram user who has talked to the bot at least once.
type User struct {
	ID       int64 // Telegram user ID
	Username string
	ChatID   int64
	IsActive bool // inactive users are skipped by the reminder sweep
}
