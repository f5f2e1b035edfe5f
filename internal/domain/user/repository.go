package user

import (
	"context"
)

// Repository defines the operations for persisting and retrieving users.
type Repository interface {
	// Ensure inserts the user if absent. Existing rows are left untouched.
	Ensure(ctx context.Context, u *User) error
	ListActive(ctx context.Context) ([]*User, error)
	ListAll(ctx context.Context) ([]*User, error)
	SetActive(ctx context.Context, id int64, active bool) error
}
