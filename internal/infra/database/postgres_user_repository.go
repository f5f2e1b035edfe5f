package database

import (
	"context"
	"database/sql"
	"fmt"

	"team_status_bot/internal/domain/user"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Ensure registers the user on first contact. A user that already exists keeps
// its stored name, chat and active flag.
func (r *PostgresUserRepository) Ensure(ctx context.Context, u *user.User) error {
	query := `INSERT INTO users (user_id, username, chat_id, is_active)
               VALUES ($1, $2, $3, TRUE)
               ON CONFLICT (user_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.ChatID); err != nil {
		return fmt.Errorf("error ensuring user %d: %w", u.ID, err)
	}
	return nil
}

func (r *PostgresUserRepository) ListActive(ctx context.Context) ([]*user.User, error) {
	query := `SELECT user_id, COALESCE(username, ''), COALESCE(chat_id, 0), is_active
               FROM users WHERE is_active = TRUE ORDER BY username, user_id`
	return r.list(ctx, query, "active users")
}

func (r *PostgresUserRepository) ListAll(ctx context.Context) ([]*user.User, error) {
	query := `SELECT user_id, COALESCE(username, ''), COALESCE(chat_id, 0), is_active
               FROM users ORDER BY user_id`
	return r.list(ctx, query, "all users")
}

func (r *PostgresUserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = $1 WHERE user_id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("error updating active flag for user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows for user %d: %w", id, err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) list(ctx context.Context, query, what string) ([]*user.User, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", what, err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.ChatID, &u.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", what, err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", what, err)
	}
	return users, nil
}
