package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"team_status_bot/internal/domain/status"
)

const upsertStatusQuery = `INSERT INTO statuses (user_id, chat_id, status_text, date)
               VALUES ($1, $2, $3, $4)
               ON CONFLICT (user_id, date)
               DO UPDATE SET status_text = EXCLUDED.status_text, chat_id = EXCLUDED.chat_id
               RETURNING id`

type PostgresStatusRepository struct {
	db *sql.DB
}

func NewPostgresStatusRepository(db *sql.DB) *PostgresStatusRepository {
	return &PostgresStatusRepository{db: db}
}

// sqlDate formats a calendar day for a DATE parameter so the session timezone never shifts it.
func sqlDate(t time.Time) string {
	return t.Format(status.DateLayout)
}

func (r *PostgresStatusRepository) Upsert(ctx context.Context, e *status.Entry) error {
	err := r.db.QueryRowContext(ctx, upsertStatusQuery, e.UserID, e.ChatID, e.Text, sqlDate(e.Date)).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("error upserting status for user %d on %s: %w", e.UserID, sqlDate(e.Date), err)
	}
	return nil
}

// UpsertRange writes every day of p inside one transaction, in ascending order
// so that concurrent range writes for the same user lock rows in the same order.
func (r *PostgresStatusRepository) UpsertRange(ctx context.Context, userID, chatID int64, text string, p status.Period) (int, error) {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction for range upsert: %w", err)
	}
	defer txn.Rollback() // Rollback if not committed

	stmt, err := txn.PrepareContext(ctx, upsertStatusQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for range upsert: %w", err)
	}
	defer stmt.Close()

	days := p.Days()
	for _, day := range days {
		var id int64
		if err := stmt.QueryRowContext(ctx, userID, chatID, text, sqlDate(day)).Scan(&id); err != nil {
			return 0, fmt.Errorf("error upserting status for user %d on %s (range %s): %w", userID, sqlDate(day), p, err)
		}
	}

	if err := txn.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit range upsert %s: %w", p, err)
	}
	return len(days), nil
}

func (r *PostgresStatusRepository) DeleteOn(ctx context.Context, userID int64, date time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM statuses WHERE user_id = $1 AND date = $2`, userID, sqlDate(date))
	if err != nil {
		return false, fmt.Errorf("error deleting status for user %d on %s: %w", userID, sqlDate(date), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading deleted rows for user %d: %w", userID, err)
	}
	return n > 0, nil
}

func (r *PostgresStatusRepository) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM statuses WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("error deleting all statuses for user %d: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading deleted rows for user %d: %w", userID, err)
	}
	return n, nil
}

func (r *PostgresStatusRepository) ListSince(ctx context.Context, since time.Time) ([]*status.RecentEntry, error) {
	query := `SELECT s.date, COALESCE(u.username, ''), s.status_text
               FROM statuses s
               JOIN users u ON s.user_id = u.user_id
               WHERE s.date >= $1
               ORDER BY s.date DESC, u.username`

	rows, err := r.db.QueryContext(ctx, query, sqlDate(since))
	if err != nil {
		return nil, fmt.Errorf("error listing statuses since %s: %w", sqlDate(since), err)
	}
	defer rows.Close()

	entries := make([]*status.RecentEntry, 0)
	for rows.Next() {
		e := &status.RecentEntry{}
		if err := rows.Scan(&e.Date, &e.Username, &e.Text); err != nil {
			return nil, fmt.Errorf("error scanning recent status: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent statuses: %w", err)
	}
	return entries, nil
}

func (r *PostgresStatusRepository) HasStatusOn(ctx context.Context, userID int64, date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM statuses WHERE user_id = $1 AND date = $2)`,
		userID, sqlDate(date),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking status for user %d on %s: %w", userID, sqlDate(date), err)
	}
	return exists, nil
}
