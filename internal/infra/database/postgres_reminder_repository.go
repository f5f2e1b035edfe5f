// internal/infra/database/postgres_reminder_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"team_status_bot/internal/domain/reminder"
)

type PostgresReminderRepository struct {
	db *sql.DB
}

func NewPostgresReminderRepository(db *sql.DB) *PostgresReminderRepository {
	return &PostgresReminderRepository{db: db}
}

func (r *PostgresReminderRepository) Claim(ctx context.Context, date time.Time) (*reminder.Run, bool, error) {
	query := `INSERT INTO reminder_runs (run_date)
               VALUES ($1)
               ON CONFLICT (run_date) DO NOTHING
               RETURNING id, created_at`
	run := &reminder.Run{RunDate: date}
	err := r.db.QueryRowContext(ctx, query, sqlDate(date)).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error claiming reminder run: %w", err)
	}
	return run, true, nil
}

func (r *PostgresReminderRepository) Finish(ctx context.Context, run *reminder.Run) error {
	query := `UPDATE reminder_runs
               SET sent = $1, skipped = $2, failed = $3, finished_at = NOW()
               WHERE id = $4
               RETURNING finished_at`
	var finishedAt time.Time
	err := r.db.QueryRowContext(ctx, query, run.Sent, run.Skipped, run.Failed, run.ID).Scan(&finishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reminder.ErrRunNotFound
		}
		return fmt.Errorf("error finishing reminder run: %w", err)
	}
	run.FinishedAt = &finishedAt
	return nil
}

func (r *PostgresReminderRepository) GetByDate(ctx context.Context, date time.Time) (*reminder.Run, error) {
	query := `SELECT id, run_date, sent, skipped, failed, created_at, finished_at
               FROM reminder_runs WHERE run_date = $1`
	run := reminder.Run{}
	var finishedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, sqlDate(date)).Scan(
		&run.ID, &run.RunDate, &run.Sent, &run.Skipped, &run.Failed, &run.CreatedAt, &finishedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reminder.ErrRunNotFound
		}
		return nil, fmt.Errorf("error getting reminder run by date: %w", err)
	}
	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}
	return &run, nil
}
