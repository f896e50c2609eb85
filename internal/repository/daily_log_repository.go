package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focusband/companion/internal/model"
)

var ErrNotFound = errors.New("not found")

// DailyLogRepository persists one row per calendar day on the receiving
// device. Rows are only written through the merge path, so counters in the
// table never decrease within a day.
type DailyLogRepository struct {
	db *sql.DB
}

func NewDailyLogRepository(db *sql.DB) *DailyLogRepository {
	return &DailyLogRepository{db: db}
}

func (r *DailyLogRepository) Get(ctx context.Context, ymd string) (*model.DailyLogEntry, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT ymd, focus_seconds, break_seconds, sessions, updated_at
		 FROM daily_log
		 WHERE ymd = ?`,
		ymd,
	)

	var entry model.DailyLogEntry
	var updatedAt string
	if err := row.Scan(&entry.DayKey, &entry.FocusSeconds, &entry.BreakSeconds, &entry.Sessions, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get daily log %s: %w", ymd, err)
	}

	parsed, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse daily log updated_at: %w", err)
	}
	entry.UpdatedAt = parsed
	return &entry, nil
}

func (r *DailyLogRepository) Upsert(ctx context.Context, entry *model.DailyLogEntry) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO daily_log (ymd, focus_seconds, break_seconds, sessions, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(ymd) DO UPDATE SET
			focus_seconds = excluded.focus_seconds,
			break_seconds = excluded.break_seconds,
			sessions = excluded.sessions,
			updated_at = excluded.updated_at`,
		entry.DayKey,
		entry.FocusSeconds,
		entry.BreakSeconds,
		entry.Sessions,
		entry.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert daily log %s: %w", entry.DayKey, err)
	}
	return nil
}

// List returns up to limit entries, most recent day first.
func (r *DailyLogRepository) List(ctx context.Context, limit int) ([]model.DailyLogEntry, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT ymd, focus_seconds, break_seconds, sessions, updated_at
		 FROM daily_log
		 ORDER BY ymd DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list daily log: %w", err)
	}
	defer rows.Close()

	entries := make([]model.DailyLogEntry, 0, limit)
	for rows.Next() {
		var entry model.DailyLogEntry
		var updatedAt string
		if err := rows.Scan(&entry.DayKey, &entry.FocusSeconds, &entry.BreakSeconds, &entry.Sessions, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan daily log: %w", err)
		}
		parsed, parseErr := parseTime(updatedAt)
		if parseErr != nil {
			return nil, fmt.Errorf("parse daily log updated_at: %w", parseErr)
		}
		entry.UpdatedAt = parsed
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily log: %w", err)
	}
	return entries, nil
}

// Prune keeps the most recent keep distinct day keys and deletes the rest.
func (r *DailyLogRepository) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := r.db.ExecContext(
		ctx,
		`DELETE FROM daily_log
		 WHERE ymd NOT IN (
			SELECT ymd FROM daily_log ORDER BY ymd DESC LIMIT ?
		 )`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("prune daily log: %w", err)
	}
	return nil
}
