package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomo/internal/modules/history/domain"
	historyout "pomo/internal/modules/history/port/out"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteIntervalStore struct {
	db *sql.DB
}

func NewSQLiteIntervalStore(dbPath string) (historyout.IntervalStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteIntervalStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteIntervalStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS intervals (
  id TEXT PRIMARY KEY,
  mode TEXT NOT NULL,
  planned_seconds INTEGER NOT NULL,
  outcome TEXT NOT NULL,
  ended_at TEXT NOT NULL,
  completed_work_cycles INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS intervals_ended_at ON intervals (ended_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create intervals table: %w", err)
	}
	return nil
}

func (s *SQLiteIntervalStore) Append(ctx context.Context, interval domain.Interval) error {
	const stmt = `
INSERT INTO intervals (id, mode, planned_seconds, outcome, ended_at, completed_work_cycles)
VALUES (?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		interval.ID,
		interval.Mode,
		interval.PlannedSeconds,
		string(interval.Outcome),
		formatTime(interval.EndedAt),
		interval.CompletedWorkCycles,
	)
	if err != nil {
		return fmt.Errorf("insert interval: %w", err)
	}
	return nil
}

func (s *SQLiteIntervalStore) Recent(ctx context.Context, limit int) ([]domain.Interval, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, mode, planned_seconds, outcome, ended_at, completed_work_cycles
FROM intervals ORDER BY ended_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query intervals: %w", err)
	}
	return scanIntervals(rows)
}

func (s *SQLiteIntervalStore) Between(ctx context.Context, from, to time.Time) ([]domain.Interval, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, mode, planned_seconds, outcome, ended_at, completed_work_cycles
FROM intervals WHERE ended_at >= ? AND ended_at < ? ORDER BY ended_at ASC, rowid ASC`,
		formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("query intervals: %w", err)
	}
	return scanIntervals(rows)
}

func (s *SQLiteIntervalStore) Close() error {
	return s.db.Close()
}

func scanIntervals(rows *sql.Rows) ([]domain.Interval, error) {
	defer rows.Close()
	var out []domain.Interval
	for rows.Next() {
		var (
			interval domain.Interval
			outcome  string
			endedAt  string
		)
		if err := rows.Scan(&interval.ID, &interval.Mode, &interval.PlannedSeconds, &outcome, &endedAt, &interval.CompletedWorkCycles); err != nil {
			return nil, fmt.Errorf("scan interval: %w", err)
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return nil, fmt.Errorf("parse interval end: %w", err)
		}
		interval.Outcome = domain.Outcome(outcome)
		interval.EndedAt = parsed
		out = append(out, interval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate intervals: %w", err)
	}
	return out, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
