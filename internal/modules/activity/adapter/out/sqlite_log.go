package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studysphere/internal/modules/activity/domain"
	activityout "studysphere/internal/modules/activity/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteLog struct {
	db *sql.DB
}

func NewSQLiteLog(dbPath string) (activityout.Log, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	log := &SQLiteLog{db: db}
	if err := log.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return log, nil
}

func (s *SQLiteLog) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS activity (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  label TEXT NOT NULL,
  minutes INTEGER NOT NULL DEFAULT 0,
  correct INTEGER NOT NULL DEFAULT 0,
  total INTEGER NOT NULL DEFAULT 0,
  score INTEGER NOT NULL DEFAULT 0,
  at_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS activity_at ON activity (at_ms);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create activity table: %w", err)
	}
	return nil
}

func (s *SQLiteLog) Append(ctx context.Context, entry domain.Entry) error {
	const stmt = `
INSERT INTO activity (id, kind, label, minutes, correct, total, score, at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		entry.ID,
		string(entry.Kind),
		entry.Label,
		entry.Minutes,
		entry.Correct,
		entry.Total,
		entry.Score,
		entry.At.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (s *SQLiteLog) Since(ctx context.Context, since time.Time) ([]domain.Entry, error) {
	return s.query(ctx, `
SELECT id, kind, label, minutes, correct, total, score, at_ms
FROM activity WHERE at_ms >= ? ORDER BY at_ms ASC, id ASC;
`, since.UnixMilli())
}

func (s *SQLiteLog) Recent(ctx context.Context, limit int) ([]domain.Entry, error) {
	return s.query(ctx, `
SELECT id, kind, label, minutes, correct, total, score, at_ms
FROM activity ORDER BY at_ms DESC, id DESC LIMIT ?;
`, limit)
}

func (s *SQLiteLog) query(ctx context.Context, query string, args ...any) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		var (
			entry domain.Entry
			kind  string
			atMS  int64
		)
		if err := rows.Scan(&entry.ID, &kind, &entry.Label, &entry.Minutes, &entry.Correct, &entry.Total, &entry.Score, &atMS); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		entry.Kind = domain.Kind(kind)
		entry.At = time.UnixMilli(atMS)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return entries, nil
}

func (s *SQLiteLog) Close() error {
	return s.db.Close()
}
