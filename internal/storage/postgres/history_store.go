package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sqlc-dev/pqtype"
	"github.com/recodelabs/recode/internal/session"
)

// HistoryStore implements session.HistoryStore backed by Postgres, for
// setups where practice history is shared across machines.
type HistoryStore struct {
	db *sql.DB
}

// Open connects to Postgres and ensures the history schema exists.
func Open(dsn string) (*HistoryStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := &HistoryStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewHistoryStore wraps an existing connection (used by tests).
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Migrate creates the history table if missing.
func (s *HistoryStore) Migrate() error {
	return s.migrate()
}

func (s *HistoryStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS session_history (
		id          TEXT PRIMARY KEY,
		started_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL,
		attempted   INTEGER NOT NULL DEFAULT 0,
		correct     INTEGER NOT NULL DEFAULT 0,
		shown       JSONB,
		CHECK (correct <= attempted)
	)`)
	if err != nil {
		return fmt.Errorf("create session_history: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Save persists a finished session summary (insert or update).
func (s *HistoryStore) Save(ctx context.Context, summary session.Summary) error {
	var shown pqtype.NullRawMessage
	if summary.Shown != nil {
		data, err := json.Marshal(summary.Shown)
		if err != nil {
			return fmt.Errorf("marshal shown: %w", err)
		}
		shown = pqtype.NullRawMessage{RawMessage: data, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_history (id, started_at, finished_at, attempted, correct, shown)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			finished_at=EXCLUDED.finished_at, attempted=EXCLUDED.attempted,
			correct=EXCLUDED.correct, shown=EXCLUDED.shown`,
		summary.ID, summary.StartedAt, summary.FinishedAt,
		summary.Attempted, summary.Correct, shown,
	)
	if err != nil {
		return fmt.Errorf("upsert session history: %w", err)
	}
	return nil
}

// Recent returns the most recently finished sessions, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]session.Summary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, attempted, correct, shown
		FROM session_history ORDER BY finished_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list session history: %w", err)
	}
	defer rows.Close()

	var summaries []session.Summary
	for rows.Next() {
		var summary session.Summary
		var shown pqtype.NullRawMessage
		if err := rows.Scan(
			&summary.ID, &summary.StartedAt, &summary.FinishedAt,
			&summary.Attempted, &summary.Correct, &shown,
		); err != nil {
			return nil, fmt.Errorf("scan session history: %w", err)
		}
		if shown.Valid {
			if err := json.Unmarshal(shown.RawMessage, &summary.Shown); err != nil {
				return nil, fmt.Errorf("unmarshal shown: %w", err)
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
