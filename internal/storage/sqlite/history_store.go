package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/recodelabs/recode/internal/session"
)

// HistoryStore implements session.HistoryStore backed by SQLite.
type HistoryStore struct {
	db *DB
}

// NewHistoryStore creates a new SQLite-backed history store.
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Save persists a finished session summary (insert or update).
func (s *HistoryStore) Save(ctx context.Context, summary session.Summary) error {
	shown, err := json.Marshal(summary.Shown)
	if err != nil {
		return fmt.Errorf("marshal shown: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_history (id, started_at, finished_at, attempted, correct, shown)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished_at=excluded.finished_at, attempted=excluded.attempted,
			correct=excluded.correct, shown=excluded.shown`,
		summary.ID, summary.StartedAt, summary.FinishedAt,
		summary.Attempted, summary.Correct, string(shown),
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
		FROM session_history ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list session history: %w", err)
	}
	defer rows.Close()

	var summaries []session.Summary
	for rows.Next() {
		var summary session.Summary
		var shownJSON string
		if err := rows.Scan(
			&summary.ID, &summary.StartedAt, &summary.FinishedAt,
			&summary.Attempted, &summary.Correct, &shownJSON,
		); err != nil {
			return nil, fmt.Errorf("scan session history: %w", err)
		}
		if err := json.Unmarshal([]byte(shownJSON), &summary.Shown); err != nil {
			return nil, fmt.Errorf("unmarshal shown: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
