package session

import (
	"context"
	"time"
)

// Summary is the persisted record of a finished session. Persistence is a
// collaborator concern: the core never requires a store.
type Summary struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Attempted  int
	Correct    int
	Shown      []string
}

// Accuracy returns the hit rate in percent, 0 when nothing was attempted.
func (s Summary) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted) * 100
}

// HistoryStore persists session summaries across runs.
type HistoryStore interface {
	Save(ctx context.Context, summary Summary) error
	Recent(ctx context.Context, limit int) ([]Summary, error)
}
