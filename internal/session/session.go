package session

import (
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/recodelabs/recode/internal/bank"
	"github.com/recodelabs/recode/internal/domain"
)

// Session tracks one user's practice attempts and running score. It is
// owned by exactly one practice flow and never shared; concurrent users get
// one session each over the same read-only store.
type Session struct {
	ID     string
	Filter bank.TagFilter

	// Shown lists problem ids in the order they were shown. Repeats are
	// allowed: practicing the same problem twice records it twice.
	Shown []string

	Attempted int
	Correct   int

	StartedAt time.Time
	UpdatedAt time.Time

	attempts map[string]int // per-problem attempt counter
}

// Start creates a new session scoped to the given filter.
func Start(filter bank.TagFilter) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		Filter:    filter,
		StartedAt: now,
		UpdatedAt: now,
		attempts:  make(map[string]int),
	}
}

// RecordShown records that a problem was shown. Callers record a problem
// before applying its evaluation to the score.
func (s *Session) RecordShown(p *domain.Problem) {
	s.Shown = append(s.Shown, p.ID)
	if s.attempts == nil {
		s.attempts = make(map[string]int)
	}
	s.attempts[p.ID]++
	s.UpdatedAt = time.Now()
}

// RecordResult applies an evaluation to the score. Attempted always
// increments; correct increments only for a correct outcome.
func (s *Session) RecordResult(eval domain.Evaluation) {
	s.Attempted++
	if eval.Correct() {
		s.Correct++
	}
	s.UpdatedAt = time.Now()
}

// Score returns (correct, attempted).
func (s *Session) Score() (correct, attempted int) {
	return s.Correct, s.Attempted
}

// Accuracy returns the hit rate in percent, 0 when nothing was attempted.
func (s *Session) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted) * 100
}

// Attempts returns how many times the problem was shown this session.
func (s *Session) Attempts(problemID string) int {
	return s.attempts[problemID]
}

// AttemptSeed returns a seed that is stable for a given (problem, attempt)
// pair but changes on every repeat, so blank positions vary between
// attempts at the same problem.
func (s *Session) AttemptSeed(problemID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(problemID))
	h.Write([]byte{byte(s.attempts[problemID])})
	h.Write([]byte(s.ID))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

// Summary snapshots the session for persistence.
func (s *Session) Summary() Summary {
	shown := make([]string, len(s.Shown))
	copy(shown, s.Shown)
	return Summary{
		ID:         s.ID,
		StartedAt:  s.StartedAt,
		FinishedAt: time.Now(),
		Attempted:  s.Attempted,
		Correct:    s.Correct,
		Shown:      shown,
	}
}
