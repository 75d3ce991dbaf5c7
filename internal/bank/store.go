package bank

import (
	"sync"

	"github.com/recodelabs/recode/internal/domain"
)

// Store is the in-memory problem catalog. It is read-only after load and
// safe to share across concurrent sessions.
type Store struct {
	mu       sync.RWMutex
	problems []*domain.Problem
	byID     map[string]*domain.Problem
}

func newStore(capacity int) *Store {
	return &Store{
		problems: make([]*domain.Problem, 0, capacity),
		byID:     make(map[string]*domain.Problem, capacity),
	}
}

// add appends a problem, rejecting id collisions.
func (s *Store) add(p *domain.Problem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[p.ID]; exists {
		return &domain.ParseError{Record: p.ID, Field: "id", Reason: "duplicate id"}
	}
	s.byID[p.ID] = p
	s.problems = append(s.problems, p)
	return nil
}

// Get returns a problem by id.
func (s *Store) Get(id string) (*domain.Problem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrProblemNotFound
	}
	return p, nil
}

// All returns all problems in source order. The returned slice is a copy;
// the problems themselves are shared and must not be mutated.
func (s *Store) All() []*domain.Problem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Problem, len(s.problems))
	copy(out, s.problems)
	return out
}

// Len returns the number of loaded problems.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.problems)
}

// Concepts returns the unique concepts in source order.
func (s *Store) Concepts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var concepts []string
	for _, p := range s.problems {
		if p.Concept == "" || seen[p.Concept] {
			continue
		}
		seen[p.Concept] = true
		concepts = append(concepts, p.Concept)
	}
	return concepts
}

// Patterns returns the unique pattern tags in source order.
func (s *Store) Patterns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var patterns []string
	for _, p := range s.problems {
		pattern := p.Pattern()
		if pattern == "" || seen[pattern] {
			continue
		}
		seen[pattern] = true
		patterns = append(patterns, pattern)
	}
	return patterns
}

// Stats returns catalog statistics.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		ProblemCount: len(s.problems),
		ByDifficulty: make(map[string]int),
	}
	for _, p := range s.problems {
		stats.ByDifficulty[string(p.Difficulty())]++
	}
	return stats
}

// Stats holds statistics about the loaded catalog.
type Stats struct {
	ProblemCount int
	ByDifficulty map[string]int
}
