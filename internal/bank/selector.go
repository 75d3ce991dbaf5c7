package bank

import (
	"math/rand"
	"time"

	"github.com/recodelabs/recode/internal/domain"
)

// Selector picks problems from the store, by id or at random.
type Selector struct {
	store *Store
	rng   *rand.Rand

	// avoidRepeats excludes problems already shown this session from random
	// selection, falling back to the full candidate set once everything has
	// been shown.
	avoidRepeats bool
}

// SelectorConfig holds selector configuration.
type SelectorConfig struct {
	AvoidRepeats bool
	Seed         int64 // 0 means time-seeded
}

// NewSelector creates a selector over the given store.
func NewSelector(store *Store, cfg SelectorConfig) *Selector {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Selector{
		store:        store,
		rng:          rand.New(rand.NewSource(seed)),
		avoidRepeats: cfg.AvoidRepeats,
	}
}

// ByID returns the problem with the given id.
func (s *Selector) ByID(id string) (*domain.Problem, error) {
	return s.store.Get(id)
}

// Random picks uniformly from candidates. shown lists problem ids already
// shown this session and only matters when avoid-repeats is on.
func (s *Selector) Random(candidates []*domain.Problem, shown []string) (*domain.Problem, error) {
	if len(candidates) == 0 {
		return nil, domain.ErrEmptySelection
	}

	pool := candidates
	if s.avoidRepeats && len(shown) > 0 {
		seen := make(map[string]bool, len(shown))
		for _, id := range shown {
			seen[id] = true
		}
		var fresh []*domain.Problem
		for _, p := range candidates {
			if !seen[p.ID] {
				fresh = append(fresh, p)
			}
		}
		if len(fresh) > 0 {
			pool = fresh
		}
	}

	return pool[s.rng.Intn(len(pool))], nil
}

// RandomFiltered filters the store and picks uniformly from the result.
func (s *Selector) RandomFiltered(f TagFilter, shown []string) (*domain.Problem, error) {
	return s.Random(s.store.Filter(f), shown)
}
