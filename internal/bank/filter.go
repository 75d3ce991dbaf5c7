package bank

import "github.com/recodelabs/recode/internal/domain"

// TagFilter narrows the catalog by exact tag values and, optionally, by
// concept. A zero filter matches everything.
type TagFilter struct {
	Tags    map[string]string // category -> required value
	Concept string            // required concept, "" to skip
}

// Matches reports whether the problem satisfies every predicate.
func (f TagFilter) Matches(p *domain.Problem) bool {
	if f.Concept != "" && p.Concept != f.Concept {
		return false
	}
	for k, v := range f.Tags {
		if p.Tags[k] != v {
			return false
		}
	}
	return true
}

// Filter returns the problems matching the filter, in source order. An
// empty result is not an error.
func (s *Store) Filter(f TagFilter) []*domain.Problem {
	var matched []*domain.Problem
	for _, p := range s.All() {
		if f.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}
