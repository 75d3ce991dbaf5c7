package domain

import "sort"

// Problem represents one practice item: a code snippet with its concept,
// tests, and quiz questions.
type Problem struct {
	ID          string // unique slug, e.g. "two_sum"
	Title       string
	Concept     string
	Description string
	Snippet     string
	Tags        map[string]string // category -> value (data_structure, pattern, complexity, difficulty)
	TestCases   []TestCase
	CommonBugs  []string
	QuizQuestions []QuizQuestion
}

// TestCase is a single input/expected pair for a problem.
type TestCase struct {
	Input       string // free-text expression, e.g. "nums=[2,7,11,15], target=9"
	Expected    string // expected printed result, e.g. "[0, 1]"
	EdgeCase    bool
	Description string
}

// QuizQuestion is a recall question about a key line of the snippet.
type QuizQuestion struct {
	Question string
	Answer   string
	Context  string
}

// Difficulty values used in the "difficulty" tag.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulty returns the problem's difficulty tag, defaulting to medium
// when untagged.
func (p *Problem) Difficulty() Difficulty {
	if d, ok := p.Tags["difficulty"]; ok && d != "" {
		return Difficulty(d)
	}
	return DifficultyMedium
}

// Pattern returns the problem's pattern tag, or "" when untagged.
func (p *Problem) Pattern() string {
	return p.Tags["pattern"]
}

// EdgeCases returns the subset of test cases marked as edge cases.
func (p *Problem) EdgeCases() []TestCase {
	var cases []TestCase
	for _, tc := range p.TestCases {
		if tc.EdgeCase {
			cases = append(cases, tc)
		}
	}
	return cases
}

// ConceptTags returns the tags flattened as "category:value" strings,
// sorted for stable display.
func (p *Problem) ConceptTags() []string {
	tags := make([]string, 0, len(p.Tags))
	for k, v := range p.Tags {
		tags = append(tags, k+":"+v)
	}
	sort.Strings(tags)
	return tags
}
