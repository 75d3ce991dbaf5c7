package bank

import (
	"fmt"
	"os"

	"github.com/recodelabs/recode/internal/domain"
	"gopkg.in/yaml.v3"
)

// problemsFile represents the YAML structure of a problem bank document
type problemsFile struct {
	Problems []problemEntry `yaml:"problems"`
}

// problemEntry represents the YAML structure of a single problem
type problemEntry struct {
	ID          string              `yaml:"id"`
	Title       string              `yaml:"title"`
	Concept     string              `yaml:"concept"`
	Description string              `yaml:"description"`
	Snippet     string              `yaml:"snippet"`
	Tags        []map[string]string `yaml:"tags"`
	TestCases   []struct {
		Input       string `yaml:"input"`
		Expected    string `yaml:"expected"`
		EdgeCase    bool   `yaml:"edge_case"`
		Description string `yaml:"description"`
	} `yaml:"test_cases"`
	CommonBugs    []string `yaml:"common_bugs"`
	QuizQuestions []struct {
		Question string `yaml:"question"`
		Answer   string `yaml:"answer"`
		Context  string `yaml:"context"`
	} `yaml:"quiz_questions"`
}

// Load reads and parses a problem bank document from disk.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem bank: %w", err)
	}
	return Parse(data)
}

// Parse parses a problem bank document. Validation is eager: a malformed
// record aborts the whole load with a ParseError naming record and field.
func Parse(data []byte) (*Store, error) {
	var file problemsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse problem bank: %w", err)
	}

	store := newStore(len(file.Problems))
	for _, entry := range file.Problems {
		problem, err := buildProblem(entry)
		if err != nil {
			return nil, err
		}
		if err := store.add(problem); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// buildProblem converts a YAML entry into a domain problem, rejecting
// missing required fields and malformed nested records.
func buildProblem(entry problemEntry) (*domain.Problem, error) {
	if entry.ID == "" {
		return nil, &domain.ParseError{Field: "id", Reason: "missing"}
	}
	if entry.Title == "" {
		return nil, &domain.ParseError{Record: entry.ID, Field: "title", Reason: "missing"}
	}
	if entry.Snippet == "" {
		return nil, &domain.ParseError{Record: entry.ID, Field: "snippet", Reason: "missing"}
	}

	// Tags arrive as a sequence of single-key mappings; fold them into one map.
	tags := make(map[string]string)
	for i, m := range entry.Tags {
		if len(m) != 1 {
			return nil, &domain.ParseError{
				Record: entry.ID,
				Field:  fmt.Sprintf("tags[%d]", i),
				Reason: "expected a single-key mapping",
			}
		}
		for k, v := range m {
			tags[k] = v
		}
	}

	cases := make([]domain.TestCase, len(entry.TestCases))
	for i, tc := range entry.TestCases {
		if tc.Input == "" {
			return nil, &domain.ParseError{
				Record: entry.ID,
				Field:  fmt.Sprintf("test_cases[%d].input", i),
				Reason: "missing",
			}
		}
		if tc.Expected == "" {
			return nil, &domain.ParseError{
				Record: entry.ID,
				Field:  fmt.Sprintf("test_cases[%d].expected", i),
				Reason: "missing",
			}
		}
		cases[i] = domain.TestCase{
			Input:       tc.Input,
			Expected:    tc.Expected,
			EdgeCase:    tc.EdgeCase,
			Description: tc.Description,
		}
	}

	questions := make([]domain.QuizQuestion, len(entry.QuizQuestions))
	for i, q := range entry.QuizQuestions {
		if q.Question == "" {
			return nil, &domain.ParseError{
				Record: entry.ID,
				Field:  fmt.Sprintf("quiz_questions[%d].question", i),
				Reason: "missing",
			}
		}
		if q.Answer == "" {
			return nil, &domain.ParseError{
				Record: entry.ID,
				Field:  fmt.Sprintf("quiz_questions[%d].answer", i),
				Reason: "missing",
			}
		}
		questions[i] = domain.QuizQuestion{
			Question: q.Question,
			Answer:   q.Answer,
			Context:  q.Context,
		}
	}

	return &domain.Problem{
		ID:            entry.ID,
		Title:         entry.Title,
		Concept:       entry.Concept,
		Description:   entry.Description,
		Snippet:       entry.Snippet,
		Tags:          tags,
		TestCases:     cases,
		CommonBugs:    entry.CommonBugs,
		QuizQuestions: questions,
	}, nil
}
