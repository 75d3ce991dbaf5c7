package domain

import (
	"strings"
	"testing"
)

func TestProblem_DifficultyDefaultsToMedium(t *testing.T) {
	p := &Problem{ID: "p"}
	if got := p.Difficulty(); got != DifficultyMedium {
		t.Errorf("Difficulty() = %q, want medium", got)
	}

	p.Tags = map[string]string{"difficulty": "hard"}
	if got := p.Difficulty(); got != DifficultyHard {
		t.Errorf("Difficulty() = %q, want hard", got)
	}
}

func TestProblem_EdgeCases(t *testing.T) {
	p := &Problem{TestCases: []TestCase{
		{Input: "a", Expected: "1"},
		{Input: "b", Expected: "2", EdgeCase: true},
		{Input: "c", Expected: "3", EdgeCase: true},
	}}
	if got := p.EdgeCases(); len(got) != 2 {
		t.Errorf("len(EdgeCases()) = %d, want 2", len(got))
	}
}

func TestProblem_ConceptTagsSorted(t *testing.T) {
	p := &Problem{Tags: map[string]string{
		"pattern":        "one_pass",
		"complexity":     "O(n)",
		"data_structure": "hash_map",
	}}
	got := p.ConceptTags()
	want := []string{"complexity:O(n)", "data_structure:hash_map", "pattern:one_pass"}
	if len(got) != len(want) {
		t.Fatalf("ConceptTags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ConceptTags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseError_Error(t *testing.T) {
	withRecord := &ParseError{Record: "two_sum", Field: "title", Reason: "missing"}
	if msg := withRecord.Error(); !strings.Contains(msg, "two_sum") || !strings.Contains(msg, "title") {
		t.Errorf("Error() = %q, want record and field named", msg)
	}

	noRecord := &ParseError{Field: "id", Reason: "missing"}
	if msg := noRecord.Error(); !strings.Contains(msg, "id") {
		t.Errorf("Error() = %q, want field named", msg)
	}
}

func TestEvaluation_Correct(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    bool
	}{
		{OutcomeCorrect, true},
		{OutcomePartial, false},
		{OutcomeIncorrect, false},
	}
	for _, tt := range tests {
		eval := Evaluation{Outcome: tt.outcome}
		if got := eval.Correct(); got != tt.want {
			t.Errorf("Correct() with %q = %v, want %v", tt.outcome, got, tt.want)
		}
	}
}
