package session

import (
	"testing"

	"github.com/recodelabs/recode/internal/bank"
	"github.com/recodelabs/recode/internal/domain"
)

func testProblem(id string) *domain.Problem {
	return &domain.Problem{ID: id, Title: id, Snippet: "pass"}
}

func TestStart(t *testing.T) {
	sess := Start(bank.TagFilter{Concept: "hashing"})

	if sess.ID == "" {
		t.Error("expected a session id")
	}
	if sess.Filter.Concept != "hashing" {
		t.Errorf("Filter.Concept = %q, want hashing", sess.Filter.Concept)
	}
	if sess.Attempted != 0 || sess.Correct != 0 {
		t.Errorf("new session score = %d/%d, want 0/0", sess.Correct, sess.Attempted)
	}
	if sess.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestSession_RecordResult(t *testing.T) {
	sess := Start(bank.TagFilter{})

	sess.RecordResult(domain.Evaluation{Outcome: domain.OutcomeCorrect})
	sess.RecordResult(domain.Evaluation{Outcome: domain.OutcomeIncorrect})
	sess.RecordResult(domain.Evaluation{Outcome: domain.OutcomePartial})

	correct, attempted := sess.Score()
	if attempted != 3 {
		t.Errorf("attempted = %d, want 3", attempted)
	}
	if correct != 1 {
		t.Errorf("correct = %d, want 1 (partial outcomes are not scored)", correct)
	}
	if correct > attempted {
		t.Error("correct exceeds attempted")
	}
}

func TestSession_Accuracy(t *testing.T) {
	sess := Start(bank.TagFilter{})
	if got := sess.Accuracy(); got != 0 {
		t.Errorf("Accuracy() of empty session = %v, want 0", got)
	}

	sess.RecordResult(domain.Evaluation{Outcome: domain.OutcomeCorrect})
	sess.RecordResult(domain.Evaluation{Outcome: domain.OutcomeIncorrect})
	if got := sess.Accuracy(); got != 50 {
		t.Errorf("Accuracy() = %v, want 50", got)
	}
}

func TestSession_RepeatsRecordedTwice(t *testing.T) {
	sess := Start(bank.TagFilter{})
	p := testProblem("two_sum")

	sess.RecordShown(p)
	sess.RecordShown(p)

	if len(sess.Shown) != 2 {
		t.Errorf("len(Shown) = %d, want 2", len(sess.Shown))
	}
	if got := sess.Attempts("two_sum"); got != 2 {
		t.Errorf("Attempts(two_sum) = %d, want 2", got)
	}
	if got := sess.Attempts("other"); got != 0 {
		t.Errorf("Attempts(other) = %d, want 0", got)
	}
}

func TestSession_AttemptSeedVariesPerAttempt(t *testing.T) {
	sess := Start(bank.TagFilter{})
	p := testProblem("two_sum")

	sess.RecordShown(p)
	first := sess.AttemptSeed(p.ID)
	if again := sess.AttemptSeed(p.ID); again != first {
		t.Error("AttemptSeed changed without a new attempt")
	}

	sess.RecordShown(p)
	second := sess.AttemptSeed(p.ID)
	if second == first {
		t.Error("AttemptSeed did not change on a repeat attempt")
	}
	if first < 0 || second < 0 {
		t.Errorf("AttemptSeed must be non-negative, got %d and %d", first, second)
	}
}

func TestSession_AttemptSeedVariesPerProblem(t *testing.T) {
	sess := Start(bank.TagFilter{})
	a, b := testProblem("a"), testProblem("b")
	sess.RecordShown(a)
	sess.RecordShown(b)

	if sess.AttemptSeed("a") == sess.AttemptSeed("b") {
		t.Error("different problems produced the same seed")
	}
}

func TestSession_Summary(t *testing.T) {
	sess := Start(bank.TagFilter{})
	sess.RecordShown(testProblem("a"))
	sess.RecordResult(domain.Evaluation{Outcome: domain.OutcomeCorrect})

	summary := sess.Summary()
	if summary.ID != sess.ID {
		t.Errorf("Summary.ID = %q, want %q", summary.ID, sess.ID)
	}
	if summary.Attempted != 1 || summary.Correct != 1 {
		t.Errorf("Summary score = %d/%d, want 1/1", summary.Correct, summary.Attempted)
	}
	if summary.FinishedAt.Before(summary.StartedAt) {
		t.Error("FinishedAt before StartedAt")
	}

	// The summary's shown list is a snapshot, not an alias.
	summary.Shown[0] = "mutated"
	if sess.Shown[0] != "a" {
		t.Error("mutating the summary leaked into the session")
	}
}

func TestSummary_Accuracy(t *testing.T) {
	if got := (Summary{}).Accuracy(); got != 0 {
		t.Errorf("empty Summary.Accuracy() = %v, want 0", got)
	}
	s := Summary{Attempted: 4, Correct: 3}
	if got := s.Accuracy(); got != 75 {
		t.Errorf("Accuracy() = %v, want 75", got)
	}
}
