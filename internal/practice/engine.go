package practice

import (
	"fmt"
	"strings"

	"github.com/recodelabs/recode/internal/domain"
)

// Engine produces prompts for the three practice modes and evaluates the
// user's responses. It holds no state: all per-session state lives in the
// caller's session value.
type Engine struct{}

// NewEngine creates a practice engine.
func NewEngine() *Engine {
	return &Engine{}
}

// FlashcardPrompt is a recall question about a key line of the snippet.
type FlashcardPrompt struct {
	ProblemID     string
	Title         string
	Concept       string
	QuestionIndex int
	Question      string
	Context       string
	Answer        string // the recorded answer, surfaced on evaluation
}

// Flashcard builds a flashcard prompt for the problem. index selects the
// quiz question and wraps modulo the question count, so callers can pass
// the attempt number to cycle through questions.
func (e *Engine) Flashcard(p *domain.Problem, index int) (*FlashcardPrompt, error) {
	if len(p.QuizQuestions) == 0 {
		return nil, domain.ErrNoQuizQuestions
	}
	if index < 0 {
		index = 0
	}
	q := p.QuizQuestions[index%len(p.QuizQuestions)]
	return &FlashcardPrompt{
		ProblemID:     p.ID,
		Title:         p.Title,
		Concept:       p.Concept,
		QuestionIndex: index % len(p.QuizQuestions),
		Question:      q.Question,
		Context:       q.Context,
		Answer:        q.Answer,
	}, nil
}

// CheckFlashcard evaluates a flashcard guess. Matching is exact after
// normalization: trimmed, lowercased, inner whitespace collapsed.
func (e *Engine) CheckFlashcard(prompt *FlashcardPrompt, guess string) domain.Evaluation {
	if normalizeAnswer(guess) == normalizeAnswer(prompt.Answer) {
		return domain.Evaluation{
			Outcome:  domain.OutcomeCorrect,
			Expected: prompt.Answer,
			Actual:   guess,
		}
	}
	return domain.Evaluation{
		Outcome:     domain.OutcomeIncorrect,
		Expected:    prompt.Answer,
		Actual:      guess,
		Explanation: fmt.Sprintf("the answer is: %s", prompt.Answer),
	}
}

// UnitTestPrompt shows the snippet with deliberate blanks plus the test
// cases the user's version must satisfy.
type UnitTestPrompt struct {
	ProblemID     string
	Title         string
	Concept       string
	Snippet       string // the original snippet, for review after evaluation
	MaskedSnippet string
	Blanks        []Blank
	Cases         []domain.TestCase
}

// UnitTest builds a unit-test prompt. The snippet is masked according to
// the problem's difficulty; seed varies blank positions between attempts.
func (e *Engine) UnitTest(p *domain.Problem, seed int64) (*UnitTestPrompt, error) {
	if len(p.TestCases) == 0 {
		return nil, domain.ErrNoTestCases
	}
	masked := MaskSnippet(p.Snippet, p.Difficulty(), seed)
	return &UnitTestPrompt{
		ProblemID:     p.ID,
		Title:         p.Title,
		Concept:       p.Concept,
		Snippet:       p.Snippet,
		MaskedSnippet: masked.Code,
		Blanks:        masked.Blanks,
		Cases:         p.TestCases,
	}, nil
}

// EvaluateRun interprets per-case results from the executor. The attempt
// passes iff every case passed; partial credit is reported (not scored)
// when some cases passed. Failing edge cases are flagged distinctly.
func (e *Engine) EvaluateRun(prompt *UnitTestPrompt, results []domain.CaseResult) domain.Evaluation {
	var failed []domain.CaseResult
	var edgeFailures int
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
			if r.Case.EdgeCase {
				edgeFailures++
			}
		}
	}

	if len(failed) == 0 {
		return domain.Evaluation{Outcome: domain.OutcomeCorrect}
	}

	outcome := domain.OutcomeIncorrect
	if len(failed) < len(results) {
		outcome = domain.OutcomePartial
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d test cases failed", len(failed), len(results))
	if edgeFailures > 0 {
		fmt.Fprintf(&b, " (%d edge cases)", edgeFailures)
	}
	for _, r := range failed {
		fmt.Fprintf(&b, "\n  input %s: expected %s", r.Case.Input, r.Case.Expected)
		if r.Err != "" {
			fmt.Fprintf(&b, ", run failed: %s", r.Err)
		} else {
			fmt.Fprintf(&b, ", got %s", r.Actual)
		}
		if r.Case.EdgeCase {
			b.WriteString(" [edge case]")
		}
	}

	return domain.Evaluation{
		Outcome:     outcome,
		Explanation: b.String(),
		FailedCases: failed,
	}
}

// Explanation is the full record of a problem for non-scored review.
type Explanation struct {
	ProblemID   string
	Title       string
	Concept     string
	Description string
	Snippet     string
	TestCases   []domain.TestCase
	CommonBugs  []string
	KeyPoints   []string
}

// Explain returns the full record for display. Explain mode has no
// evaluation and never touches the score.
func (e *Engine) Explain(p *domain.Problem) Explanation {
	keyPoints := []string{
		fmt.Sprintf("Pattern: %s", tagOr(p, "pattern")),
		fmt.Sprintf("Complexity: %s", tagOr(p, "complexity")),
		fmt.Sprintf("Data Structure: %s", tagOr(p, "data_structure")),
	}
	return Explanation{
		ProblemID:   p.ID,
		Title:       p.Title,
		Concept:     p.Concept,
		Description: p.Description,
		Snippet:     p.Snippet,
		TestCases:   p.TestCases,
		CommonBugs:  p.CommonBugs,
		KeyPoints:   keyPoints,
	}
}

func tagOr(p *domain.Problem, key string) string {
	if v, ok := p.Tags[key]; ok && v != "" {
		return v
	}
	return "N/A"
}
