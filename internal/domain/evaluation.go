package domain

// Outcome classifies a single evaluated attempt.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomePartial   Outcome = "partial"
)

// Evaluation is the result of checking one attempt. It is produced per
// attempt and not retained beyond scoring and display.
type Evaluation struct {
	Outcome     Outcome
	Expected    string
	Actual      string
	Explanation string

	// Unit-test mode only: per-case breakdown of the run.
	FailedCases []CaseResult
}

// Correct reports whether the attempt should count toward the score.
func (e Evaluation) Correct() bool {
	return e.Outcome == OutcomeCorrect
}

// CaseResult is the outcome of running one test case against the user's
// version of the snippet. The executor produces these; the practice engine
// only interprets them.
type CaseResult struct {
	Case   TestCase
	Actual string
	Passed bool
	Err    string // non-empty when the run itself failed (crash, timeout)
}
