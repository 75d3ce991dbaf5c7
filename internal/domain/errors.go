package domain

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Domain Errors
// Recoverable errors are sentinels surfaced to the user as-is; none of them
// corrupts the shared read-only bank or other sessions.
// -----------------------------------------------------------------------------

// Bank errors
var (
	ErrProblemNotFound = errors.New("no such problem")
	ErrEmptySelection  = errors.New("no problems match these filters")
)

// Practice-mode errors
var (
	ErrNoQuizQuestions = errors.New("problem has no quiz questions")
	ErrNoTestCases     = errors.New("problem has no test cases")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
)

// ParseError reports a malformed problem document. It is fatal to load and
// names the offending record and field.
type ParseError struct {
	Record string // problem id, or "" when the id itself is missing
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("parse problems: field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("parse problem %q: field %q: %s", e.Record, e.Field, e.Reason)
}
