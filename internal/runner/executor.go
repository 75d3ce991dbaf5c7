package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/recodelabs/recode/internal/domain"
)

// Executor is the narrow capability interface for running a snippet against
// test cases. The practice core never executes code itself: it hands the
// user's version to an Executor and interprets the per-case results.
type Executor interface {
	// RunCases runs the snippet once per test case. entry is the function to
	// call, by convention the problem id. A failed run is reported in the
	// CaseResult, not as an error; the error return is for infrastructure
	// failures only.
	RunCases(ctx context.Context, snippet, entry string, cases []domain.TestCase) ([]domain.CaseResult, error)
}

// LocalExecutor runs snippets with a local Python interpreter (for
// development; untrusted code belongs in the Docker executor).
type LocalExecutor struct {
	python  string
	timeout time.Duration
}

// NewLocalExecutor creates a local executor. python defaults to "python3",
// timeout to 10 seconds per case.
func NewLocalExecutor(python string, timeout time.Duration) *LocalExecutor {
	if python == "" {
		python = "python3"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LocalExecutor{python: python, timeout: timeout}
}

func (e *LocalExecutor) RunCases(ctx context.Context, snippet, entry string, cases []domain.TestCase) ([]domain.CaseResult, error) {
	tmpDir, err := os.MkdirTemp("", "recode-run-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	results := make([]domain.CaseResult, 0, len(cases))
	for i, tc := range cases {
		path := filepath.Join(tmpDir, fmt.Sprintf("case_%d.py", i))
		if err := os.WriteFile(path, []byte(caseHarness(snippet, entry, tc)), 0644); err != nil {
			return nil, fmt.Errorf("write harness: %w", err)
		}

		caseCtx, cancel := context.WithTimeout(ctx, e.timeout)
		cmd := exec.CommandContext(caseCtx, e.python, path)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		runErr := cmd.Run()
		cancel()

		results = append(results, caseResult(tc, stdout.String(), stderr.String(), runErr))
	}
	return results, nil
}

// caseHarness builds a program that calls the entry function with the
// case's input expression and prints the result.
func caseHarness(snippet, entry string, tc domain.TestCase) string {
	var b strings.Builder
	b.WriteString("from collections import deque, defaultdict, Counter\n\n")
	b.WriteString(snippet)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "print(%s(%s))\n", entry, tc.Input)
	return b.String()
}

// caseResult interprets one run. The printed result must equal expected
// exactly after trimming; list output is compared as text, so order matters.
func caseResult(tc domain.TestCase, stdout, stderr string, runErr error) domain.CaseResult {
	result := domain.CaseResult{Case: tc, Actual: strings.TrimSpace(stdout)}
	if runErr != nil {
		result.Err = strings.TrimSpace(stderr)
		if result.Err == "" {
			result.Err = runErr.Error()
		}
		return result
	}
	result.Passed = result.Actual == strings.TrimSpace(tc.Expected)
	return result
}
