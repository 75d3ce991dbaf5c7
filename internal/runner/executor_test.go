package runner

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/recodelabs/recode/internal/domain"
)

func TestCaseHarness(t *testing.T) {
	snippet := "def two_sum(nums, target):\n    return []"
	tc := domain.TestCase{Input: "nums=[2,7], target=9", Expected: "[0, 1]"}

	harness := caseHarness(snippet, "two_sum", tc)

	if !strings.Contains(harness, snippet) {
		t.Error("harness does not contain the snippet")
	}
	if !strings.Contains(harness, "print(two_sum(nums=[2,7], target=9))") {
		t.Errorf("harness does not call the entry with the case input:\n%s", harness)
	}
	if !strings.Contains(harness, "from collections import deque") {
		t.Error("harness does not import common containers")
	}
}

func TestCaseResult(t *testing.T) {
	tc := domain.TestCase{Input: "x=1", Expected: "[0, 1]"}

	t.Run("pass", func(t *testing.T) {
		r := caseResult(tc, "[0, 1]\n", "", nil)
		if !r.Passed {
			t.Errorf("Passed = false, Actual = %q", r.Actual)
		}
	})

	t.Run("wrong output", func(t *testing.T) {
		r := caseResult(tc, "[1, 0]\n", "", nil)
		if r.Passed {
			t.Error("Passed = true for mismatched output")
		}
		if r.Actual != "[1, 0]" {
			t.Errorf("Actual = %q, want trimmed output", r.Actual)
		}
	})

	t.Run("run failure surfaces stderr", func(t *testing.T) {
		r := caseResult(tc, "", "Traceback: NameError\n", errors.New("exit status 1"))
		if r.Passed {
			t.Error("Passed = true for failed run")
		}
		if !strings.Contains(r.Err, "NameError") {
			t.Errorf("Err = %q, want stderr content", r.Err)
		}
	})

	t.Run("run failure without stderr keeps the error", func(t *testing.T) {
		r := caseResult(tc, "", "", errors.New("signal: killed"))
		if r.Err != "signal: killed" {
			t.Errorf("Err = %q, want the run error", r.Err)
		}
	})
}

func TestLocalExecutor_Defaults(t *testing.T) {
	e := NewLocalExecutor("", 0)
	if e.python != "python3" {
		t.Errorf("python = %q, want python3", e.python)
	}
	if e.timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", e.timeout)
	}
}

func TestLocalExecutor_RunCases(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}

	e := NewLocalExecutor("python3", 10*time.Second)
	snippet := `def two_sum(nums, target):
    seen = {}
    for i, num in enumerate(nums):
        complement = target - num
        if complement in seen:
            return [seen[complement], i]
        seen[num] = i
    return []`
	cases := []domain.TestCase{
		{Input: "nums=[2,7,11,15], target=9", Expected: "[0, 1]"},
		{Input: "nums=[3,3], target=6", Expected: "[0, 1]", EdgeCase: true},
		{Input: "nums=[1,2], target=7", Expected: "[]", EdgeCase: true},
	}

	results, err := e.RunCases(context.Background(), snippet, "two_sum", cases)
	if err != nil {
		t.Fatalf("RunCases() error = %v", err)
	}
	if len(results) != len(cases) {
		t.Fatalf("got %d results, want %d", len(results), len(cases))
	}
	for i, r := range results {
		if !r.Passed {
			t.Errorf("case %d failed: actual %q, err %q", i, r.Actual, r.Err)
		}
	}
}

func TestLocalExecutor_BrokenSnippetReportedPerCase(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}

	e := NewLocalExecutor("python3", 10*time.Second)
	cases := []domain.TestCase{{Input: "nums=[1]", Expected: "[1]"}}

	// A syntax error is a failed case, not an infrastructure error.
	results, err := e.RunCases(context.Background(), "def broken(:", "broken", cases)
	if err != nil {
		t.Fatalf("RunCases() error = %v, want per-case failure", err)
	}
	if results[0].Passed {
		t.Error("Passed = true for a snippet that cannot run")
	}
	if results[0].Err == "" {
		t.Error("expected a run error in the case result")
	}
}

// stubExecutor fails a fixed number of times before succeeding.
type stubExecutor struct {
	failures int
	calls    int
}

func (s *stubExecutor) RunCases(ctx context.Context, snippet, entry string, cases []domain.TestCase) ([]domain.CaseResult, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, errors.New("backend unavailable")
	}
	results := make([]domain.CaseResult, len(cases))
	for i, tc := range cases {
		results[i] = domain.CaseResult{Case: tc, Actual: tc.Expected, Passed: true}
	}
	return results, nil
}

func TestResilientExecutor_PassesThrough(t *testing.T) {
	stub := &stubExecutor{}
	re := NewResilientExecutor(stub, DefaultResilientConfig())

	cases := []domain.TestCase{{Input: "x=1", Expected: "1"}}
	results, err := re.RunCases(context.Background(), "snippet", "f", cases)
	if err != nil {
		t.Fatalf("RunCases() error = %v", err)
	}
	if len(results) != 1 || !results[0].Passed {
		t.Errorf("results = %+v, want one passed case", results)
	}
	if stub.calls != 1 {
		t.Errorf("calls = %d, want 1", stub.calls)
	}
}

func TestResilientExecutor_RetriesTransientFailure(t *testing.T) {
	stub := &stubExecutor{failures: 1}
	re := NewResilientExecutor(stub, ResilientConfig{EnableRetry: true})

	_, err := re.RunCases(context.Background(), "snippet", "f", []domain.TestCase{{Input: "x=1", Expected: "1"}})
	if err != nil {
		t.Fatalf("RunCases() error = %v, want retry to succeed", err)
	}
	if stub.calls != 2 {
		t.Errorf("calls = %d, want 2", stub.calls)
	}
}

func TestResilientExecutor_AllDisabled(t *testing.T) {
	stub := &stubExecutor{}
	re := NewResilientExecutor(stub, ResilientConfig{})

	if _, err := re.RunCases(context.Background(), "snippet", "f", nil); err != nil {
		t.Fatalf("RunCases() error = %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("calls = %d, want 1", stub.calls)
	}
}
