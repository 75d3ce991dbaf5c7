package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/recodelabs/recode/internal/bank"
	"github.com/recodelabs/recode/internal/config"
	"github.com/recodelabs/recode/internal/domain"
	"github.com/recodelabs/recode/internal/practice"
	"github.com/recodelabs/recode/internal/runner"
	"github.com/recodelabs/recode/internal/session"
)

// cmdFlashcard runs an interactive flashcard loop. Each round shows a quiz
// question; an empty line or "quit" ends the session.
func cmdFlashcard(cfg *config.Config, args []string) error {
	random := false
	var id string
	for _, a := range args {
		if a == "--random" {
			random = true
		}
	}
	if !random {
		if len(args) < 1 || strings.HasPrefix(args[0], "--") {
			return fmt.Errorf("problem id required, or use --random")
		}
		id = args[0]
		args = args[1:]
	}

	filter, err := parseFilter(args)
	if err != nil {
		return err
	}

	store, err := bank.Load(cfg.BankPath)
	if err != nil {
		return err
	}
	selector := bank.NewSelector(store, bank.SelectorConfig{AvoidRepeats: cfg.AvoidRepeats})
	engine := practice.NewEngine()
	sess := session.Start(filter)

	reader := bufio.NewReader(os.Stdin)
	for {
		var p *domain.Problem
		if random {
			p, err = selector.RandomFiltered(filter, sess.Shown)
		} else {
			p, err = selector.ByID(id)
		}
		if err != nil {
			return err
		}

		sess.RecordShown(p)
		prompt, err := engine.Flashcard(p, sess.Attempts(p.ID)-1)
		if err != nil {
			return fmt.Errorf("%w: %s", err, p.ID)
		}

		fmt.Printf("\n[%s] %s\n", p.Concept, p.Title)
		fmt.Printf("Q: %s\n", prompt.Question)
		if prompt.Context != "" {
			fmt.Printf("   (%s)\n", prompt.Context)
		}
		fmt.Print("> ")

		line, readErr := reader.ReadString('\n')
		guess := strings.TrimSpace(line)
		if guess == "" || guess == "quit" {
			break
		}

		eval := engine.CheckFlashcard(prompt, guess)
		sess.RecordResult(eval)
		if eval.Correct() {
			fmt.Println("Correct!")
		} else {
			fmt.Printf("Incorrect. %s\n", eval.Explanation)
		}

		correct, attempted := sess.Score()
		fmt.Printf("Score: %d/%d\n", correct, attempted)

		if readErr == io.EOF {
			break
		}
	}

	return finishSession(cfg, sess)
}

// cmdTest runs unit-test mode: the snippet is shown with blanks, the user
// supplies their version, and it runs against every test case.
func cmdTest(cfg *config.Config, id string) error {
	store, err := bank.Load(cfg.BankPath)
	if err != nil {
		return err
	}
	p, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}

	engine := practice.NewEngine()
	sess := session.Start(bank.TagFilter{})
	sess.RecordShown(p)

	prompt, err := engine.UnitTest(p, sess.AttemptSeed(p.ID))
	if err != nil {
		return fmt.Errorf("%w: %s", err, p.ID)
	}

	fmt.Printf("[%s] %s\n\n", p.Concept, p.Title)
	fmt.Println(prompt.MaskedSnippet)
	for _, b := range prompt.Blanks {
		fmt.Printf("  blank (%d): %s\n", b.ID, b.Hint)
	}
	fmt.Printf("\nYour version must pass %d test cases", len(prompt.Cases))
	if edges := p.EdgeCases(); len(edges) > 0 {
		fmt.Printf(" (%d edge cases)", len(edges))
	}
	fmt.Println("\nEnter your version of the snippet, end with Ctrl-D:")

	code, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read snippet: %w", err)
	}

	exec, err := newExecutor(cfg)
	if err != nil {
		return err
	}

	results, err := exec.RunCases(context.Background(), string(code), p.ID, prompt.Cases)
	if err != nil {
		return fmt.Errorf("run test cases: %w", err)
	}

	eval := engine.EvaluateRun(prompt, results)
	sess.RecordResult(eval)

	switch eval.Outcome {
	case domain.OutcomeCorrect:
		fmt.Println("\nAll test cases passed!")
	default:
		fmt.Printf("\n%s\n", eval.Explanation)
		fmt.Printf("\nReference snippet:\n%s\n", prompt.Snippet)
	}

	correct, attempted := sess.Score()
	fmt.Printf("Score: %d/%d\n", correct, attempted)
	return finishSession(cfg, sess)
}

// cmdExplain shows the full record for review. Explain mode is never scored.
func cmdExplain(cfg *config.Config, id string) error {
	store, err := bank.Load(cfg.BankPath)
	if err != nil {
		return err
	}
	p, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}

	explanation := practice.NewEngine().Explain(p)

	fmt.Printf("%s (%s)\n\n", explanation.Title, explanation.Concept)
	if explanation.Description != "" {
		fmt.Printf("%s\n\n", explanation.Description)
	}
	fmt.Printf("%s\n\n", explanation.Snippet)
	for _, kp := range explanation.KeyPoints {
		fmt.Printf("  %s\n", kp)
	}
	if len(explanation.CommonBugs) > 0 {
		fmt.Println("\nCommon bugs:")
		for _, bug := range explanation.CommonBugs {
			fmt.Printf("  - %s\n", bug)
		}
	}
	if len(explanation.TestCases) > 0 {
		fmt.Println("\nTest cases:")
		for _, tc := range explanation.TestCases {
			marker := ""
			if tc.EdgeCase {
				marker = " [edge case]"
			}
			fmt.Printf("  %s -> %s%s\n", tc.Input, tc.Expected, marker)
		}
	}
	return nil
}

// newExecutor builds the configured runner, wrapped with resilience.
func newExecutor(cfg *config.Config) (runner.Executor, error) {
	var exec runner.Executor
	switch cfg.Runner {
	case "docker":
		dockerExec, err := runner.NewDockerExecutor(runner.DockerConfig{
			Image:       cfg.RunnerImage,
			MemoryMB:    cfg.RunnerMemoryMB,
			CPULimit:    cfg.RunnerCPULimit,
			CaseTimeout: cfg.RunnerTimeout,
		})
		if err != nil {
			return nil, err
		}
		exec = dockerExec
	case "local", "":
		exec = runner.NewLocalExecutor(cfg.PythonBin, cfg.RunnerTimeout)
	default:
		return nil, fmt.Errorf("unknown runner: %s", cfg.Runner)
	}
	return runner.NewResilientExecutor(exec, runner.DefaultResilientConfig()), nil
}
