package main

import (
	"fmt"
	"strings"

	"github.com/recodelabs/recode/internal/bank"
	"github.com/recodelabs/recode/internal/config"
)

// cmdList lists concepts and patterns in the bank
func cmdList(cfg *config.Config) error {
	store, err := bank.Load(cfg.BankPath)
	if err != nil {
		return err
	}

	fmt.Println("Available Concepts:")
	for i, concept := range store.Concepts() {
		fmt.Printf("  %d. %s\n", i+1, concept)
	}

	fmt.Println("\nAvailable Patterns:")
	for i, pattern := range store.Patterns() {
		fmt.Printf("  %d. %s\n", i+1, pattern)
	}

	stats := store.Stats()
	fmt.Printf("\n%d problems", stats.ProblemCount)
	if len(stats.ByDifficulty) > 0 {
		var parts []string
		for _, d := range []string{"easy", "medium", "hard"} {
			if n := stats.ByDifficulty[d]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, d))
			}
		}
		if len(parts) > 0 {
			fmt.Printf(" (%s)", strings.Join(parts, ", "))
		}
	}
	fmt.Println()
	return nil
}

// cmdProblems lists problems, optionally narrowed by --tag filters
func cmdProblems(cfg *config.Config, args []string) error {
	filter, err := parseFilter(args)
	if err != nil {
		return err
	}

	store, err := bank.Load(cfg.BankPath)
	if err != nil {
		return err
	}

	problems := store.Filter(filter)
	if len(problems) == 0 {
		fmt.Println("No problems match these filters")
		return nil
	}

	for _, p := range problems {
		fmt.Printf("  %-24s %s [%s]\n", p.ID, p.Title, p.Difficulty())
	}
	return nil
}

// cmdInfo shows one problem's details
func cmdInfo(cfg *config.Config, id string) error {
	store, err := bank.Load(cfg.BankPath)
	if err != nil {
		return err
	}

	p, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}

	fmt.Printf("Problem: %s\n\n", p.Title)
	fmt.Printf("ID:      %s\n", p.ID)
	fmt.Printf("Concept: %s\n", p.Concept)
	fmt.Printf("Tags:    %s\n", strings.Join(p.ConceptTags(), ", "))
	fmt.Printf("Tests:   %d (%d edge cases)\n", len(p.TestCases), len(p.EdgeCases()))
	fmt.Printf("Quiz questions: %d\n", len(p.QuizQuestions))
	if p.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", p.Description)
	}
	return nil
}

// parseFilter parses repeated --tag k=v arguments (and --concept) into a
// tag filter. Unknown arguments are an error.
func parseFilter(args []string) (bank.TagFilter, error) {
	filter := bank.TagFilter{Tags: make(map[string]string)}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--tag":
			if i+1 >= len(args) {
				return filter, fmt.Errorf("--tag requires a k=v argument")
			}
			i++
			k, v, ok := strings.Cut(args[i], "=")
			if !ok {
				return filter, fmt.Errorf("invalid tag filter %q, want k=v", args[i])
			}
			filter.Tags[k] = v
		case "--concept":
			if i+1 >= len(args) {
				return filter, fmt.Errorf("--concept requires an argument")
			}
			i++
			filter.Concept = args[i]
		case "--random":
			// handled by the caller
		default:
			return filter, fmt.Errorf("unknown argument: %s", args[i])
		}
	}
	return filter, nil
}
