package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/recodelabs/recode/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = cmdList(cfg)
	case "problems":
		err = cmdProblems(cfg, os.Args[2:])
	case "info":
		if len(os.Args) < 3 {
			err = fmt.Errorf("problem id required (e.g., two_sum)")
		} else {
			err = cmdInfo(cfg, os.Args[2])
		}
	case "flashcard":
		err = cmdFlashcard(cfg, os.Args[2:])
	case "test":
		if len(os.Args) < 3 {
			err = fmt.Errorf("problem id required (e.g., two_sum)")
		} else {
			err = cmdTest(cfg, os.Args[2])
		}
	case "explain":
		if len(os.Args) < 3 {
			err = fmt.Errorf("problem id required (e.g., two_sum)")
		} else {
			err = cmdExplain(cfg, os.Args[2])
		}
	case "history":
		err = cmdHistory(cfg)
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("recode %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Recode - Coding Interview Revision

Usage:
  recode <command> [arguments]

Bank Commands:
  list                     List concepts and patterns
  problems [--tag k=v]     List problems, optionally filtered by tag
  info <id>                Show problem details

Practice Commands:
  flashcard <id|--random> [--tag k=v]
                           Recall practice on a key code line
  test <id>                Edge-case practice against the test cases
  explain <id>             Review the full solution (not scored)

Other Commands:
  history                  Show recent session scores
  version                  Show version

Configuration (environment):
  RECODE_BANK              Problem bank YAML (default ./problems/problems.yaml)
  RECODE_AVOID_REPEATS     Skip already-shown problems in random selection
  RECODE_RUNNER            Test runner: local or docker (default local)
  RECODE_HISTORY           SQLite file for score history (optional)
  RECODE_HISTORY_DSN       Postgres DSN for score history (optional)`)
}
