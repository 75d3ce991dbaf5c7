package main

import (
	"context"
	"fmt"

	"github.com/recodelabs/recode/internal/config"
	"github.com/recodelabs/recode/internal/session"
	"github.com/recodelabs/recode/internal/storage/postgres"
	"github.com/recodelabs/recode/internal/storage/sqlite"
)

// cmdHistory shows recent session scores from the configured store
func cmdHistory(cfg *config.Config) error {
	store, closer, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Println("No history store configured (set RECODE_HISTORY or RECODE_HISTORY_DSN)")
		return nil
	}
	defer closer()

	summaries, err := store.Recent(context.Background(), 20)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No sessions recorded yet")
		return nil
	}

	fmt.Println("Recent sessions:")
	for _, s := range summaries {
		fmt.Printf("  %s  %d/%d (%.0f%%)  %d problems shown\n",
			s.FinishedAt.Format("2006-01-02 15:04"),
			s.Correct, s.Attempted, s.Accuracy(), len(s.Shown))
	}
	return nil
}

// openHistory opens the configured history store, or returns nil when
// history persistence is disabled.
func openHistory(cfg *config.Config) (session.HistoryStore, func() error, error) {
	if cfg.HistoryDSN != "" {
		store, err := postgres.Open(cfg.HistoryDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	if cfg.HistoryPath != "" {
		db, err := sqlite.Open(cfg.HistoryPath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewHistoryStore(db), db.Close, nil
	}
	return nil, nil, nil
}

// finishSession saves the session summary when a history store is
// configured. Sessions with no attempts are not persisted.
func finishSession(cfg *config.Config, sess *session.Session) error {
	if sess.Attempted == 0 {
		return nil
	}
	store, closer, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return nil
	}
	defer closer()
	return store.Save(context.Background(), sess.Summary())
}
