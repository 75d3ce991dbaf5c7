//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/recodelabs/recode/internal/session"
	"github.com/recodelabs/recode/internal/storage/postgres"
)

// setupPostgres creates a Postgres container for testing
func setupPostgres(t *testing.T) (string, func()) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("recode_test"),
		tcpostgres.WithUsername("recode"),
		tcpostgres.WithPassword("recode"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start Postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("failed to get connection string: %v", err)
	}

	cleanup := func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return dsn, cleanup
}

func testSummary(finished time.Time) session.Summary {
	return session.Summary{
		ID:         uuid.New().String(),
		StartedAt:  finished.Add(-10 * time.Minute),
		FinishedAt: finished,
		Attempted:  4,
		Correct:    2,
		Shown:      []string{"two_sum", "binary_search"},
	}
}

func TestIntegration_Open_InvalidDSN(t *testing.T) {
	if _, err := postgres.Open("postgres://nobody@localhost:1/nope?sslmode=disable&connect_timeout=1"); err == nil {
		t.Error("expected error for unreachable database")
	}
}

func TestIntegration_HistoryStore_SaveAndRecent(t *testing.T) {
	dsn, cleanup := setupPostgres(t)
	defer cleanup()

	store, err := postgres.Open(dsn)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	summary := testSummary(time.Now())
	if err := store.Save(ctx, summary); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(Recent()) = %d, want 1", len(got))
	}
	if got[0].ID != summary.ID {
		t.Errorf("ID = %q, want %q", got[0].ID, summary.ID)
	}
	if got[0].Attempted != 4 || got[0].Correct != 2 {
		t.Errorf("score = %d/%d, want 2/4", got[0].Correct, got[0].Attempted)
	}
	if len(got[0].Shown) != 2 || got[0].Shown[0] != "two_sum" {
		t.Errorf("Shown = %v", got[0].Shown)
	}
}

func TestIntegration_HistoryStore_UpsertAndOrder(t *testing.T) {
	dsn, cleanup := setupPostgres(t)
	defer cleanup()

	store, err := postgres.Open(dsn)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Now()
	older := testSummary(base.Add(-time.Hour))
	newer := testSummary(base)

	for _, s := range []session.Summary{older, newer} {
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	// Saving again with the same id updates in place.
	newer.Attempted = 9
	newer.Correct = 7
	if err := store.Save(ctx, newer); err != nil {
		t.Fatalf("upsert Save() error = %v", err)
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(Recent()) = %d, want 2", len(got))
	}
	if got[0].ID != newer.ID {
		t.Errorf("Recent()[0].ID = %q, want newest first", got[0].ID)
	}
	if got[0].Attempted != 9 || got[0].Correct != 7 {
		t.Errorf("score = %d/%d, want 7/9 after upsert", got[0].Correct, got[0].Attempted)
	}
}
