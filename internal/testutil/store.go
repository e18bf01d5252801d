// Package testutil provides fixtures shared by package tests: throwaway
// stores on either backend and seeded users and events.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"slot-swapper-api/internal/model"
	"slot-swapper-api/internal/store"
)

// NewSQLiteStore opens a migrated store in t's temp dir, closed on cleanup.
func NewSQLiteStore(t *testing.T) *store.SQLite {
	t.Helper()
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	return st
}

// NewPostgresStore connects to DATABASE_URL (read from the repo .env if
// present) and migrates it. The test is skipped when no database is
// configured. Tables are shared, so callers must seed their own rows.
func NewPostgresStore(t *testing.T) *store.Postgres {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)
	st := store.NewPostgres(pool)
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	return st
}

// EachStore runs fn as a subtest against SQLite and, when configured,
// Postgres.
func EachStore(t *testing.T, fn func(t *testing.T, st store.Store)) {
	t.Helper()
	t.Run("sqlite", func(t *testing.T) { fn(t, NewSQLiteStore(t)) })
	t.Run("postgres", func(t *testing.T) { fn(t, NewPostgresStore(t)) })
}

func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func SeedUser(t *testing.T, st store.Store, name string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	u := &model.User{
		ID:           uuid.New().String(),
		Email:        fmt.Sprintf("%s-%s@test.com", name, uuid.New().String()[:8]),
		PasswordHash: "x",
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := st.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

// SeedEvent inserts an event starting hoursFromNow hours from now.
func SeedEvent(t *testing.T, st store.Store, ownerID string, hoursFromNow int, status model.EventStatus) *model.Event {
	t.Helper()
	now := time.Now().UTC()
	start := now.Add(time.Duration(hoursFromNow) * time.Hour).Truncate(time.Second)
	ev := &model.Event{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     fmt.Sprintf("slot-%d", hoursFromNow),
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := st.InTx(context.Background(), func(tx store.Tx) error {
		return tx.InsertEvent(context.Background(), ev)
	})
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return ev
}

// MustEvent reads an event back, failing the test if it is gone.
func MustEvent(t *testing.T, st store.Store, id string) *model.Event {
	t.Helper()
	ev, err := st.EventByID(context.Background(), id)
	if err != nil {
		t.Fatalf("EventByID(%s): %v", id, err)
	}
	return ev
}
