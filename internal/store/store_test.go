package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "openmind.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := OpenDriver("oracle", "x"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"journeys", "topics", "profiles", "leaderboard_entries", "activity_events", "llm_request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openmind.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx, s.drv)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSequenceSharedAcrossEventTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "topic-gen", Success: true}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	e := &ActivityEvent{UserID: "u1", Kind: KindJourneyStarted}
	if err := s.Activity().Append(ctx, e); err != nil {
		t.Fatalf("append activity: %v", err)
	}
	if e.Sequence != 2 {
		t.Errorf("activity sequence = %d, want 2", e.Sequence)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx *Tx) error {
		if err := tx.Journeys().Create(ctx, newJourney("j1", "u1", now)); err != nil {
			return err
		}
		if _, err := tx.Profiles().Ensure(ctx, "u1", now); err != nil {
			return err
		}
		if err := tx.Activity().Append(ctx, &ActivityEvent{UserID: "u1", Kind: KindJourneyStarted}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	if _, err := s.Journeys().Get(ctx, "j1"); !IsNotFound(err) {
		t.Errorf("journey after rollback: err = %v, want not found", err)
	}
	if _, err := s.Profiles().Get(ctx, "u1"); !IsNotFound(err) {
		t.Errorf("profile after rollback: err = %v, want not found", err)
	}
	events, err := s.Activity().Query(ctx, "u1", QueryOpts{})
	if err != nil {
		t.Fatalf("query activity: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("activity events after rollback = %d, want 0", len(events))
	}

	// The sequence increment rolled back too.
	seq, err := s.seq.Next(ctx, s.drv)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if seq != 1 {
		t.Errorf("sequence after rollback = %d, want 1", seq)
	}
}

func TestWithTxCommits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	err := s.WithTx(ctx, func(tx *Tx) error {
		return tx.Journeys().Create(ctx, newJourney("j1", "u1", now))
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}
	if _, err := s.Journeys().Get(ctx, "j1"); err != nil {
		t.Fatalf("get after commit: %v", err)
	}
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = s.WithTx(ctx, func(tx *Tx) error {
			if err := tx.Journeys().Create(ctx, newJourney("j1", "u1", time.Now())); err != nil {
				return err
			}
			panic("kaboom")
		})
	}()

	if _, err := s.Journeys().Get(ctx, "j1"); !IsNotFound(err) {
		t.Errorf("journey after panic: err = %v, want not found", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "x.db")
		t.Setenv("OPENMIND_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("OPENMIND_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "openmind", "openmind.db")
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}

func newJourney(id, userID string, startedAt time.Time) *Journey {
	return &Journey{
		ID:        id,
		UserID:    userID,
		Title:     "Mastering Chess Openings",
		Interests: []string{"chess"},
		TopicIDs:  []string{},
		TotalDays: 7,
		StartedAt: startedAt,
	}
}
