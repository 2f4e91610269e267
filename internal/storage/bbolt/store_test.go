package bbolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"

	"github.com/Seednode/cluebox/internal/apperror"
	"github.com/Seednode/cluebox/internal/game"
	"github.com/Seednode/cluebox/internal/profiles"
	"github.com/Seednode/cluebox/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cluebox.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func fixtureSession(t *testing.T) session.Session {
	t.Helper()

	g, err := game.NewGame([]string{"Alice", "Bob"}, 3, "countries")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	loaded := []profiles.Profile{
		{ID: "co-001", Name: "Japan", Category: "countries", Clues: []string{"a", "b", "c"}},
		{ID: "co-002", Name: "Chile", Category: "countries", Clues: []string{"d", "e", "f"}},
	}
	s, err := session.New(g, loaded, []string{"co-001", "co-002"}, 2).Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	s, _, err = s.AdvanceClue()
	if err != nil {
		t.Fatalf("AdvanceClue: %v", err)
	}
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	want := fixtureSession(t)

	if err := store.Save(ctx, want.ID, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, want.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.ID != want.ID || got.Status != want.Status || got.CurrentRound != want.CurrentRound {
		t.Fatalf("loaded %+v, want %+v", got.Game, want.Game)
	}
	if len(got.Players) != 2 || got.Players[0].Name != "Alice" {
		t.Fatalf("players = %+v", got.Players)
	}
	if got.CurrentTurn == nil || got.CurrentTurn.CluesRead != 1 {
		t.Fatalf("turn = %+v, want 1 clue read", got.CurrentTurn)
	}
	if got.CurrentProfile == nil || got.CurrentProfile.ID != "co-001" {
		t.Fatalf("current profile = %+v, want co-001", got.CurrentProfile)
	}
	if got.RevealedClueHistory.Len() != 1 || got.RevealedClueHistory.Clues[0] != "a" {
		t.Fatalf("history = %+v", got.RevealedClueHistory)
	}
	if len(got.RemainingProfiles) != 2 {
		t.Fatalf("queue = %v, want two entries", got.RemainingProfiles)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	s := fixtureSession(t)

	if err := store.Save(ctx, s.ID, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	updated, _, err := s.AdvanceClue()
	if err != nil {
		t.Fatalf("AdvanceClue: %v", err)
	}
	if err := store.Save(ctx, s.ID, updated); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, s.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CurrentTurn.CluesRead != 2 {
		t.Fatalf("CluesRead = %d, want 2", got.CurrentTurn.CluesRead)
	}
}

func TestLoadMissingSession(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Load(context.Background(), "missing")
	if !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadCorruptSession(t *testing.T) {
	store := openTestStore(t)

	err := store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put([]byte("bad"), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("seed corrupt record: %v", err)
	}

	_, err = store.Load(context.Background(), "bad")
	if err == nil {
		t.Fatal("corrupt data must be a hard failure, not a miss")
	}
	if errors.Is(err, session.ErrNotFound) {
		t.Fatal("corrupt data must not read as not-found")
	}
	var typed *apperror.Error
	if !errors.As(err, &typed) || typed.Code != apperror.CodePersistenceSessionCorrupt {
		t.Fatalf("expected code %s, got %v", apperror.CodePersistenceSessionCorrupt, err)
	}
}

func TestSaveValidation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "  ", fixtureSession(t)); err == nil {
		t.Fatal("expected an error for an empty session id")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := store.Save(cancelled, "s1", fixtureSession(t)); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected an error for an empty path")
	}
}
