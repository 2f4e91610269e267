package session

import (
	"testing"

	"github.com/Seednode/cluebox/internal/game"
	"github.com/Seednode/cluebox/internal/profiles"
)

func fixtureProfiles() []profiles.Profile {
	return []profiles.Profile{
		{
			ID:       "fp-001",
			Name:     "Ada Lovelace",
			Category: "famous-people",
			Clues:    []string{"fp1 clue a", "fp1 clue b", "fp1 clue c"},
		},
		{
			ID:       "co-001",
			Name:     "Japan",
			Category: "countries",
			Clues:    []string{"co1 clue a", "co1 clue b", "co1 clue c"},
		},
	}
}

func newTestSession(t *testing.T) Session {
	t.Helper()
	g, err := game.NewGame([]string{"Alice", "Bob"}, 3, "")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return New(g, fixtureProfiles(), []string{"fp-001", "co-001"}, 2)
}

func startedSession(t *testing.T) Session {
	t.Helper()
	s, err := newTestSession(t).Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func TestNewSessionShape(t *testing.T) {
	s := newTestSession(t)

	if s.TotalProfilesCount != 2 || s.NumberOfRounds != 2 {
		t.Fatalf("counts = %d/%d, want 2/2", s.TotalProfilesCount, s.NumberOfRounds)
	}
	wantMap := []string{"famous-people", "countries"}
	for i, want := range wantMap {
		if s.RoundCategoryMap[i] != want {
			t.Fatalf("RoundCategoryMap = %v, want %v", s.RoundCategoryMap, wantMap)
		}
	}
}

func TestStart(t *testing.T) {
	s := startedSession(t)

	if s.Status != game.StatusActive {
		t.Fatalf("status = %q, want active", s.Status)
	}
	if s.CurrentProfile == nil || s.CurrentProfile.ID != "fp-001" {
		t.Fatalf("current profile = %+v, want fp-001", s.CurrentProfile)
	}
	if s.CurrentRound != 1 {
		t.Fatalf("round = %d, want 1", s.CurrentRound)
	}
	if s.CurrentTurn == nil || s.CurrentTurn.ProfileID != "fp-001" {
		t.Fatalf("turn = %+v, want fp-001", s.CurrentTurn)
	}
}

func TestAdvanceClueRecordsHistory(t *testing.T) {
	s := startedSession(t)

	s, reveal, err := s.AdvanceClue()
	if err != nil {
		t.Fatalf("AdvanceClue: %v", err)
	}
	if reveal.Index != 0 || reveal.Text != "fp1 clue a" {
		t.Fatalf("reveal = %+v, want index 0 / fp1 clue a", reveal)
	}

	s, reveal, err = s.AdvanceClue()
	if err != nil {
		t.Fatalf("AdvanceClue: %v", err)
	}
	if reveal.Text != "fp1 clue b" {
		t.Fatalf("reveal text = %q, want fp1 clue b", reveal.Text)
	}

	// History is most recent first.
	if s.RevealedClueHistory.Len() != 2 {
		t.Fatalf("history length = %d, want 2", s.RevealedClueHistory.Len())
	}
	if s.RevealedClueHistory.Clues[0] != "fp1 clue b" {
		t.Fatalf("history head = %q, want fp1 clue b", s.RevealedClueHistory.Clues[0])
	}
	if s.RevealedClueHistory.Indices[0] != 1 || s.RevealedClueHistory.Indices[1] != 0 {
		t.Fatalf("history indices = %v, want [1 0]", s.RevealedClueHistory.Indices)
	}
}

func TestAdvanceClueHonorsCap(t *testing.T) {
	s := startedSession(t)

	var err error
	for i := 0; i < 3; i++ {
		s, _, err = s.AdvanceClue()
		if err != nil {
			t.Fatalf("advance %d: %v", i+1, err)
		}
	}

	if _, _, err := s.AdvanceClue(); err == nil {
		t.Fatal("expected an error past the clue cap")
	}
}

func TestAdvanceClueRequiresActiveSession(t *testing.T) {
	if _, _, err := newTestSession(t).AdvanceClue(); err == nil {
		t.Fatal("expected an error on a pending session")
	}
}

func TestReveal(t *testing.T) {
	s := startedSession(t)

	s, err := s.Reveal()
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if !s.CurrentTurn.Revealed {
		t.Fatal("turn not marked revealed")
	}
}

func TestScoring(t *testing.T) {
	s := startedSession(t)
	alice := s.Players[0].ID

	s, err := s.AwardPoints(alice, 3)
	if err != nil {
		t.Fatalf("AwardPoints: %v", err)
	}
	if s.Players[0].Score != 3 {
		t.Fatalf("score = %d, want 3", s.Players[0].Score)
	}

	s, err = s.RemovePoints(alice, 1)
	if err != nil {
		t.Fatalf("RemovePoints: %v", err)
	}
	if s.Players[0].Score != 2 {
		t.Fatalf("score = %d, want 2", s.Players[0].Score)
	}

	if _, err := s.RemovePoints(alice, 99); err == nil {
		t.Fatal("expected an error removing more than the score")
	}
	if _, err := s.AwardPoints("missing", 1); err == nil {
		t.Fatal("expected an error for an unknown player")
	}
}

func TestNextProfile(t *testing.T) {
	s := startedSession(t)

	s, _, err := s.AdvanceClue()
	if err != nil {
		t.Fatalf("AdvanceClue: %v", err)
	}

	s, ok, err := s.NextProfile()
	if err != nil {
		t.Fatalf("NextProfile: %v", err)
	}
	if !ok {
		t.Fatal("expected another profile to be available")
	}
	if s.CurrentProfile.ID != "co-001" {
		t.Fatalf("current profile = %q, want co-001", s.CurrentProfile.ID)
	}
	if s.CurrentRound != 2 {
		t.Fatalf("round = %d, want 2", s.CurrentRound)
	}
	if s.CurrentTurn.CluesRead != 0 {
		t.Fatal("new profile should start with a fresh turn")
	}
	if s.RevealedClueHistory.Len() != 0 {
		t.Fatal("new profile should start with an empty clue history")
	}
}

func TestNextProfileExhaustsQueue(t *testing.T) {
	s := startedSession(t)

	s, ok, err := s.NextProfile()
	if err != nil || !ok {
		t.Fatalf("first NextProfile: ok=%v err=%v", ok, err)
	}

	s, ok, err = s.NextProfile()
	if err != nil {
		t.Fatalf("second NextProfile: %v", err)
	}
	if ok {
		t.Fatal("expected the queue to be exhausted")
	}
}

func TestEnd(t *testing.T) {
	s := startedSession(t)

	ended, err := s.End()
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if ended.Status != game.StatusCompleted {
		t.Fatalf("status = %q, want completed", ended.Status)
	}
	if ended.CurrentTurn != nil || ended.CurrentProfile != nil {
		t.Fatal("completed session should clear turn and profile")
	}

	if _, err := ended.End(); err == nil {
		t.Fatal("expected an error ending twice")
	}
}

func TestRefreshLocaleRebuildsHistory(t *testing.T) {
	s := startedSession(t)

	var err error
	s, _, err = s.AdvanceClue()
	if err != nil {
		t.Fatalf("AdvanceClue: %v", err)
	}
	s, _, err = s.AdvanceClue()
	if err != nil {
		t.Fatalf("AdvanceClue: %v", err)
	}

	translated := fixtureProfiles()
	translated[0].Clues = []string{"pista a", "pista b", "pista c"}

	s, err = s.RefreshLocale(translated)
	if err != nil {
		t.Fatalf("RefreshLocale: %v", err)
	}

	if s.RevealedClueHistory.Clues[0] != "pista b" || s.RevealedClueHistory.Clues[1] != "pista a" {
		t.Fatalf("rebuilt history = %v, want [pista b pista a]", s.RevealedClueHistory.Clues)
	}
	if s.RevealedClueHistory.Indices[0] != 1 || s.RevealedClueHistory.Indices[1] != 0 {
		t.Fatalf("indices changed: %v", s.RevealedClueHistory.Indices)
	}
	if s.CurrentProfile.Clues[0] != "pista a" {
		t.Fatal("current profile should point at the refetched data")
	}
}
