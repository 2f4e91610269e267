package game

import (
	"errors"
	"testing"

	"github.com/Seednode/cluebox/internal/apperror"
)

func TestNewTurn(t *testing.T) {
	turn, err := NewTurn("famous-people-001")
	if err != nil {
		t.Fatalf("NewTurn: %v", err)
	}
	if turn.CluesRead != 0 || turn.Revealed {
		t.Fatalf("fresh turn = %+v, want zero progress", turn)
	}
	if turn.CurrentClueIndex() != -1 {
		t.Fatalf("CurrentClueIndex = %d, want -1", turn.CurrentClueIndex())
	}
}

func TestNewTurnEmptyProfileID(t *testing.T) {
	if _, err := NewTurn("  "); err == nil {
		t.Fatal("expected an error for empty profile id")
	}
}

func TestAdvanceClueToCap(t *testing.T) {
	const maxClues = 5

	turn, err := NewTurn("p1")
	if err != nil {
		t.Fatalf("NewTurn: %v", err)
	}

	for i := 1; i <= maxClues; i++ {
		turn, err = turn.AdvanceClue(maxClues)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		if turn.CluesRead != i {
			t.Fatalf("CluesRead = %d, want %d", turn.CluesRead, i)
		}
		if turn.CurrentClueIndex() != i-1 {
			t.Fatalf("CurrentClueIndex = %d, want %d", turn.CurrentClueIndex(), i-1)
		}
	}

	_, err = turn.AdvanceClue(maxClues)
	if err == nil {
		t.Fatal("expected MaxCluesReached past the cap")
	}
	var typed *apperror.Error
	if !errors.As(err, &typed) || typed.Code != apperror.CodeGameMaxCluesReached {
		t.Fatalf("expected code %s, got %v", apperror.CodeGameMaxCluesReached, err)
	}
}

func TestRevealIsIdempotent(t *testing.T) {
	turn := Turn{ProfileID: "p1"}

	turn = turn.Reveal()
	if !turn.Revealed {
		t.Fatal("expected revealed after Reveal")
	}
	turn = turn.Reveal()
	if !turn.Revealed {
		t.Fatal("expected revealed to stay set")
	}
}

func TestTurnQueries(t *testing.T) {
	turn := Turn{ProfileID: "p1", CluesRead: 0}
	if turn.HasReadClues() {
		t.Fatal("HasReadClues on fresh turn")
	}
	if !turn.CanAdvance(3) {
		t.Fatal("fresh turn should be able to advance")
	}

	turn.CluesRead = 3
	if !turn.HasReadClues() {
		t.Fatal("HasReadClues with 3 clues read")
	}
	if !turn.HasReadAllClues(3) {
		t.Fatal("HasReadAllClues at the cap")
	}
	if turn.CanAdvance(3) {
		t.Fatal("CanAdvance at the cap")
	}
}
