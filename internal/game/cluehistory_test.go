package game

import (
	"testing"
)

func TestClueHistoryRecordPrepends(t *testing.T) {
	var h ClueHistory

	h = h.Record("first clue", 0)
	h = h.Record("second clue", 1)
	h = h.Record("third clue", 2)

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	wantClues := []string{"third clue", "second clue", "first clue"}
	wantIndices := []int{2, 1, 0}
	for i := range wantClues {
		if h.Clues[i] != wantClues[i] {
			t.Fatalf("Clues = %v, want %v", h.Clues, wantClues)
		}
		if h.Indices[i] != wantIndices[i] {
			t.Fatalf("Indices = %v, want %v", h.Indices, wantIndices)
		}
	}
}

func TestClueHistoryRecordDoesNotMutate(t *testing.T) {
	h := ClueHistory{}.Record("a", 0)
	_ = h.Record("b", 1)

	if h.Len() != 1 || h.Clues[0] != "a" {
		t.Fatalf("original history mutated: %+v", h)
	}
}

func TestRebuildClueHistory(t *testing.T) {
	// Simulates refetching clue text in another language for the same
	// recorded positions.
	translated := []string{"uno", "dos", "tres", "cuatro"}

	rebuilt := RebuildClueHistory([]int{2, 1, 0}, translated)

	wantClues := []string{"tres", "dos", "uno"}
	for i, want := range wantClues {
		if rebuilt.Clues[i] != want {
			t.Fatalf("Clues = %v, want %v", rebuilt.Clues, wantClues)
		}
		if rebuilt.Indices[i] != 2-i {
			t.Fatalf("Indices = %v, want [2 1 0]", rebuilt.Indices)
		}
	}
}

func TestRebuildClueHistoryOutOfRange(t *testing.T) {
	rebuilt := RebuildClueHistory([]int{5, 0}, []string{"only"})

	if rebuilt.Clues[0] != "" {
		t.Fatalf("out-of-range index should map to empty text, got %q", rebuilt.Clues[0])
	}
	if rebuilt.Indices[0] != 5 {
		t.Fatal("recorded index should be preserved even when out of range")
	}
	if rebuilt.Clues[1] != "only" {
		t.Fatalf("Clues[1] = %q, want only", rebuilt.Clues[1])
	}
}
