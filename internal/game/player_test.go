package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/Seednode/cluebox/internal/apperror"
)

func TestNewPlayer(t *testing.T) {
	p, err := NewPlayer("Alice", 0)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected a generated id")
	}
	if p.Name != "Alice" {
		t.Fatalf("name = %q, want Alice", p.Name)
	}
	if p.Score != 0 {
		t.Fatalf("score = %d, want 0", p.Score)
	}
}

func TestNewPlayerTrimsWhitespace(t *testing.T) {
	p, err := NewPlayer("  Bob  ", 1)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if p.Name != "Bob" {
		t.Fatalf("name = %q, want Bob", p.Name)
	}
}

func TestNewPlayerEmptyName(t *testing.T) {
	_, err := NewPlayer("   ", 2)
	if err == nil {
		t.Fatal("expected an error for empty name")
	}
	var typed *apperror.Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected *apperror.Error, got %T", err)
	}
	if typed.Field != "name" {
		t.Fatalf("field = %q, want name", typed.Field)
	}
	if !strings.Contains(typed.Message, "player 3") {
		t.Fatalf("message should name the player position: %q", typed.Message)
	}
}

func TestAwardPoints(t *testing.T) {
	p := Player{ID: "p1", Name: "Alice", Score: 3}

	updated, err := p.AwardPoints(4)
	if err != nil {
		t.Fatalf("AwardPoints: %v", err)
	}
	if updated.Score != 7 {
		t.Fatalf("score = %d, want 7", updated.Score)
	}
	if p.Score != 3 {
		t.Fatalf("original mutated: score = %d, want 3", p.Score)
	}
}

func TestAwardPointsNegative(t *testing.T) {
	p := Player{ID: "p1", Name: "Alice", Score: 3}

	_, err := p.AwardPoints(-1)
	if err == nil {
		t.Fatal("expected an error for negative points")
	}
	var typed *apperror.Error
	if !errors.As(err, &typed) || typed.Code != apperror.CodeGameInvalidOperation {
		t.Fatalf("expected code %s, got %v", apperror.CodeGameInvalidOperation, err)
	}
}

func TestRemovePoints(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		points  int
		want    int
		wantErr bool
	}{
		{name: "partial", score: 5, points: 3, want: 2},
		{name: "to zero", score: 5, points: 5, want: 0},
		{name: "below zero", score: 5, points: 6, wantErr: true},
		{name: "negative points", score: 5, points: -1, wantErr: true},
		{name: "zero points", score: 5, points: 0, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Player{ID: "p1", Name: "Alice", Score: tt.score}
			updated, err := p.RemovePoints(tt.points)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("RemovePoints: %v", err)
			}
			if updated.Score != tt.want {
				t.Fatalf("score = %d, want %d", updated.Score, tt.want)
			}
		})
	}
}

func TestRemovePointsErrorNamesPlayerAndScore(t *testing.T) {
	p := Player{ID: "p1", Name: "Carol", Score: 2}

	_, err := p.RemovePoints(9)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Carol") || !strings.Contains(err.Error(), "2") {
		t.Fatalf("error should name the player and their score: %q", err.Error())
	}
}

func TestResetScore(t *testing.T) {
	p := Player{ID: "p1", Name: "Alice", Score: 42}
	if got := p.ResetScore().Score; got != 0 {
		t.Fatalf("score = %d, want 0", got)
	}
}
