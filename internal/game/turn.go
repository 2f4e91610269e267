package game

import (
	"strings"

	"github.com/Seednode/cluebox/internal/apperror"
)

// Turn is the clue-reveal progress for the profile currently being played.
// CluesRead only ever increases, and Revealed is a one-way flag.
type Turn struct {
	ProfileID string `json:"profileId"`
	CluesRead int    `json:"cluesRead"`
	Revealed  bool   `json:"revealed"`
}

// NewTurn creates a turn for profileID with no clues read.
func NewTurn(profileID string) (Turn, error) {
	if strings.TrimSpace(profileID) == "" {
		return Turn{}, apperror.NewValidationError(apperror.CodeValidationEmptyField,
			"profileId", "turn requires a profile id")
	}
	return Turn{ProfileID: profileID}, nil
}

// AdvanceClue returns the turn with one more clue read. maxClues is the
// per-profile cap; advancing past it fails with MaxCluesReached.
func (t Turn) AdvanceClue(maxClues int) (Turn, error) {
	if t.CluesRead >= maxClues {
		return Turn{}, apperror.NewGameErrorf(apperror.CodeGameMaxCluesReached,
			"all %d clues have been read for profile %s", maxClues, t.ProfileID)
	}
	t.CluesRead++
	return t, nil
}

// Reveal marks the profile as revealed. Legal at any progress and
// idempotent: revealing an already revealed turn is not an error.
func (t Turn) Reveal() Turn {
	t.Revealed = true
	return t
}

// HasReadClues reports whether at least one clue has been read.
func (t Turn) HasReadClues() bool {
	return t.CluesRead > 0
}

// HasReadAllClues reports whether the turn has exhausted the clue cap.
func (t Turn) HasReadAllClues(maxClues int) bool {
	return t.CluesRead >= maxClues
}

// CanAdvance reports whether another clue may be read.
func (t Turn) CanAdvance(maxClues int) bool {
	return t.CluesRead < maxClues
}

// CurrentClueIndex is the zero-based index of the most recently read clue,
// or -1 when none have been read.
func (t Turn) CurrentClueIndex() int {
	return t.CluesRead - 1
}
