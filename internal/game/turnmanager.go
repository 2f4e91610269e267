package game

import (
	"github.com/Seednode/cluebox/internal/profiles"
)

// ClueReveal is the result of advancing a turn by one clue.
type ClueReveal struct {
	Turn  Turn   `json:"turn"`
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// AdvanceToNextClue advances the turn by one clue against the profile's
// clue list and returns the newly visible clue. The profile's clue count is
// the cap, so a profile with fewer clues than the session-wide setting ends
// early rather than running past its list.
func AdvanceToNextClue(turn Turn, profile profiles.Profile) (ClueReveal, error) {
	advanced, err := turn.AdvanceClue(len(profile.Clues))
	if err != nil {
		return ClueReveal{}, err
	}
	idx := advanced.CurrentClueIndex()
	return ClueReveal{
		Turn:  advanced,
		Index: idx,
		Text:  profile.ClueAt(idx),
	}, nil
}

// CurrentClue returns the most recently revealed clue text, or "" with
// ok=false when no clues have been read yet.
func CurrentClue(turn Turn, profile profiles.Profile) (string, bool) {
	if !turn.HasReadClues() {
		return "", false
	}
	return profile.ClueAt(turn.CurrentClueIndex()), true
}

// RevealedClues returns the revealed clue texts, most recent first, so a
// clue feed can render them without re-sorting.
func RevealedClues(turn Turn, profile profiles.Profile) []string {
	clues := make([]string, 0, turn.CluesRead)
	for i := turn.CluesRead - 1; i >= 0; i-- {
		clues = append(clues, profile.ClueAt(i))
	}
	return clues
}

// RevealedClueIndices returns the revealed clue indices, most recent first.
func RevealedClueIndices(turn Turn) []int {
	indices := make([]int, 0, turn.CluesRead)
	for i := turn.CluesRead - 1; i >= 0; i-- {
		indices = append(indices, i)
	}
	return indices
}

// IsFirstClue reports whether exactly one clue has been revealed.
func IsFirstClue(turn Turn) bool {
	return turn.CluesRead == 1
}

// IsLastClue reports whether the revealed clue is the final one.
func IsLastClue(turn Turn, totalClues int) bool {
	return turn.CluesRead == totalClues
}
