// Package session orchestrates one complete game instance: the Game
// aggregate plus the profile data it is played against, in the exact shape
// that gets persisted. It also owns the repository contract and the
// debounced persistence service that writes sessions to durable storage.
package session

import (
	"github.com/Seednode/cluebox/internal/apperror"
	"github.com/Seednode/cluebox/internal/game"
	"github.com/Seednode/cluebox/internal/profiles"
)

// Session is the durable snapshot of a game instance. Mutations follow the
// same pure style as the game package: validate, then return a new value.
type Session struct {
	game.Game

	Profiles            []profiles.Profile `json:"profiles"`
	SelectedProfiles    []string           `json:"selectedProfiles"`
	CurrentProfile      *profiles.Profile  `json:"currentProfile"`
	TotalProfilesCount  int                `json:"totalProfilesCount"`
	NumberOfRounds      int                `json:"numberOfRounds"`
	CurrentRound        int                `json:"currentRound"`
	RoundCategoryMap    []string           `json:"roundCategoryMap,omitempty"`
	RevealedClueHistory game.ClueHistory   `json:"revealedClueHistory"`
}

// New assembles a pending session from a created game, the loaded profile
// data, and the selected profile queue.
func New(g game.Game, loaded []profiles.Profile, selected []string, rounds int) Session {
	return Session{
		Game:               g,
		Profiles:           loaded,
		SelectedProfiles:   selected,
		TotalProfilesCount: len(selected),
		NumberOfRounds:     rounds,
		RoundCategoryMap:   categoryMap(selected, loaded),
	}
}

func categoryMap(selected []string, loaded []profiles.Profile) []string {
	byID := make(map[string]string, len(loaded))
	for _, p := range loaded {
		byID[p.ID] = p.Category
	}
	categories := make([]string, len(selected))
	for i, id := range selected {
		categories[i] = byID[id]
	}
	return categories
}

// ProfileByID returns the loaded profile with the given id.
func (s Session) ProfileByID(id string) (profiles.Profile, bool) {
	for _, p := range s.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return profiles.Profile{}, false
}

// Start transitions the session to active on its first profile.
func (s Session) Start() (Session, error) {
	if len(s.SelectedProfiles) == 0 {
		return Session{}, apperror.NewGameError(apperror.CodeGameEmptyProfileQueue,
			"cannot start a session with no profiles")
	}
	first, ok := s.ProfileByID(s.SelectedProfiles[0])
	if !ok {
		return Session{}, apperror.NewGameErrorf(apperror.CodeGameInvalidOperation,
			"profile %s is selected but not loaded", s.SelectedProfiles[0])
	}

	turn, err := game.NewTurn(first.ID)
	if err != nil {
		return Session{}, err
	}
	g, err := s.Game.StartGame(s.SelectedProfiles, turn)
	if err != nil {
		return Session{}, err
	}

	s.Game = g
	s.CurrentProfile = &first
	s.CurrentRound = 1
	s.RevealedClueHistory = game.ClueHistory{}
	return s, nil
}

// AdvanceClue reveals the next clue of the current profile, records it in
// the history, and stores the advanced turn.
func (s Session) AdvanceClue() (Session, game.ClueReveal, error) {
	turn, profile, err := s.currentTurn()
	if err != nil {
		return Session{}, game.ClueReveal{}, err
	}

	// The session-wide cap applies even when a profile carries extra clues.
	if !turn.CanAdvance(s.TotalCluesPerProfile) {
		return Session{}, game.ClueReveal{}, apperror.NewGameErrorf(apperror.CodeGameMaxCluesReached,
			"all %d clues have been read for profile %s", s.TotalCluesPerProfile, turn.ProfileID)
	}

	reveal, err := game.AdvanceToNextClue(turn, profile)
	if err != nil {
		return Session{}, game.ClueReveal{}, err
	}

	g, err := s.Game.UpdateTurn(&reveal.Turn)
	if err != nil {
		return Session{}, game.ClueReveal{}, err
	}

	s.Game = g
	s.RevealedClueHistory = s.RevealedClueHistory.Record(reveal.Text, reveal.Index)
	return s, reveal, nil
}

// Reveal marks the current profile as revealed.
func (s Session) Reveal() (Session, error) {
	turn, _, err := s.currentTurn()
	if err != nil {
		return Session{}, err
	}
	revealed := turn.Reveal()
	g, err := s.Game.UpdateTurn(&revealed)
	if err != nil {
		return Session{}, err
	}
	s.Game = g
	return s, nil
}

// AwardPoints adds points to the named player's score.
func (s Session) AwardPoints(playerID string, points int) (Session, error) {
	player, ok := s.FindPlayer(playerID)
	if !ok {
		return Session{}, apperror.NewGameErrorf(apperror.CodeGamePlayerNotFound,
			"player %s not found", playerID)
	}
	updated, err := player.AwardPoints(points)
	if err != nil {
		return Session{}, err
	}
	g, err := s.Game.UpdatePlayer(playerID, updated)
	if err != nil {
		return Session{}, err
	}
	s.Game = g
	return s, nil
}

// RemovePoints subtracts points from the named player's score.
func (s Session) RemovePoints(playerID string, points int) (Session, error) {
	player, ok := s.FindPlayer(playerID)
	if !ok {
		return Session{}, apperror.NewGameErrorf(apperror.CodeGamePlayerNotFound,
			"player %s not found", playerID)
	}
	updated, err := player.RemovePoints(points)
	if err != nil {
		return Session{}, err
	}
	g, err := s.Game.UpdatePlayer(playerID, updated)
	if err != nil {
		return Session{}, err
	}
	s.Game = g
	return s, nil
}

// NextProfile advances the queue to the next profile and opens a fresh turn
// and clue history for it. ok is false when the queue is exhausted, which
// means the session should be ended instead.
func (s Session) NextProfile() (Session, bool, error) {
	if s.Game.Status != game.StatusActive {
		return Session{}, false, apperror.NewGameErrorf(apperror.CodeGameInvalidTransition,
			"cannot advance profiles in status %q", s.Game.Status)
	}

	g := s.Game.AdvanceProfileQueue()
	nextID := g.NextProfileID()
	if nextID == "" {
		s.Game = g
		return s, false, nil
	}

	next, ok := s.ProfileByID(nextID)
	if !ok {
		return Session{}, false, apperror.NewGameErrorf(apperror.CodeGameInvalidOperation,
			"profile %s is queued but not loaded", nextID)
	}
	turn, err := game.NewTurn(next.ID)
	if err != nil {
		return Session{}, false, err
	}
	g, err = g.UpdateTurn(&turn)
	if err != nil {
		return Session{}, false, err
	}

	s.Game = g
	s.CurrentProfile = &next
	s.CurrentRound++
	s.RevealedClueHistory = game.ClueHistory{}
	return s, true, nil
}

// End completes the session and clears the in-progress turn and profile.
func (s Session) End() (Session, error) {
	g, err := s.Game.EndGame()
	if err != nil {
		return Session{}, err
	}
	s.Game = g
	s.CurrentProfile = nil
	return s, nil
}

// RefreshLocale swaps in profile data refetched for another display
// language and rebuilds the revealed clue history texts against it, keeping
// the recorded indices.
func (s Session) RefreshLocale(loaded []profiles.Profile) (Session, error) {
	s.Profiles = loaded
	if s.CurrentProfile != nil {
		current, ok := s.ProfileByID(s.CurrentProfile.ID)
		if !ok {
			return Session{}, apperror.NewGameErrorf(apperror.CodeGameInvalidOperation,
				"profile %s missing from refetched data", s.CurrentProfile.ID)
		}
		s.CurrentProfile = &current

		texts := make([]string, len(current.Clues))
		for i := range current.Clues {
			texts[i] = current.ClueAt(i)
		}
		s.RevealedClueHistory = game.RebuildClueHistory(s.RevealedClueHistory.Indices, texts)
	}
	return s, nil
}

func (s Session) currentTurn() (game.Turn, profiles.Profile, error) {
	if s.Game.Status != game.StatusActive || s.Game.CurrentTurn == nil {
		return game.Turn{}, profiles.Profile{}, apperror.NewGameErrorf(apperror.CodeGameInvalidTransition,
			"no turn in progress (status %q)", s.Game.Status)
	}
	if s.CurrentProfile == nil {
		return game.Turn{}, profiles.Profile{}, apperror.NewGameError(apperror.CodeGameInvalidOperation,
			"no current profile")
	}
	return *s.Game.CurrentTurn, *s.CurrentProfile, nil
}
