package game

import (
	"github.com/google/uuid"

	"github.com/Seednode/cluebox/internal/apperror"
)

// Player count bounds for a session.
const (
	MinPlayers = 2
	MaxPlayers = 10
)

// Status is the lifecycle state of a game. It only ever advances
// pending → active → completed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Game is the aggregate root for one session: players, the turn in
// progress, the FIFO profile queue, and the lifecycle status. All mutations
// are pure and return a new Game.
type Game struct {
	ID                   string   `json:"id"`
	Players              []Player `json:"players"`
	CurrentTurn          *Turn    `json:"currentTurn"`
	RemainingProfiles    []string `json:"remainingProfiles"`
	TotalCluesPerProfile int      `json:"totalCluesPerProfile"`
	Status               Status   `json:"status"`
	Category             string   `json:"category,omitempty"`
}

// NewGame creates a pending game from player names, with an empty profile
// queue and all scores at zero. category is optional flavor recorded on the
// session.
func NewGame(playerNames []string, totalCluesPerProfile int, category string) (Game, error) {
	if len(playerNames) < MinPlayers || len(playerNames) > MaxPlayers {
		return Game{}, apperror.NewValidationErrorf(apperror.CodeValidationPlayerCount,
			"players", "player count must be between %d and %d, got %d",
			MinPlayers, MaxPlayers, len(playerNames))
	}
	if totalCluesPerProfile <= 0 {
		return Game{}, apperror.NewValidationErrorf(apperror.CodeValidationOutOfRange,
			"totalCluesPerProfile", "clues per profile must be positive, got %d", totalCluesPerProfile)
	}

	players := make([]Player, 0, len(playerNames))
	for i, name := range playerNames {
		p, err := NewPlayer(name, i)
		if err != nil {
			return Game{}, err
		}
		players = append(players, p)
	}

	return Game{
		ID:                   uuid.NewString(),
		Players:              players,
		TotalCluesPerProfile: totalCluesPerProfile,
		Status:               StatusPending,
		Category:             category,
	}, nil
}

// StartGame transitions a pending game to active, wiring in the profile
// queue and the first turn.
func (g Game) StartGame(profileIDs []string, firstTurn Turn) (Game, error) {
	if g.Status != StatusPending {
		return Game{}, apperror.NewGameErrorf(apperror.CodeGameInvalidTransition,
			"cannot start a game in status %q", g.Status)
	}
	if len(profileIDs) == 0 {
		return Game{}, apperror.NewGameError(apperror.CodeGameEmptyProfileQueue,
			"cannot start a game with no profiles")
	}

	queue := make([]string, len(profileIDs))
	copy(queue, profileIDs)

	g.Status = StatusActive
	g.RemainingProfiles = queue
	g.CurrentTurn = &firstTurn
	return g, nil
}

// EndGame transitions an active game to completed and clears the turn. The
// remaining queue is left untouched so scores can be audited afterwards.
func (g Game) EndGame() (Game, error) {
	if g.Status != StatusActive {
		return Game{}, apperror.NewGameErrorf(apperror.CodeGameInvalidTransition,
			"cannot end a game in status %q", g.Status)
	}
	g.Status = StatusCompleted
	g.CurrentTurn = nil
	return g, nil
}

// UpdateTurn replaces the current turn. Legal only while active.
func (g Game) UpdateTurn(turn *Turn) (Game, error) {
	if g.Status != StatusActive {
		return Game{}, apperror.NewGameErrorf(apperror.CodeGameInvalidTransition,
			"cannot update turn in status %q", g.Status)
	}
	g.CurrentTurn = turn
	return g, nil
}

// UpdatePlayer replaces the player with the given id, preserving slot order
// and every other player. Legal in any status so a final score correction
// can land after the game completes.
func (g Game) UpdatePlayer(playerID string, updated Player) (Game, error) {
	idx := -1
	for i, p := range g.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Game{}, apperror.NewGameErrorf(apperror.CodeGamePlayerNotFound,
			"player %s not found", playerID)
	}

	players := make([]Player, len(g.Players))
	copy(players, g.Players)
	players[idx] = updated

	g.Players = players
	return g, nil
}

// AdvanceProfileQueue drops the head of the remaining profile queue. A
// no-op when the queue is already empty.
func (g Game) AdvanceProfileQueue() Game {
	if len(g.RemainingProfiles) == 0 {
		return g
	}
	rest := make([]string, len(g.RemainingProfiles)-1)
	copy(rest, g.RemainingProfiles[1:])
	g.RemainingProfiles = rest
	return g
}

// HasRemainingProfiles reports whether any profiles are left to play.
func (g Game) HasRemainingProfiles() bool {
	return len(g.RemainingProfiles) > 0
}

// NextProfileID returns the head of the profile queue, or "" when empty.
func (g Game) NextProfileID() string {
	if len(g.RemainingProfiles) == 0 {
		return ""
	}
	return g.RemainingProfiles[0]
}

// FindPlayer returns the player with the given id, or false when absent.
func (g Game) FindPlayer(playerID string) (Player, bool) {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return Player{}, false
}
