// Package game holds the pure entities of a session: players, the current
// turn, the clue history, and the Game aggregate that ties them together.
// Every mutation validates its preconditions and returns a new value;
// nothing in this package touches storage, clocks, or the network.
package game

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Seednode/cluebox/internal/apperror"
)

// Player is a scoring participant in a session.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// NewPlayer creates a player with a generated id and zero score. index is
// only used to name the offending field when a batch of names is validated.
func NewPlayer(name string, index int) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, apperror.NewValidationErrorf(apperror.CodeValidationEmptyField,
			"name", "player %d has an empty name", index+1)
	}
	return Player{
		ID:    uuid.NewString(),
		Name:  name,
		Score: 0,
	}, nil
}

// AwardPoints returns the player with points added to their score.
func (p Player) AwardPoints(points int) (Player, error) {
	if points < 0 {
		return Player{}, apperror.NewGameErrorf(apperror.CodeGameInvalidOperation,
			"cannot award negative points (%d) to %s", points, p.Name)
	}
	p.Score += points
	return p, nil
}

// RemovePoints returns the player with points subtracted. It fails when
// points is negative or when the removal would drive the score below zero.
func (p Player) RemovePoints(points int) (Player, error) {
	if points < 0 {
		return Player{}, apperror.NewValidationErrorf(apperror.CodeValidationNegativePoints,
			"points", "cannot remove negative points (%d) from %s", points, p.Name)
	}
	if points > p.Score {
		return Player{}, apperror.NewGameErrorf(apperror.CodeGameInvalidOperation,
			"cannot remove %d points from %s: score is %d", points, p.Name, p.Score)
	}
	p.Score -= points
	return p, nil
}

// ResetScore returns the player with a zeroed score.
func (p Player) ResetScore() Player {
	p.Score = 0
	return p
}
