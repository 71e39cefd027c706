package bot

import (
	"github.com/mcoot/nrowgame/internal/dependencies/random"
	"github.com/mcoot/nrowgame/internal/model"
)

// RandomStrategy picks a random empty square
type RandomStrategy struct {
	random random.Random
}

var _ Strategy = (*RandomStrategy)(nil)

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChoosePosition picks a random empty cell on the board
func (s *RandomStrategy) ChoosePosition(game *model.Game) (model.Position, bool) {
	empty := game.Board.EmptyPositions()
	if len(empty) == 0 {
		return model.Position{}, false
	}
	return empty[s.random.Intn(len(empty))], true
}
