package bot

import (
	"github.com/mcoot/nrowgame/internal/dependencies/random"
	"github.com/mcoot/nrowgame/internal/model"
)

// GreedyStrategy completes a winning run when it can, otherwise blocks the
// first opponent (in turn order) who could win next, otherwise falls back
// to a random square
type GreedyStrategy struct {
	fallback *RandomStrategy
}

var _ Strategy = (*GreedyStrategy)(nil)

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(rnd random.Random) *GreedyStrategy {
	return &GreedyStrategy{fallback: NewRandomStrategy(rnd)}
}

// ChoosePosition picks a winning square, then a blocking square, then a random one
func (s *GreedyStrategy) ChoosePosition(game *model.Game) (model.Position, bool) {
	empty := game.Board.EmptyPositions()
	if len(empty) == 0 {
		return model.Position{}, false
	}

	me := game.CurrentPlayer()
	if pos, ok := winningSquare(game.Board, me, empty); ok {
		return pos, true
	}

	for _, opponent := range opponentsInTurnOrder(game) {
		if pos, ok := winningSquare(game.Board, opponent, empty); ok {
			return pos, true
		}
	}

	return s.fallback.ChoosePosition(game)
}

// winningSquare returns the first empty square that would complete a run for player
func winningSquare(board *model.Board, player model.Player, empty []model.Position) (model.Position, bool) {
	for _, pos := range empty {
		if board.WouldWin(pos, player) {
			return pos, true
		}
	}
	return model.Position{}, false
}

// opponentsInTurnOrder lists the other players starting from the next to move
func opponentsInTurnOrder(game *model.Game) []model.Player {
	me := game.CurrentPlayer()
	seen := map[model.Player]bool{me: true}
	var opponents []model.Player
	for i := 1; i < len(game.Players); i++ {
		p := game.Players[(game.CurrentIdx+i)%len(game.Players)]
		if !seen[p] {
			seen[p] = true
			opponents = append(opponents, p)
		}
	}
	return opponents
}
