// Package bot chooses moves for computer-controlled players.
package bot

import "github.com/mcoot/nrowgame/internal/model"

// Strategy defines how a bot chooses where to mark
type Strategy interface {
	// ChoosePosition selects an empty square for the game's current player.
	// ok is false when the board has no empty squares.
	ChoosePosition(game *model.Game) (pos model.Position, ok bool)
}
