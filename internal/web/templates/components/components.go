// Package components renders reusable fragments of the game pages.
package components

//go:generate templ generate

import (
	"fmt"
	"slices"

	"github.com/a-h/templ"

	"github.com/mcoot/nrowgame/internal/model"
)

// StatusMessage describes the game using the same wording as turn outcomes
func StatusMessage(g *model.Game) string {
	switch g.State {
	case model.GameStateWon:
		return model.Outcome{Kind: model.OutcomeWin, Player: *g.Winner}.String()
	case model.GameStateDraw:
		return model.Outcome{Kind: model.OutcomeDraw}.String()
	default:
		return model.Outcome{Kind: model.OutcomeNextTurn, Player: g.CurrentPlayer()}.String()
	}
}

func isWinning(g *model.Game, row, col int) bool {
	return slices.Contains(g.WinningCells, model.Position{Row: row, Col: col})
}

func turnURL(id model.GameID) templ.SafeURL {
	return templ.URL(fmt.Sprintf("/games/%s/turns", id))
}

func playLabel(row, col int) string {
	return "Play " + model.Position{Row: row, Col: col}.String()
}
