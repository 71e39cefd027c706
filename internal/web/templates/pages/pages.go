// Package pages composes full HTML pages from layout and components.
package pages

//go:generate templ generate

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/mcoot/nrowgame/internal/model"
	"github.com/mcoot/nrowgame/internal/web/templates/components"
	"github.com/mcoot/nrowgame/internal/web/templates/layout"
)

// HomeData is the data for the game list page
type HomeData struct {
	layout.PageData
	Games []*model.Game
}

// GameData is the data for a single game page
type GameData struct {
	layout.PageData
	Game *model.Game
}

func gameURL(id model.GameID) templ.SafeURL {
	return templ.URL(fmt.Sprintf("/games/%s", id))
}

func botTurnURL(id model.GameID) templ.SafeURL {
	return templ.URL(fmt.Sprintf("/games/%s/bot-turn", id))
}

// summary is the one-line description of a game in the list
func summary(g *model.Game) string {
	return fmt.Sprintf("%dx%d, %d in a row: %s",
		g.Board.Width, g.Board.Height, g.Board.WinLength, components.StatusMessage(g))
}
