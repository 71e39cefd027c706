package response

import (
	"time"

	"github.com/mcoot/nrowgame/internal/model"
)

// Position is a board coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PositionFromModel converts model.Position
func PositionFromModel(p model.Position) Position {
	return Position{Row: p.Row, Col: p.Col}
}

// PositionsFromModel converts a list of positions, never returning nil
func PositionsFromModel(ps []model.Position) []Position {
	result := make([]Position, len(ps))
	for i, p := range ps {
		result[i] = PositionFromModel(p)
	}
	return result
}

// Move is one accepted mark in play order
type Move struct {
	Player string `json:"player"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// Game represents the full state of a game
type Game struct {
	ID            string     `json:"id"`
	State         string     `json:"state"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	WinLength     int        `json:"win_length"`
	Players       []string   `json:"players"`
	CurrentPlayer *string    `json:"current_player"`
	Winner        *string    `json:"winner"`
	WinningCells  []Position `json:"winning_cells"`
	Moves         []Move     `json:"moves"`
	// Board rows hold player IDs, empty strings for empty squares
	Board     [][]string `json:"board"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// GameFromModel converts model.Game to response Game
func GameFromModel(g *model.Game) Game {
	players := make([]string, len(g.Players))
	for i, p := range g.Players {
		players[i] = p.String()
	}

	var current *string
	if !g.IsOver() {
		c := g.CurrentPlayer().String()
		current = &c
	}

	var winner *string
	if g.Winner != nil {
		w := g.Winner.String()
		winner = &w
	}

	moves := make([]Move, len(g.Moves))
	for i, m := range g.Moves {
		moves[i] = Move{Player: m.Player.String(), Row: m.Position.Row, Col: m.Position.Col}
	}

	return Game{
		ID:            string(g.ID),
		State:         string(g.State),
		Width:         g.Board.Width,
		Height:        g.Board.Height,
		WinLength:     g.Board.WinLength,
		Players:       players,
		CurrentPlayer: current,
		Winner:        winner,
		WinningCells:  PositionsFromModel(g.WinningCells),
		Moves:         moves,
		Board:         BoardFromModel(g.Board),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// BoardFromModel renders the grid as rows of player IDs
func BoardFromModel(b *model.Board) [][]string {
	rows := make([][]string, b.Height)
	for r, cells := range b.Rows() {
		rows[r] = make([]string, b.Width)
		for c, cell := range cells {
			if cell != nil {
				rows[r][c] = cell.Player.String()
			}
		}
	}
	return rows
}

// GameList wraps a list of games
type GameList struct {
	Games []Game `json:"games"`
}

// GameListFromModel converts a list of games
func GameListFromModel(games []*model.Game) GameList {
	result := make([]Game, len(games))
	for i, g := range games {
		result[i] = GameFromModel(g)
	}
	return GameList{Games: result}
}

// Outcome is the structured result of a turn
type Outcome struct {
	Kind         string     `json:"kind"`
	Message      string     `json:"message"`
	Position     Position   `json:"position"`
	Player       *string    `json:"player,omitempty"`
	WinningCells []Position `json:"winning_cells,omitempty"`
}

// OutcomeFromModel converts model.Outcome
func OutcomeFromModel(o model.Outcome) Outcome {
	out := Outcome{
		Kind:     string(o.Kind),
		Message:  o.String(),
		Position: PositionFromModel(o.Position),
	}
	if o.Kind == model.OutcomeWin || o.Kind == model.OutcomeNextTurn {
		p := o.Player.String()
		out.Player = &p
	}
	if len(o.WinningCells) > 0 {
		out.WinningCells = PositionsFromModel(o.WinningCells)
	}
	return out
}

// TurnResponse is the response after playing a turn
type TurnResponse struct {
	Outcome Outcome `json:"outcome"`
	Game    Game    `json:"game"`
}

// Cell describes one square
type Cell struct {
	Position
	Empty  bool           `json:"empty"`
	Player *string        `json:"player"`
	Data   model.Metadata `json:"data,omitempty"`
}

// CellFromModel converts a possibly nil cell at pos
func CellFromModel(pos model.Position, c *model.Cell) Cell {
	cell := Cell{Position: PositionFromModel(pos), Empty: c == nil}
	if c != nil {
		p := c.Player.String()
		cell.Player = &p
		cell.Data = c.Data
	}
	return cell
}

// Run lists the positions in winning runs through a square
type Run struct {
	Position
	Winning   bool       `json:"winning"`
	Positions []Position `json:"positions"`
}

// RunFromModel converts the result of Board.ContinuousCells
func RunFromModel(pos model.Position, run []model.Position) Run {
	return Run{
		Position:  PositionFromModel(pos),
		Winning:   len(run) > 0,
		Positions: PositionsFromModel(run),
	}
}

// Suggestion is the bot's proposed move for the current player
type Suggestion struct {
	Player   string   `json:"player"`
	Position Position `json:"position"`
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
