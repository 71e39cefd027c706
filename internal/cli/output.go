package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/nrowgame/internal/api/response"
)

// Output formats results as text or JSON
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output writing to w
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
		return
	}

	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.GameList:
		o.printGameList(v)
	case response.TurnResponse:
		o.printTurn(v)
	case response.Cell:
		o.printCell(v)
	case response.Run:
		o.printRun(v)
	case response.Suggestion:
		fmt.Fprintf(o.w, "Suggested move for %s: (%d, %d)\n", v.Player, v.Position.Row, v.Position.Col)
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		o.printJSON(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
		return
	}
	fmt.Fprintln(o.w, msg)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	fmt.Fprintf(o.w, "State: %s\n", g.State)
	fmt.Fprintf(o.w, "Board: %dx%d, %d in a row\n", g.Width, g.Height, g.WinLength)
	fmt.Fprintf(o.w, "Players: %s\n", strings.Join(g.Players, ", "))
	if g.CurrentPlayer != nil {
		fmt.Fprintf(o.w, "Current player: %s\n", *g.CurrentPlayer)
	}
	if g.Winner != nil {
		fmt.Fprintf(o.w, "Winner: %s\n", *g.Winner)
	}
	fmt.Fprintln(o.w)
	printBoard(o.w, g.Board, g.WinningCells)
}

func (o *Output) printGameList(l response.GameList) {
	if len(l.Games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for _, g := range l.Games {
		fmt.Fprintf(o.w, "%s  %-11s  %dx%d/%d  %s\n",
			g.ID, g.State, g.Width, g.Height, g.WinLength, strings.Join(g.Players, ","))
	}
}

func (o *Output) printTurn(t response.TurnResponse) {
	fmt.Fprintln(o.w, t.Outcome.Message)
	fmt.Fprintln(o.w)
	printBoard(o.w, t.Game.Board, t.Game.WinningCells)
}

func (o *Output) printCell(c response.Cell) {
	if c.Empty {
		fmt.Fprintf(o.w, "(%d, %d): empty\n", c.Row, c.Col)
		return
	}
	fmt.Fprintf(o.w, "(%d, %d): %s\n", c.Row, c.Col, *c.Player)
}

func (o *Output) printRun(r response.Run) {
	if !r.Winning {
		fmt.Fprintf(o.w, "(%d, %d) is not part of a winning run\n", r.Row, r.Col)
		return
	}
	parts := make([]string, len(r.Positions))
	for i, p := range r.Positions {
		parts[i] = fmt.Sprintf("(%d, %d)", p.Row, p.Col)
	}
	fmt.Fprintf(o.w, "Winning run through (%d, %d): %s\n", r.Row, r.Col, strings.Join(parts, " "))
}

// printBoard draws the grid with the first letter of each player's ID.
// Winning squares are upper case and wrapped in brackets.
func printBoard(w io.Writer, board [][]string, winning []response.Position) {
	if len(board) == 0 {
		return
	}
	highlight := make(map[response.Position]bool, len(winning))
	for _, p := range winning {
		highlight[p] = true
	}

	width := len(board[0])
	fmt.Fprint(w, "    ")
	for col := range width {
		fmt.Fprintf(w, "%3d", col)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "   +%s+\n", strings.Repeat("---", width))

	for row, cells := range board {
		fmt.Fprintf(w, "%3d|", row)
		for col, cell := range cells {
			mark := "."
			if cell != "" {
				mark = string([]rune(cell)[0])
			}
			if highlight[response.Position{Row: row, Col: col}] {
				fmt.Fprintf(w, "[%s]", strings.ToUpper(mark))
			} else {
				fmt.Fprintf(w, " %s ", mark)
			}
		}
		fmt.Fprintln(w, "|")
	}
	fmt.Fprintf(w, "   +%s+\n", strings.Repeat("---", width))
}
