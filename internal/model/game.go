package model

import (
	"fmt"
	"slices"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateInProgress GameState = "in_progress" // Accepting turns
	GameStateWon        GameState = "won"         // A player completed a run
	GameStateDraw       GameState = "draw"        // Board filled without a run
)

// Move records an accepted mark
type Move struct {
	Player   Player   `json:"player"`
	Position Position `json:"position"`
}

// Game is a single N-in-a-row match. It is not safe for concurrent use;
// callers serialise PlayTurn per game.
type Game struct {
	ID    GameID    `json:"id"`
	State GameState `json:"state"`
	Board *Board    `json:"board"`

	// Turn order is cyclic. A player listed twice takes two turns per cycle.
	Players    []Player `json:"players"`
	CurrentIdx int      `json:"current_idx"`

	Winner       *Player    `json:"winner,omitempty"`
	WinningCells []Position `json:"winning_cells,omitempty"`
	Moves        []Move     `json:"moves"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGame creates a game on a fresh board. The first player in the list moves first.
func NewGame(width, height, winLength int, players []Player) (*Game, error) {
	if len(players) == 0 {
		return nil, ErrEmptyPlayerList
	}
	board, err := NewBoard(width, height, winLength)
	if err != nil {
		return nil, err
	}
	return &Game{
		State:   GameStateInProgress,
		Board:   board,
		Players: slices.Clone(players),
		Moves:   []Move{},
	}, nil
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() Player {
	return g.Players[g.CurrentIdx]
}

// RotatePlayer advances the turn pointer and returns the new current player
func (g *Game) RotatePlayer() Player {
	g.CurrentIdx = (g.CurrentIdx + 1) % len(g.Players)
	return g.CurrentPlayer()
}

// IsOver returns true once the game has been won or drawn
func (g *Game) IsOver() bool {
	return g.State == GameStateWon || g.State == GameStateDraw
}

// PlayTurn marks pos for the current player and advances the game.
// Rejected moves leave the game unchanged and are reported through the
// outcome rather than an error.
func (g *Game) PlayTurn(pos Position) Outcome {
	if g.IsOver() {
		return Outcome{Kind: OutcomeGameOver, Position: pos}
	}

	player := g.CurrentPlayer()
	if !g.Board.Mark(player, pos, nil) {
		return Outcome{Kind: OutcomeInvalid, Position: pos}
	}
	g.Moves = append(g.Moves, Move{Player: player, Position: pos})

	if winning := g.Board.continuousCells(pos, player); len(winning) > 0 {
		g.State = GameStateWon
		g.Winner = &player
		g.WinningCells = winning
		return Outcome{Kind: OutcomeWin, Position: pos, Player: player, WinningCells: winning}
	}

	if g.Board.IsFull() {
		g.State = GameStateDraw
		return Outcome{Kind: OutcomeDraw, Position: pos}
	}

	next := g.RotatePlayer()
	return Outcome{Kind: OutcomeNextTurn, Position: pos, Player: next}
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	clone := *g
	clone.Board = g.Board.Clone()
	clone.Players = slices.Clone(g.Players)
	clone.WinningCells = slices.Clone(g.WinningCells)
	clone.Moves = slices.Clone(g.Moves)
	if g.Winner != nil {
		winner := *g.Winner
		clone.Winner = &winner
	}
	return &clone
}

// OutcomeKind identifies the result of a turn
type OutcomeKind string

const (
	OutcomeInvalid  OutcomeKind = "invalid"   // Out of bound or occupied, nothing changed
	OutcomeWin      OutcomeKind = "win"       // Mover completed a run
	OutcomeDraw     OutcomeKind = "draw"      // Board is full
	OutcomeNextTurn OutcomeKind = "next_turn" // Turn passed to Player
	OutcomeGameOver OutcomeKind = "game_over" // Game already finished, nothing changed
)

// Outcome is the structured result of PlayTurn
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	Position Position    `json:"position"`

	// Player is the winner for OutcomeWin and the next player for OutcomeNextTurn
	Player Player `json:"player"`

	WinningCells []Position `json:"winning_cells,omitempty"`
}

// IsTerminal returns true if the outcome ended the game
func (o Outcome) IsTerminal() bool {
	return o.Kind == OutcomeWin || o.Kind == OutcomeDraw
}

// String renders the outcome as a player-facing message
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeInvalid:
		return fmt.Sprintf("Invalid move %s.", o.Position)
	case OutcomeWin:
		return fmt.Sprintf("Player %s wins!", o.Player)
	case OutcomeDraw:
		return "It's a draw."
	case OutcomeNextTurn:
		return fmt.Sprintf("Player %s's turn.", o.Player)
	case OutcomeGameOver:
		return "Game is already over."
	default:
		return string(o.Kind)
	}
}
