package model

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"
)

// DefaultMaxBoardSide bounds the sides of hosted boards unless configured otherwise
const DefaultMaxBoardSide = 100

// Board is a width x height grid of optional cells
type Board struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	WinLength int     `json:"win_length"` // Minimum run length that wins
	Cells     []*Cell `json:"cells"`      // Row-major: Cells[row*Width+col], nil means empty
}

// NewBoard creates an empty board. winLength must be in (0, max(width, height)].
func NewBoard(width, height, winLength int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, width, height)
	}
	if width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: %dx%d cells overflow int", ErrInvalidDimension, width, height)
	}
	if winLength <= 0 || winLength > max(width, height) {
		return nil, fmt.Errorf("%w: got %d for %dx%d", ErrInvalidWinLength, winLength, width, height)
	}
	return &Board{
		Width:     width,
		Height:    height,
		WinLength: winLength,
		Cells:     make([]*Cell, width*height),
	}, nil
}

// CheckBoardSide rejects a board with either side longer than maxSide.
// A maxSide of 0 or less disables the check.
func CheckBoardSide(width, height, maxSide int) error {
	if maxSide > 0 && (width > maxSide || height > maxSide) {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrBoardTooLarge, width, height, maxSide)
	}
	return nil
}

// IsInBound returns true if the position is within the grid
func (b *Board) IsInBound(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Height && pos.Col >= 0 && pos.Col < b.Width
}

// IsEmpty returns true if no cell occupies the position
func (b *Board) IsEmpty(pos Position) (bool, error) {
	if !b.IsInBound(pos) {
		return false, fmt.Errorf("%w: %s", ErrOutOfBound, pos)
	}
	return b.cellAt(pos) == nil, nil
}

// CanMark returns true if the position is in bound and unoccupied
func (b *Board) CanMark(pos Position) bool {
	return b.IsInBound(pos) && b.cellAt(pos) == nil
}

// Mark places a cell for player at pos. It returns false, leaving the board
// untouched, when the position is out of bound or already occupied.
func (b *Board) Mark(player Player, pos Position, data Metadata) bool {
	if !b.CanMark(pos) {
		return false
	}
	b.Cells[b.index(pos)] = newCell(player, data)
	return true
}

// Get returns the cell at pos, or nil if the square is empty
func (b *Board) Get(pos Position) (*Cell, error) {
	if !b.IsInBound(pos) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBound, pos)
	}
	return b.cellAt(pos), nil
}

// IsFull returns true if every square holds a cell
func (b *Board) IsFull() bool {
	for _, cell := range b.Cells {
		if cell == nil {
			return false
		}
	}
	return true
}

// EmptyCount returns the number of unoccupied squares
func (b *Board) EmptyCount() int {
	count := 0
	for _, cell := range b.Cells {
		if cell == nil {
			count++
		}
	}
	return count
}

// EmptyPositions returns every unoccupied square in row-major order
func (b *Board) EmptyPositions() []Position {
	var empty []Position
	for i, cell := range b.Cells {
		if cell == nil {
			empty = append(empty, Position{Row: i / b.Width, Col: i % b.Width})
		}
	}
	return empty
}

// Rows returns the grid as rows of cells for rendering
func (b *Board) Rows() [][]*Cell {
	rows := make([][]*Cell, b.Height)
	for row := range rows {
		rows[row] = b.Cells[row*b.Width : (row+1)*b.Width : (row+1)*b.Width]
	}
	return rows
}

// Ray yields the positions from start stepping by dir until leaving the grid.
// start itself is the first element when it is in bound.
func (b *Board) Ray(start Position, dir Direction) (iter.Seq[Position], error) {
	if err := dir.Validate(); err != nil {
		return nil, err
	}
	return b.ray(start, dir), nil
}

func (b *Board) ray(start Position, dir Direction) iter.Seq[Position] {
	limit := max(b.Width, b.Height)
	return func(yield func(Position) bool) {
		for i := range limit {
			pos := start.Step(dir, i)
			if !b.IsInBound(pos) || !yield(pos) {
				return
			}
		}
	}
}

// ContinuousCells returns every position belonging to a run of at least
// WinLength cells owned by the player at pos, across all four axes.
// An empty result means pos is not part of a winning run.
func (b *Board) ContinuousCells(pos Position) ([]Position, error) {
	cell, err := b.Get(pos)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptySquare, pos)
	}
	return b.continuousCells(pos, cell.Player), nil
}

func (b *Board) continuousCells(pos Position, owner Player) []Position {
	winning := make(map[Position]struct{})
	for _, axis := range Axes {
		forward := b.walk(pos, axis, owner)
		backward := b.walk(pos, axis.Reverse(), owner)

		// Both walks include pos itself
		if len(forward)+len(backward)-1 < b.WinLength {
			continue
		}
		for _, p := range forward {
			winning[p] = struct{}{}
		}
		for _, p := range backward {
			winning[p] = struct{}{}
		}
	}
	return sortedPositions(winning)
}

// WouldWin reports whether marking pos for player would complete a run of
// at least WinLength. The board is not modified. Occupied and out of bound
// positions never win.
func (b *Board) WouldWin(pos Position, player Player) bool {
	if !b.CanMark(pos) {
		return false
	}
	for _, axis := range Axes {
		back := axis.Reverse()
		run := 1 + b.runLength(pos.Step(axis, 1), axis, player) + b.runLength(pos.Step(back, 1), back, player)
		if run >= b.WinLength {
			return true
		}
	}
	return false
}

// runLength counts consecutive cells owned by owner along dir, starting at start
func (b *Board) runLength(start Position, dir Direction, owner Player) int {
	n := 0
	for pos := range b.ray(start, dir) {
		cell := b.cellAt(pos)
		if cell == nil || cell.Player != owner {
			break
		}
		n++
	}
	return n
}

// walk collects consecutive positions owned by owner along dir, starting at start
func (b *Board) walk(start Position, dir Direction, owner Player) []Position {
	var run []Position
	for pos := range b.ray(start, dir) {
		cell := b.cellAt(pos)
		if cell == nil || cell.Player != owner {
			break
		}
		run = append(run, pos)
	}
	return run
}

// Clone returns a copy of the board. Cells are shared since they are immutable.
func (b *Board) Clone() *Board {
	clone := *b
	clone.Cells = slices.Clone(b.Cells)
	return &clone
}

func (b *Board) cellAt(pos Position) *Cell {
	return b.Cells[b.index(pos)]
}

func (b *Board) index(pos Position) int {
	return pos.Row*b.Width + pos.Col
}

func sortedPositions(set map[Position]struct{}) []Position {
	result := make([]Position, 0, len(set))
	for pos := range set {
		result = append(result, pos)
	}
	slices.SortFunc(result, func(a, b Position) int {
		return cmp.Or(cmp.Compare(a.Row, b.Row), cmp.Compare(a.Col, b.Col))
	})
	return result
}
