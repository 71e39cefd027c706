package model

import "fmt"

// Position identifies a square on the board
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// String renders the position as "(row, col)"
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Tuple returns the position as a [row, col] pair
func (p Position) Tuple() [2]int {
	return [2]int{p.Row, p.Col}
}

// Step returns the position n steps away along dir
func (p Position) Step(dir Direction, n int) Position {
	return Position{Row: p.Row + n*dir.DRow, Col: p.Col + n*dir.DCol}
}

// Direction is a unit step across the grid; each component is -1, 0 or 1
type Direction struct {
	DRow int
	DCol int
}

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	return Direction{DRow: -d.DRow, DCol: -d.DCol}
}

// Validate checks that both components are in {-1, 0, 1} and that the
// direction actually moves
func (d Direction) Validate() error {
	if !unitComponent(d.DRow) || !unitComponent(d.DCol) || d == (Direction{}) {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidDirection, d.DRow, d.DCol)
	}
	return nil
}

func unitComponent(v int) bool {
	return v >= -1 && v <= 1
}

// Axes are the four undirected lines checked for runs: horizontal,
// down-right diagonal, vertical and down-left diagonal
var Axes = [4]Direction{
	{DRow: 0, DCol: 1},
	{DRow: 1, DCol: 1},
	{DRow: 1, DCol: 0},
	{DRow: 1, DCol: -1},
}
