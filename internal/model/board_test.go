package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type BoardSuite struct {
	suite.Suite
	bob Player
	amy Player
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) SetupTest() {
	s.bob = NewPlayer("Bob")
	s.amy = NewPlayer("Amy")
}

// createBoard builds a board from rows where 'b' is Bob, 'a' is Amy and '.' is empty
func (s *BoardSuite) createBoard(winLength int, rows ...string) *Board {
	board, err := NewBoard(len(rows[0]), len(rows), winLength)
	s.Require().NoError(err)
	for row, line := range rows {
		for col, ch := range line {
			pos := Position{Row: row, Col: col}
			switch ch {
			case 'b':
				s.Require().True(board.Mark(s.bob, pos, nil))
			case 'a':
				s.Require().True(board.Mark(s.amy, pos, nil))
			}
		}
	}
	return board
}

func positions(pairs ...[2]int) []Position {
	result := make([]Position, len(pairs))
	for i, p := range pairs {
		result[i] = Position{Row: p[0], Col: p[1]}
	}
	return result
}

// Construction tests

func (s *BoardSuite) TestNewBoardSucceeds() {
	board, err := NewBoard(5, 4, 3)
	s.Require().NoError(err)

	s.Equal(5, board.Width)
	s.Equal(4, board.Height)
	s.Equal(3, board.WinLength)
	s.Len(board.Rows(), 4)
	s.Len(board.Rows()[0], 5)
	s.Equal(20, board.EmptyCount())
}

func (s *BoardSuite) TestNewBoardRejectsBadDimensions() {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {3, -1}} {
		_, err := NewBoard(dims[0], dims[1], 1)
		s.ErrorIs(err, ErrInvalidDimension, "dims %v", dims)
	}
}

func (s *BoardSuite) TestNewBoardRejectsOverflowingDimensions() {
	for _, dims := range [][2]int{{1 << 40, 1 << 40}, {math.MaxInt, 2}, {2, math.MaxInt}} {
		board, err := NewBoard(dims[0], dims[1], 1)
		s.ErrorIs(err, ErrInvalidDimension, "dims %v", dims)
		s.Nil(board)
	}
}

func (s *BoardSuite) TestCheckBoardSide() {
	s.NoError(CheckBoardSide(100, 100, 100))
	s.NoError(CheckBoardSide(1<<40, 1<<40, 0))
	s.ErrorIs(CheckBoardSide(101, 3, 100), ErrBoardTooLarge)
	s.ErrorIs(CheckBoardSide(3, 101, 100), ErrBoardTooLarge)
	s.ErrorIs(CheckBoardSide(1<<40, 1<<40, DefaultMaxBoardSide), ErrBoardTooLarge)
}

func (s *BoardSuite) TestNewBoardRejectsBadWinLength() {
	_, err := NewBoard(5, 4, 0)
	s.ErrorIs(err, ErrInvalidWinLength)

	_, err = NewBoard(5, 4, 6)
	s.ErrorIs(err, ErrInvalidWinLength)

	// Longest dimension is the upper bound
	_, err = NewBoard(2, 7, 7)
	s.NoError(err)
}

// Bounds tests

func (s *BoardSuite) TestIsInBound() {
	board, _ := NewBoard(3, 2, 2)

	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			s.True(board.IsInBound(Position{Row: row, Col: col}))
		}
	}
	s.False(board.IsInBound(Position{Row: -1, Col: 0}))
	s.False(board.IsInBound(Position{Row: 0, Col: -1}))
	s.False(board.IsInBound(Position{Row: 2, Col: 0}))
	s.False(board.IsInBound(Position{Row: 0, Col: 3}))
	s.False(board.IsInBound(Position{Row: 10, Col: 10}))
}

func (s *BoardSuite) TestSingleSquareBoard() {
	board, err := NewBoard(1, 1, 1)
	s.Require().NoError(err)

	s.True(board.IsInBound(Position{Row: 0, Col: 0}))
	s.False(board.IsInBound(Position{Row: -1, Col: 0}))
	s.True(board.Mark(s.bob, Position{Row: 0, Col: 0}, nil))
	s.True(board.IsFull())

	cells, err := board.ContinuousCells(Position{Row: 0, Col: 0})
	s.Require().NoError(err)
	s.Equal(positions([2]int{0, 0}), cells)
}

// Marking tests

func (s *BoardSuite) TestMarkStoresPlayerAndMetadata() {
	board, _ := NewBoard(5, 5, 3)
	data := Metadata{"color": []int{1, 1, 1}}

	s.True(board.Mark(s.bob, Position{Row: 0, Col: 0}, data))

	cell, err := board.Get(Position{Row: 0, Col: 0})
	s.Require().NoError(err)
	s.Require().NotNil(cell)
	s.Equal(s.bob, cell.Player)
	s.Equal(data, cell.Data)
}

func (s *BoardSuite) TestMarkCopiesMetadata() {
	board, _ := NewBoard(2, 2, 2)
	data := Metadata{"move": 1}

	board.Mark(s.bob, Position{Row: 0, Col: 0}, data)
	data["move"] = 99

	cell, _ := board.Get(Position{Row: 0, Col: 0})
	s.Equal(1, cell.Data["move"])
}

func (s *BoardSuite) TestMarkIsRejectedWhenOccupied() {
	board, _ := NewBoard(5, 5, 3)
	pos := Position{Row: 2, Col: 2}

	s.True(board.CanMark(pos))
	s.True(board.Mark(s.bob, pos, nil))
	s.False(board.CanMark(pos))
	s.False(board.Mark(s.amy, pos, nil))
	s.False(board.Mark(s.bob, pos, nil))

	cell, _ := board.Get(pos)
	s.Equal(s.bob, cell.Player)
	s.Equal(24, board.EmptyCount())
}

func (s *BoardSuite) TestMarkIsRejectedWhenOutOfBound() {
	board, _ := NewBoard(5, 5, 3)

	s.False(board.CanMark(Position{Row: 6, Col: 0}))
	s.False(board.CanMark(Position{Row: -1, Col: 0}))
	s.False(board.Mark(s.bob, Position{Row: 5, Col: 5}, nil))
	s.Equal(25, board.EmptyCount())
}

// Get / IsEmpty tests

func (s *BoardSuite) TestGetEmptySquareReturnsNil() {
	board, _ := NewBoard(3, 3, 3)

	cell, err := board.Get(Position{Row: 1, Col: 1})
	s.Require().NoError(err)
	s.Nil(cell)
}

func (s *BoardSuite) TestGetOutOfBoundFails() {
	board, _ := NewBoard(3, 3, 3)

	_, err := board.Get(Position{Row: 3, Col: 0})
	s.ErrorIs(err, ErrOutOfBound)

	_, err = board.Get(Position{Row: 0, Col: -1})
	s.ErrorIs(err, ErrOutOfBound)
}

func (s *BoardSuite) TestIsEmpty() {
	board := s.createBoard(3,
		"b..",
		"...",
		"...",
	)

	empty, err := board.IsEmpty(Position{Row: 0, Col: 0})
	s.Require().NoError(err)
	s.False(empty)

	empty, err = board.IsEmpty(Position{Row: 1, Col: 1})
	s.Require().NoError(err)
	s.True(empty)

	_, err = board.IsEmpty(Position{Row: 3, Col: 3})
	s.ErrorIs(err, ErrOutOfBound)
}

// IsFull tests

func (s *BoardSuite) TestIsFull() {
	board, _ := NewBoard(4, 4, 3)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			s.False(board.IsFull())
			board.Mark(s.bob, Position{Row: row, Col: col}, nil)
		}
	}
	s.True(board.IsFull())
	s.Equal(0, board.EmptyCount())
}

// Ray tests

func (s *BoardSuite) TestRayStopsAtEdge() {
	board, _ := NewBoard(4, 3, 3)

	ray, err := board.Ray(Position{Row: 0, Col: 1}, Direction{DRow: 1, DCol: 1})
	s.Require().NoError(err)

	var got []Position
	for pos := range ray {
		got = append(got, pos)
	}
	s.Equal(positions([2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3}), got)
}

func (s *BoardSuite) TestRayBackwards() {
	board, _ := NewBoard(5, 5, 3)

	ray, err := board.Ray(Position{Row: 2, Col: 2}, Direction{DRow: 0, DCol: -1})
	s.Require().NoError(err)

	var got []Position
	for pos := range ray {
		got = append(got, pos)
	}
	s.Equal(positions([2]int{2, 2}, [2]int{2, 1}, [2]int{2, 0}), got)
}

func (s *BoardSuite) TestRayCanStopEarly() {
	board, _ := NewBoard(5, 5, 3)

	ray, _ := board.Ray(Position{Row: 0, Col: 0}, Direction{DRow: 1, DCol: 0})
	count := 0
	for range ray {
		count++
		if count == 2 {
			break
		}
	}
	s.Equal(2, count)
}

func (s *BoardSuite) TestRayRejectsInvalidDirection() {
	board, _ := NewBoard(5, 5, 3)

	_, err := board.Ray(Position{Row: 0, Col: 0}, Direction{DRow: 2, DCol: 0})
	s.ErrorIs(err, ErrInvalidDirection)

	_, err = board.Ray(Position{Row: 0, Col: 0}, Direction{DRow: 0, DCol: -3})
	s.ErrorIs(err, ErrInvalidDirection)

	_, err = board.Ray(Position{Row: 0, Col: 0}, Direction{})
	s.ErrorIs(err, ErrInvalidDirection)
}

// ContinuousCells tests

func (s *BoardSuite) TestContinuousCellsAcrossAllAxes() {
	board := s.createBoard(2,
		"bbbb",
		".b.b",
		"..bb",
		"bbbb",
	)

	cells, err := board.ContinuousCells(Position{Row: 2, Col: 2})
	s.Require().NoError(err)

	s.Len(cells, 8)
	s.ElementsMatch(positions(
		[2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3},
		[2]int{3, 1}, [2]int{1, 3}, [2]int{2, 3}, [2]int{3, 2},
	), cells)
}

func (s *BoardSuite) TestContinuousCellsHorizontal() {
	board := s.createBoard(3,
		".....",
		"abbba",
		".....",
	)

	cells, err := board.ContinuousCells(Position{Row: 1, Col: 1})
	s.Require().NoError(err)
	s.Equal(positions([2]int{1, 1}, [2]int{1, 2}, [2]int{1, 3}), cells)
}

func (s *BoardSuite) TestContinuousCellsVertical() {
	board := s.createBoard(3,
		".b.",
		".b.",
		".b.",
		".a.",
	)

	cells, err := board.ContinuousCells(Position{Row: 2, Col: 1})
	s.Require().NoError(err)
	s.Equal(positions([2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1}), cells)
}

func (s *BoardSuite) TestContinuousCellsAntiDiagonal() {
	board := s.createBoard(3,
		"...b",
		"..b.",
		".b..",
		"....",
	)

	cells, err := board.ContinuousCells(Position{Row: 0, Col: 3})
	s.Require().NoError(err)
	s.Equal(positions([2]int{0, 3}, [2]int{1, 2}, [2]int{2, 1}), cells)
}

func (s *BoardSuite) TestContinuousCellsShortRunIsEmpty() {
	board := s.createBoard(3,
		"bb.",
		"ab.",
		"a..",
	)

	cells, err := board.ContinuousCells(Position{Row: 0, Col: 0})
	s.Require().NoError(err)
	s.Empty(cells)
}

func (s *BoardSuite) TestContinuousCellsStopsAtOpponent() {
	board := s.createBoard(4,
		"bbabb",
	)

	cells, err := board.ContinuousCells(Position{Row: 0, Col: 0})
	s.Require().NoError(err)
	s.Empty(cells)
}

func (s *BoardSuite) TestContinuousCellsFromMiddleOfRun() {
	board := s.createBoard(5,
		"bbbbb",
	)

	cells, err := board.ContinuousCells(Position{Row: 0, Col: 2})
	s.Require().NoError(err)
	s.Len(cells, 5)
}

func (s *BoardSuite) TestContinuousCellsOnlyCountsRunsThroughPosition() {
	board := s.createBoard(3,
		"bbb",
		"...",
		"b..",
	)

	cells, err := board.ContinuousCells(Position{Row: 2, Col: 0})
	s.Require().NoError(err)
	s.Empty(cells)
}

func (s *BoardSuite) TestContinuousCellsSizeIsZeroOrAtLeastWinLength() {
	board := s.createBoard(3,
		"bab.a",
		"abbab",
		"bbaab",
		"aab.b",
	)

	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			pos := Position{Row: row, Col: col}
			if empty, _ := board.IsEmpty(pos); empty {
				continue
			}
			cells, err := board.ContinuousCells(pos)
			s.Require().NoError(err)
			if len(cells) > 0 {
				s.GreaterOrEqual(len(cells), board.WinLength, "at %s", pos)
				s.Contains(cells, pos)
			}
		}
	}
}

func (s *BoardSuite) TestContinuousCellsOnEmptySquareFails() {
	board, _ := NewBoard(3, 3, 3)

	_, err := board.ContinuousCells(Position{Row: 1, Col: 1})
	s.ErrorIs(err, ErrEmptySquare)

	_, err = board.ContinuousCells(Position{Row: 5, Col: 1})
	s.ErrorIs(err, ErrOutOfBound)
}

// WouldWin tests

func (s *BoardSuite) TestWouldWinJoinsRunsOnBothSides() {
	board := s.createBoard(5,
		"bb.bb",
		".....",
	)

	s.True(board.WouldWin(Position{Row: 0, Col: 2}, s.bob))
	s.False(board.WouldWin(Position{Row: 0, Col: 2}, s.amy))
	s.False(board.WouldWin(Position{Row: 1, Col: 2}, s.bob))
}

func (s *BoardSuite) TestWouldWinOnDiagonals() {
	board := s.createBoard(3,
		"b.a",
		".a.",
		"..b",
	)

	s.True(board.WouldWin(Position{Row: 2, Col: 0}, s.amy))
	s.False(board.WouldWin(Position{Row: 2, Col: 0}, s.bob))
}

func (s *BoardSuite) TestWouldWinIgnoresUnmarkableSquares() {
	board := s.createBoard(2,
		"bb",
		"..",
	)

	s.False(board.WouldWin(Position{Row: 0, Col: 1}, s.bob))
	s.False(board.WouldWin(Position{Row: 0, Col: 2}, s.bob))
	s.False(board.WouldWin(Position{Row: -1, Col: 0}, s.bob))
}

func (s *BoardSuite) TestWouldWinWithSingleSquareRun() {
	board, _ := NewBoard(3, 3, 1)
	s.True(board.WouldWin(Position{Row: 1, Col: 1}, s.bob))
}

func (s *BoardSuite) TestWouldWinAgreesWithMarking() {
	board := s.createBoard(3,
		"bb.a",
		"a.b.",
		".ab.",
		"b..a",
	)
	before := board.EmptyCount()

	for _, pos := range board.EmptyPositions() {
		for _, player := range []Player{s.bob, s.amy} {
			trial := board.Clone()
			s.Require().True(trial.Mark(player, pos, nil))
			run, err := trial.ContinuousCells(pos)
			s.Require().NoError(err)
			s.Equal(len(run) > 0, board.WouldWin(pos, player), "%s at %s", player, pos)
		}
	}
	s.Equal(before, board.EmptyCount())
}

// Clone tests

func (s *BoardSuite) TestCloneIsIndependent() {
	board := s.createBoard(3, "b..", "...", "...")

	clone := board.Clone()
	clone.Mark(s.amy, Position{Row: 1, Col: 1}, nil)

	s.True(board.CanMark(Position{Row: 1, Col: 1}))
	s.False(clone.CanMark(Position{Row: 1, Col: 1}))
}
