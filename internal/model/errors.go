package model

import "errors"

// Common errors used across the application
var (
	// Construction errors
	ErrInvalidDimension = errors.New("board width and height must be greater than 0")
	ErrBoardTooLarge    = errors.New("board side exceeds the configured maximum")
	ErrInvalidWinLength = errors.New("win length must be greater than 0 and at most max(width, height)")
	ErrEmptyPlayerList  = errors.New("players cannot be empty")

	// Board precondition errors
	ErrOutOfBound       = errors.New("position is out of bound")
	ErrEmptySquare      = errors.New("square is unoccupied")
	ErrInvalidDirection = errors.New("invalid direction")

	// Game errors
	ErrGameNotFound = errors.New("game not found")
)
