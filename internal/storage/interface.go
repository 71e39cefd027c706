package storage

import (
	"context"

	"github.com/mcoot/nrowgame/internal/model"
)

// UpdateFunc mutates a game in place. Returning an error aborts the update
// and leaves the stored game untouched.
type UpdateFunc func(game *model.Game) error

// Storage defines the interface for game persistence
type Storage interface {
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)

	// DeleteGame removes a game in a single step, reporting
	// model.ErrGameNotFound when nothing was stored under id
	DeleteGame(ctx context.Context, id model.GameID) error

	// ListGames returns all stored games, newest first
	ListGames(ctx context.Context) ([]*model.Game, error)

	// UpdateGame loads a game, applies fn and stores the result atomically
	// with respect to other updates of the same game
	UpdateGame(ctx context.Context, id model.GameID, fn UpdateFunc) (*model.Game, error)

	Close() error
}
