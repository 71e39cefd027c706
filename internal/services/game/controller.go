package game

import (
	"context"
	"log/slog"

	"github.com/mcoot/nrowgame/internal/dependencies/clock"
	"github.com/mcoot/nrowgame/internal/dependencies/random"
	"github.com/mcoot/nrowgame/internal/model"
	"github.com/mcoot/nrowgame/internal/services/bot"
	"github.com/mcoot/nrowgame/internal/storage"
)

const gameIDLength = 12

// CreateGameParams describes a new game
type CreateGameParams struct {
	Width     int
	Height    int
	WinLength int
	Players   []model.Player
}

// Controller hosts stored games and applies turns to them
type Controller struct {
	storage  storage.Storage
	strategy bot.Strategy
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger

	maxBoardSide int
}

// NewController creates a new game Controller. New games may not have a
// side longer than maxBoardSide; 0 or less lifts the limit.
func NewController(
	storage storage.Storage,
	strategy bot.Strategy,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	maxBoardSide int,
) *Controller {
	return &Controller{
		storage:      storage,
		strategy:     strategy,
		clock:        clock,
		random:       random,
		logger:       logger,
		maxBoardSide: maxBoardSide,
	}
}

// CreateGame builds and stores a new game. The first player moves first.
func (c *Controller) CreateGame(ctx context.Context, params CreateGameParams) (*model.Game, error) {
	if err := model.CheckBoardSide(params.Width, params.Height, c.maxBoardSide); err != nil {
		return nil, err
	}
	game, err := model.NewGame(params.Width, params.Height, params.WinLength, params.Players)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game.ID = model.GameID(c.random.String(gameIDLength, random.IDAlphabet))
	game.CreatedAt = now
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("width", params.Width),
		slog.Int("height", params.Height),
		slog.Int("win_length", params.WinLength),
		slog.Int("players", len(params.Players)),
	)
	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// ListGames returns every stored game, newest first
func (c *Controller) ListGames(ctx context.Context) ([]*model.Game, error) {
	return c.storage.ListGames(ctx)
}

// DeleteGame removes a game. Deleting an unknown game reports ErrGameNotFound.
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}
	c.logger.Info("game deleted", slog.String("game_id", string(gameID)))
	return nil
}

// PlayTurn marks pos for the game's current player. Rejected moves are
// reported through the outcome, not the error.
func (c *Controller) PlayTurn(ctx context.Context, gameID model.GameID, pos model.Position) (model.Outcome, *model.Game, error) {
	var outcome model.Outcome
	game, err := c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		outcome = g.PlayTurn(pos)
		if outcome.Kind != model.OutcomeInvalid && outcome.Kind != model.OutcomeGameOver {
			g.UpdatedAt = c.clock.Now()
		}
		return nil
	})
	if err != nil {
		return model.Outcome{}, nil, err
	}

	c.logOutcome(gameID, outcome)
	return outcome, game, nil
}

// PlayBotTurn lets the configured strategy choose and play the current player's move
func (c *Controller) PlayBotTurn(ctx context.Context, gameID model.GameID) (model.Outcome, *model.Game, error) {
	pos, ok, err := c.SuggestMove(ctx, gameID)
	if err != nil {
		return model.Outcome{}, nil, err
	}
	if !ok {
		game, err := c.storage.GetGame(ctx, gameID)
		if err != nil {
			return model.Outcome{}, nil, err
		}
		return model.Outcome{Kind: model.OutcomeGameOver}, game, nil
	}
	return c.PlayTurn(ctx, gameID, pos)
}

// SuggestMove asks the strategy for the current player's move. ok is false
// when the game is over or the board has no empty squares.
func (c *Controller) SuggestMove(ctx context.Context, gameID model.GameID) (model.Position, bool, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return model.Position{}, false, err
	}
	if game.IsOver() {
		return model.Position{}, false, nil
	}
	pos, ok := c.strategy.ChoosePosition(game)
	return pos, ok, nil
}

// GetCell returns the cell at pos, nil for an empty square
func (c *Controller) GetCell(ctx context.Context, gameID model.GameID, pos model.Position) (*model.Cell, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return game.Board.Get(pos)
}

// WinningRun returns the positions in winning runs through pos
func (c *Controller) WinningRun(ctx context.Context, gameID model.GameID, pos model.Position) ([]model.Position, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return game.Board.ContinuousCells(pos)
}

func (c *Controller) logOutcome(gameID model.GameID, outcome model.Outcome) {
	attrs := []any{
		slog.String("game_id", string(gameID)),
		slog.String("outcome", string(outcome.Kind)),
		slog.String("position", outcome.Position.String()),
	}

	switch outcome.Kind {
	case model.OutcomeWin:
		c.logger.Info("game won", append(attrs, slog.String("winner", outcome.Player.String()))...)
	case model.OutcomeDraw:
		c.logger.Info("game drawn", attrs...)
	case model.OutcomeInvalid, model.OutcomeGameOver:
		c.logger.Debug("move rejected", attrs...)
	default:
		c.logger.Debug("turn played", attrs...)
	}
}
