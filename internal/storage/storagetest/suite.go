// Package storagetest holds the behaviour every storage backend must share.
// Backends embed Suite and assign Storage in their SetupTest.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/nrowgame/internal/model"
	"github.com/mcoot/nrowgame/internal/storage"
)

type Suite struct {
	suite.Suite
	Storage storage.Storage
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// NewGame builds a 5x5 two player game created at baseTime plus offset
func (s *Suite) NewGame(id string, offset time.Duration) *model.Game {
	game, err := model.NewGame(5, 5, 3, model.NewPlayers("Bob", "Amy"))
	s.Require().NoError(err)
	game.ID = model.GameID(id)
	game.CreatedAt = baseTime.Add(offset)
	game.UpdatedAt = game.CreatedAt
	return game
}

func (s *Suite) save(game *model.Game) {
	s.Require().NoError(s.Storage.SaveGame(context.Background(), game))
}

// Game tests

func (s *Suite) TestSaveAndGetGame() {
	ctx := context.Background()
	game := s.NewGame("GAME00000001", 0)
	game.PlayTurn(model.Position{Row: 1, Col: 1})
	s.save(game)

	retrieved, err := s.Storage.GetGame(ctx, "GAME00000001")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.State, retrieved.State)
	s.Equal(game.Players, retrieved.Players)
	s.Equal(game.Moves, retrieved.Moves)
	s.Equal(game.Board.Cells, retrieved.Board.Cells)
	s.Equal(game.Board.WinLength, retrieved.Board.WinLength)
	s.True(game.CreatedAt.Equal(retrieved.CreatedAt))
	s.Equal(model.NewPlayer("Amy"), retrieved.CurrentPlayer())
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Storage.GetGame(context.Background(), "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestSaveGameOverwrites() {
	ctx := context.Background()
	game := s.NewGame("GAME00000001", 0)
	s.save(game)

	game.PlayTurn(model.Position{Row: 0, Col: 0})
	s.save(game)

	retrieved, err := s.Storage.GetGame(ctx, "GAME00000001")
	s.Require().NoError(err)
	s.Len(retrieved.Moves, 1)
}

func (s *Suite) TestRetrievedGameIsDetached() {
	ctx := context.Background()
	s.save(s.NewGame("GAME00000001", 0))

	first, err := s.Storage.GetGame(ctx, "GAME00000001")
	s.Require().NoError(err)
	first.PlayTurn(model.Position{Row: 2, Col: 2})

	second, err := s.Storage.GetGame(ctx, "GAME00000001")
	s.Require().NoError(err)
	s.Empty(second.Moves)
	s.True(second.Board.CanMark(model.Position{Row: 2, Col: 2}))
}

func (s *Suite) TestDeleteGame() {
	ctx := context.Background()
	s.save(s.NewGame("GAME00000001", 0))

	s.Require().NoError(s.Storage.DeleteGame(ctx, "GAME00000001"))

	_, err := s.Storage.GetGame(ctx, "GAME00000001")
	s.ErrorIs(err, model.ErrGameNotFound)

	games, err := s.Storage.ListGames(ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *Suite) TestDeleteMissingGameReportsNotFound() {
	s.ErrorIs(s.Storage.DeleteGame(context.Background(), "nonexistent"), model.ErrGameNotFound)
}

func (s *Suite) TestDeleteGameTwice() {
	ctx := context.Background()
	s.save(s.NewGame("GAME00000001", 0))
	s.save(s.NewGame("GAME00000002", time.Minute))

	s.Require().NoError(s.Storage.DeleteGame(ctx, "GAME00000001"))
	s.ErrorIs(s.Storage.DeleteGame(ctx, "GAME00000001"), model.ErrGameNotFound)

	games, err := s.Storage.ListGames(ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(model.GameID("GAME00000002"), games[0].ID)
}

func (s *Suite) TestListGamesNewestFirst() {
	s.save(s.NewGame("GAME00000001", 0))
	s.save(s.NewGame("GAME00000003", 2*time.Minute))
	s.save(s.NewGame("GAME00000002", time.Minute))

	games, err := s.Storage.ListGames(context.Background())
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(model.GameID("GAME00000003"), games[0].ID)
	s.Equal(model.GameID("GAME00000002"), games[1].ID)
	s.Equal(model.GameID("GAME00000001"), games[2].ID)
}

func (s *Suite) TestListGamesEmpty() {
	games, err := s.Storage.ListGames(context.Background())
	s.Require().NoError(err)
	s.Empty(games)
}

// UpdateGame tests

func (s *Suite) TestUpdateGameAppliesChange() {
	ctx := context.Background()
	s.save(s.NewGame("GAME00000001", 0))

	var outcome model.Outcome
	updated, err := s.Storage.UpdateGame(ctx, "GAME00000001", func(g *model.Game) error {
		outcome = g.PlayTurn(model.Position{Row: 0, Col: 0})
		return nil
	})
	s.Require().NoError(err)
	s.Equal(model.OutcomeNextTurn, outcome.Kind)
	s.Len(updated.Moves, 1)

	stored, err := s.Storage.GetGame(ctx, "GAME00000001")
	s.Require().NoError(err)
	s.Len(stored.Moves, 1)
	s.False(stored.Board.CanMark(model.Position{Row: 0, Col: 0}))
}

func (s *Suite) TestUpdateGameErrorLeavesGameUntouched() {
	ctx := context.Background()
	s.save(s.NewGame("GAME00000001", 0))
	boom := errors.New("boom")

	_, err := s.Storage.UpdateGame(ctx, "GAME00000001", func(g *model.Game) error {
		g.PlayTurn(model.Position{Row: 0, Col: 0})
		return boom
	})
	s.ErrorIs(err, boom)

	stored, err := s.Storage.GetGame(ctx, "GAME00000001")
	s.Require().NoError(err)
	s.Empty(stored.Moves)
}

func (s *Suite) TestUpdateGameNotFound() {
	_, err := s.Storage.UpdateGame(context.Background(), "nonexistent", func(g *model.Game) error {
		return nil
	})
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestConcurrentUpdatesAreSerialised() {
	ctx := context.Background()
	game, err := model.NewGame(5, 5, 5, model.NewPlayers("Bob", "Amy"))
	s.Require().NoError(err)
	game.ID = "GAME00000001"
	game.CreatedAt = baseTime
	s.save(game)

	const workers = 5
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Storage.UpdateGame(ctx, "GAME00000001", func(g *model.Game) error {
				outcome := g.PlayTurn(model.Position{Row: i, Col: i})
				if outcome.Kind != model.OutcomeNextTurn {
					return fmt.Errorf("unexpected outcome %s", outcome.Kind)
				}
				return nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	stored, err := s.Storage.GetGame(ctx, "GAME00000001")
	s.Require().NoError(err)
	s.Len(stored.Moves, workers)
	s.Equal(20, stored.Board.EmptyCount())
}
