package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/nrowgame/internal/config"
	"github.com/mcoot/nrowgame/internal/model"
	"github.com/mcoot/nrowgame/internal/services/game"
	redisstorage "github.com/mcoot/nrowgame/internal/storage/redis"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) play(id model.GameID, row, col int) model.Outcome {
	outcome, _, err := s.app.GameController.PlayTurn(s.ctx, id, model.Position{Row: row, Col: col})
	s.Require().NoError(err)
	return outcome
}

// Test: Three player game on a rectangular board through to a win
func (s *IntegrationSuite) TestCompleteGameFlow() {
	s.app.MockRandom.QueueString("GAME00000001")

	g, err := s.app.GameController.CreateGame(s.ctx, game.CreateGameParams{
		Width:     6,
		Height:    4,
		WinLength: 3,
		Players:   model.NewPlayers("Bob", "Amy", "Cat"),
	})
	s.Require().NoError(err)
	s.Equal(model.GameID("GAME00000001"), g.ID)

	s.Equal("Player Amy's turn.", s.play(g.ID, 0, 0).String()) // Bob
	s.Equal("Player Cat's turn.", s.play(g.ID, 1, 0).String()) // Amy
	s.Equal("Player Bob's turn.", s.play(g.ID, 2, 0).String()) // Cat
	s.Equal("Invalid move (0, 6).", s.play(g.ID, 0, 6).String())
	s.Equal("Player Amy's turn.", s.play(g.ID, 0, 1).String()) // Bob
	s.Equal("Player Cat's turn.", s.play(g.ID, 1, 1).String()) // Amy
	s.Equal("Player Bob's turn.", s.play(g.ID, 2, 1).String()) // Cat

	// Bob can complete row 0
	pos, ok, err := s.app.GameController.SuggestMove(s.ctx, g.ID)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(model.Position{Row: 0, Col: 2}, pos)

	outcome, final, err := s.app.GameController.PlayBotTurn(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal("Player Bob wins!", outcome.String())
	s.Equal(model.GameStateWon, final.State)
	s.Len(final.Moves, 7)

	s.Equal(model.OutcomeGameOver, s.play(g.ID, 3, 3).Kind)

	run, err := s.app.GameController.WinningRun(s.ctx, g.ID, model.Position{Row: 0, Col: 1})
	s.Require().NoError(err)
	s.Equal([]model.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, run)
}

// Test: Hot-seat game that fills the board without a run
func (s *IntegrationSuite) TestDrawFlow() {
	g, err := s.app.GameController.CreateGame(s.ctx, game.CreateGameParams{
		Width: 3, Height: 3, WinLength: 3, Players: model.NewPlayers("Bob", "Amy"),
	})
	s.Require().NoError(err)

	moves := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 0}}
	for _, m := range moves {
		s.Equal(model.OutcomeNextTurn, s.play(g.ID, m[0], m[1]).Kind)
	}
	s.Equal("It's a draw.", s.play(g.ID, 2, 2).String())

	_, ok, err := s.app.GameController.SuggestMove(s.ctx, g.ID)
	s.Require().NoError(err)
	s.False(ok)
}

func TestNewMemory(t *testing.T) {
	app, err := New(context.Background(), Config{})
	require.NoError(t, err)
	defer app.Close()

	g, err := app.GameController.CreateGame(context.Background(), game.CreateGameParams{
		Width: 3, Height: 3, WinLength: 3, Players: model.NewPlayers("Bob"),
	})
	require.NoError(t, err)
	assert.Len(t, string(g.ID), 12)
}

func TestNewSQLite(t *testing.T) {
	app, err := New(context.Background(), Config{
		StorageType: StorageTypeSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "games.db"),
		BotStrategy: BotStrategyRandom,
	})
	require.NoError(t, err)
	defer app.Close()

	games, err := app.GameController.ListGames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestNewRedis(t *testing.T) {
	mini := miniredis.RunT(t)
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	app, err := New(context.Background(), Config{StorageType: StorageTypeRedis, RedisConfig: &redisCfg})
	require.NoError(t, err)
	defer app.Close()

	_, err = app.GameController.CreateGame(context.Background(), game.CreateGameParams{
		Width: 3, Height: 3, WinLength: 3, Players: model.NewPlayers("Bob"),
	})
	require.NoError(t, err)
	assert.Len(t, mini.Keys(), 2)
}

func TestNewRejectsBadConfig(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, Config{StorageType: "postgres"})
	assert.ErrorContains(t, err, "invalid StorageType")

	_, err = New(ctx, Config{StorageType: StorageTypeRedis})
	assert.ErrorContains(t, err, "RedisConfig required")

	_, err = New(ctx, Config{StorageType: StorageTypeSQLite})
	assert.ErrorContains(t, err, "SQLitePath required")

	_, err = New(ctx, Config{BotStrategy: "minimax"})
	assert.ErrorContains(t, err, "invalid BotStrategy")
}

func TestConfigFromSettings(t *testing.T) {
	settings, err := config.Load("")
	require.NoError(t, err)

	cfg := ConfigFromSettings(settings, nil)
	assert.Equal(t, StorageTypeMemory, cfg.StorageType)
	assert.Equal(t, BotStrategyGreedy, cfg.BotStrategy)
	require.NotNil(t, cfg.RedisConfig)
	assert.Equal(t, settings.Redis.URL, cfg.RedisConfig.URL)
	assert.Equal(t, settings.SQLite.Path, cfg.SQLitePath)
	assert.Equal(t, model.DefaultMaxBoardSide, cfg.MaxBoardSide)
}

func TestNewAppliesMaxBoardSide(t *testing.T) {
	app, err := New(context.Background(), Config{MaxBoardSide: 8})
	require.NoError(t, err)
	defer app.Close()

	_, err = app.GameController.CreateGame(context.Background(), game.CreateGameParams{
		Width: 9, Height: 3, WinLength: 3, Players: model.NewPlayers("Bob"),
	})
	assert.ErrorIs(t, err, model.ErrBoardTooLarge)

	_, err = app.GameController.CreateGame(context.Background(), game.CreateGameParams{
		Width: 8, Height: 8, WinLength: 3, Players: model.NewPlayers("Bob"),
	})
	assert.NoError(t, err)
}
