package factory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/nrowgame/internal/config"
	"github.com/mcoot/nrowgame/internal/dependencies/clock"
	"github.com/mcoot/nrowgame/internal/dependencies/random"
	"github.com/mcoot/nrowgame/internal/model"
	"github.com/mcoot/nrowgame/internal/services/bot"
	"github.com/mcoot/nrowgame/internal/services/game"
	"github.com/mcoot/nrowgame/internal/storage"
	"github.com/mcoot/nrowgame/internal/storage/memory"
	redisstorage "github.com/mcoot/nrowgame/internal/storage/redis"
	"github.com/mcoot/nrowgame/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageTypeMemory
	StorageTypeRedis  = config.StorageTypeRedis
	StorageTypeSQLite = config.StorageTypeSQLite
)

// Bot strategy names
const (
	BotStrategyGreedy = model.BotStrategyGreedy
	BotStrategyRandom = model.BotStrategyRandom
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	GameController *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// BotStrategy selects how bots and suggestions choose moves, default "greedy"
	BotStrategy string
	// MaxBoardSide bounds the sides of new games
	// If zero, defaults to model.DefaultMaxBoardSide
	MaxBoardSide int
}

// ConfigFromSettings maps loaded settings onto a factory Config
func ConfigFromSettings(settings *config.Config, logger *slog.Logger) Config {
	redisCfg := redisstorage.Config{
		URL:           settings.Redis.URL,
		PoolSize:      settings.Redis.PoolSize,
		MinIdleConns:  settings.Redis.MinIdleConns,
		GameTTL:       settings.Redis.GameTTL,
		UpdateRetries: settings.Redis.UpdateRetries,
	}
	return Config{
		Logger:       logger,
		StorageType:  settings.StorageType,
		RedisConfig:  &redisCfg,
		SQLitePath:   settings.SQLite.Path,
		BotStrategy:  settings.BotStrategy,
		MaxBoardSide: settings.MaxBoardSide,
	}
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rnd := random.New()
	strategy, err := newStrategy(cfg.BotStrategy, rnd)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	logger.Info("application wired",
		slog.String("storage", cmp.Or(cfg.StorageType, StorageTypeMemory)),
		slog.String("bot_strategy", cmp.Or(cfg.BotStrategy, BotStrategyGreedy)),
		slog.Int("max_board_side", cmp.Or(cfg.MaxBoardSide, model.DefaultMaxBoardSide)),
	)
	return newWithDependencies(store, strategy, clock.New(), rnd, logger, cfg.MaxBoardSide), nil
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}

func newStorage(ctx context.Context, cfg Config) (storage.Storage, error) {
	switch cmp.Or(cfg.StorageType, StorageTypeMemory) {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlite.Open(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", cfg.StorageType)
	}
}

func newStrategy(name string, rnd random.Random) (bot.Strategy, error) {
	switch cmp.Or(name, BotStrategyGreedy) {
	case BotStrategyGreedy:
		return bot.NewGreedyStrategy(rnd), nil
	case BotStrategyRandom:
		return bot.NewRandomStrategy(rnd), nil
	default:
		return nil, fmt.Errorf("invalid BotStrategy %q: must be 'greedy' or 'random'", name)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, strategy bot.Strategy, clk clock.Clock, rnd random.Random, logger *slog.Logger, maxBoardSide int) *App {
	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		GameController: game.NewController(store, strategy, clk, rnd, logger, cmp.Or(maxBoardSide, model.DefaultMaxBoardSide)),
	}
}
