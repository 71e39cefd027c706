package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/mcoot/nrowgame/internal/model"
)

// Storage backends
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

type Config struct {
	LogLevel     string `yaml:"log-level" env:"NROW_LOG_LEVEL" env-default:"info"`
	StorageType  string `yaml:"storage-type" env:"NROW_STORAGE_TYPE" env-default:"memory"`
	BotStrategy  string `yaml:"bot-strategy" env:"NROW_BOT_STRATEGY" env-default:"greedy"`
	MaxBoardSide int    `yaml:"max-board-side" env:"NROW_MAX_BOARD_SIDE" env-default:"100"`
	HTTP         HTTP   `yaml:"http"`
	Redis        Redis  `yaml:"redis"`
	SQLite       SQLite `yaml:"sqlite"`
}

type HTTP struct {
	Host            string        `yaml:"host" env:"NROW_HTTP_HOST" env-default:""`
	Port            int           `yaml:"port" env:"NROW_HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read-timeout" env:"NROW_HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write-timeout" env:"NROW_HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"NROW_HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

type Redis struct {
	URL           string        `yaml:"url" env:"NROW_REDIS_URL" env-default:"redis://localhost:6379"`
	PoolSize      int           `yaml:"pool-size" env:"NROW_REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns  int           `yaml:"min-idle-conns" env:"NROW_REDIS_MIN_IDLE_CONNS" env-default:"2"`
	GameTTL       time.Duration `yaml:"game-ttl" env:"NROW_REDIS_GAME_TTL" env-default:"24h"`
	UpdateRetries int           `yaml:"update-retries" env:"NROW_REDIS_UPDATE_RETRIES" env-default:"50"`
}

type SQLite struct {
	Path string `yaml:"path" env:"NROW_SQLITE_PATH" env-default:"nrow.db"`
}

// Load reads the YAML file at path, then applies environment overrides.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load that panics on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.StorageType {
	case StorageTypeMemory, StorageTypeRedis, StorageTypeSQLite:
	default:
		return fmt.Errorf("invalid storage-type %q: must be memory, redis or sqlite", c.StorageType)
	}
	if !model.IsValidBotStrategy(c.BotStrategy) {
		return fmt.Errorf("invalid bot-strategy %q: must be one of %s", c.BotStrategy, strings.Join(model.ValidBotStrategies(), ", "))
	}
	if c.MaxBoardSide <= 0 {
		return fmt.Errorf("invalid max-board-side %d: must be greater than 0", c.MaxBoardSide)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log-level name to a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log-level %q", level)
	}
}

// NewLogger builds the JSON logger for the configured level
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := ParseLevel(c.LogLevel)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
