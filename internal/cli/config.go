package cli

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/mcoot/nrowgame/internal/model"
)

// Config holds CLI configuration. Flags override the environment.
type Config struct {
	ServerURL    string        `env:"NROW_SERVER" env-default:"http://localhost:8080"`
	Output       string        `env:"NROW_OUTPUT" env-default:"text"`
	Timeout      time.Duration `env:"NROW_CLIENT_TIMEOUT" env-default:"30s"`
	MaxBoardSide int           `env:"NROW_MAX_BOARD_SIDE" env-default:"100"`
}

// DefaultConfig reads the environment, falling back to the defaults above
func DefaultConfig() *Config {
	c := &Config{}
	if err := cleanenv.ReadEnv(c); err != nil {
		return &Config{
			ServerURL:    "http://localhost:8080",
			Output:       "text",
			Timeout:      30 * time.Second,
			MaxBoardSide: model.DefaultMaxBoardSide,
		}
	}
	return c
}

// Validate checks the output format
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
}
