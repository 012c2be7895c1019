package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	DiscordToken string `env:"BOT_TOKEN,required,notEmpty"`
	GuildID      string `env:"GUILD_ID,required,notEmpty"`

	// Hypixel API
	APIKey       string  `env:"API_KEY,required,notEmpty"`
	APIRateLimit float64 `env:"API_RATE_LIMIT" envDefault:"2"`

	// Database
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseURL    string `env:"DATABASE_URL" envDefault:"./data/bot.db"`

	// Command workers
	Workers int `env:"WORKERS" envDefault:"4"`

	// Role resync, disabled when zero
	SyncInterval time.Duration `env:"SYNC_INTERVAL" envDefault:"0s"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment after loading envFile, if it exists
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER %q: must be sqlite or postgres", c.DatabaseDriver)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid WORKERS %d: must be at least 1", c.Workers)
	}
	if c.SyncInterval < 0 {
		return fmt.Errorf("invalid SYNC_INTERVAL %s: must not be negative", c.SyncInterval)
	}
	if c.APIRateLimit <= 0 {
		return fmt.Errorf("invalid API_RATE_LIMIT %v: must be positive", c.APIRateLimit)
	}
	return nil
}
