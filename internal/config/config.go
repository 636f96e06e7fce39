// Package config loads fairdice settings from the environment. An optional
// .env file is read first; variables already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the server
type Config struct {
	// Redis
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisTimeout  time.Duration `env:"REDIS_TIMEOUT" envDefault:"3s"`

	// HTTP boundary
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":3001"`

	// Game rules
	DefaultBalance     int64         `env:"DEFAULT_BALANCE" envDefault:"1000"`
	PayoutMultiplier   int64         `env:"PAYOUT_MULTIPLIER" envDefault:"2"`
	WinThreshold       int           `env:"WIN_THRESHOLD" envDefault:"4"`
	CommitmentTTL      time.Duration `env:"COMMITMENT_TTL" envDefault:"10m"`
	LedgerMaxRetries   int           `env:"LEDGER_MAX_RETRIES" envDefault:"10"`
	AutoCreateAccounts bool          `env:"AUTO_CREATE_ACCOUNTS" envDefault:"true"`

	// Discord bot, disabled when the token is empty
	DiscordToken  string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads the given .env files (default ".env") when present, then
// parses and validates the environment
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that parse but make no sense
func (c *Config) Validate() error {
	if c.PayoutMultiplier < 1 {
		return fmt.Errorf("PAYOUT_MULTIPLIER must be at least 1, got %d", c.PayoutMultiplier)
	}

	if c.WinThreshold < 1 || c.WinThreshold > 6 {
		return fmt.Errorf("WIN_THRESHOLD must be between 1 and 6, got %d", c.WinThreshold)
	}

	if c.DefaultBalance < 0 {
		return fmt.Errorf("DEFAULT_BALANCE cannot be negative, got %d", c.DefaultBalance)
	}

	if c.CommitmentTTL < 0 {
		return fmt.Errorf("COMMITMENT_TTL cannot be negative, got %s", c.CommitmentTTL)
	}

	if c.LedgerMaxRetries < 1 {
		return fmt.Errorf("LEDGER_MAX_RETRIES must be at least 1, got %d", c.LedgerMaxRetries)
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}

	return nil
}

// DiscordEnabled reports whether the bot should be started
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}
