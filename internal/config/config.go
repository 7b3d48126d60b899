// Package config loads process settings from defaults, an optional .env file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the server settings.
type Config struct {
	Addr     string `default:":8080"`
	LogLevel string `default:"info"`

	AuthDelay    time.Duration `default:"1s"`
	ProfileDelay time.Duration `default:"1500ms"`
	// TaxRate is a decimal string; see Tax.
	TaxRate string `default:"0.08"`

	InvalidatePendingOnSignOut bool `default:"false"`
}

// Load applies defaults, reads envFile when it exists and then overrides from
// the environment. Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return Config{}, fmt.Errorf("config defaults: %w", err)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	c.Addr = env("ADDR", c.Addr)
	c.LogLevel = env("LOG_LEVEL", c.LogLevel)
	c.TaxRate = env("SHOP_TAX_RATE", c.TaxRate)

	var err error
	if c.AuthDelay, err = durationEnv("SHOP_AUTH_DELAY", c.AuthDelay); err != nil {
		return Config{}, err
	}
	if c.ProfileDelay, err = durationEnv("SHOP_PROFILE_DELAY", c.ProfileDelay); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("SHOP_INVALIDATE_PENDING"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("SHOP_INVALIDATE_PENDING: %w", err)
		}
		c.InvalidatePendingOnSignOut = b
	}

	if _, err := c.Tax(); err != nil {
		return Config{}, err
	}
	if _, err := c.Level(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Tax returns the parsed tax rate. Negative rates are rejected.
func (c Config) Tax() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.TaxRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("SHOP_TAX_RATE: %w", err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("SHOP_TAX_RATE: negative rate %s", c.TaxRate)
	}
	return d, nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", key, v)
	}
	return d, nil
}
