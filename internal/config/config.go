// Package config loads server settings from the environment. Every variable
// may carry the GAMEROOMS_ prefix; bare names are read as a fallback.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the optional environment variable prefix
const Prefix = "gamerooms"

// Config holds server settings
type Config struct {
	Host     string     `envconfig:"HOST"`
	Port     int        `envconfig:"PORT" default:"8080"`
	LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"info"`

	// SendBuffer is the per-connection outbound queue length
	SendBuffer int           `envconfig:"SEND_BUFFER" default:"256"`
	PingPeriod time.Duration `envconfig:"PING_PERIOD" default:"30s"`
	WriteWait  time.Duration `envconfig:"WRITE_WAIT" default:"10s"`
	ReadLimit  int64         `envconfig:"READ_LIMIT" default:"65536"`
	// AllowedOrigins is a comma list; empty accepts any origin
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`

	// CensoredWords is a comma list; empty disables chat moderation
	CensoredWords []string `envconfig:"CENSORED_WORDS"`
	CensorChar    string   `envconfig:"CENSOR_CHAR" default:"*"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the process environment only
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges envconfig cannot express
func (c Config) Validate() error {
	switch {
	case c.Port < 0 || c.Port > 65535:
		return fmt.Errorf("PORT out of range: %d", c.Port)
	case c.SendBuffer < 1:
		return fmt.Errorf("SEND_BUFFER must be positive: %d", c.SendBuffer)
	case c.PingPeriod <= 0 || c.WriteWait <= 0:
		return errors.New("PING_PERIOD and WRITE_WAIT must be positive")
	case c.ReadLimit < 1:
		return fmt.Errorf("READ_LIMIT must be positive: %d", c.ReadLimit)
	case utf8.RuneCountInString(c.CensorChar) != 1:
		return fmt.Errorf("CENSOR_CHAR must be a single character: %q", c.CensorChar)
	}
	return nil
}

// CensorRune returns the replacement character for censored text
func (c Config) CensorRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CensorChar)
	return r
}
