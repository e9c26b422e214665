// Package config loads mealmax configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Random source modes.
const (
	RandomModeHTTP  = "http"
	RandomModeLocal = "local"
)

// Config holds process-wide settings.
type Config struct {
	DBPath        string        `env:"MEALMAX_DB_PATH"        envDefault:"mealmax.db"`
	ListenAddr    string        `env:"MEALMAX_LISTEN_ADDR"    envDefault:":5000"`
	RandomMode    string        `env:"MEALMAX_RANDOM_MODE"    envDefault:"http"`
	RandomURL     string        `env:"MEALMAX_RANDOM_URL"     envDefault:"https://www.random.org/decimal-fractions/?num=1&dec=2&col=1&format=plain&rnd=new"`
	RandomTimeout time.Duration `env:"MEALMAX_RANDOM_TIMEOUT" envDefault:"5s"`
	CORSOrigins   []string      `env:"MEALMAX_CORS_ORIGINS"   envDefault:"http://localhost:3000" envSeparator:","`
	LogLevel      string        `env:"MEALMAX_LOG_LEVEL"      envDefault:"info"`
}

// Load reads dotenvFiles (missing files are skipped) and then parses the
// environment. Variables already set in the environment win over .env values.
func Load(dotenvFiles ...string) (Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.CORSOrigins = trimOrigins(cfg.CORSOrigins)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env.Parse cannot.
func (c Config) Validate() error {
	switch c.RandomMode {
	case RandomModeHTTP, RandomModeLocal:
	default:
		return fmt.Errorf("invalid MEALMAX_RANDOM_MODE %q: must be %q or %q", c.RandomMode, RandomModeHTTP, RandomModeLocal)
	}
	if c.RandomTimeout <= 0 {
		return fmt.Errorf("invalid MEALMAX_RANDOM_TIMEOUT %s: must be positive", c.RandomTimeout)
	}
	if c.DBPath == "" {
		return errors.New("MEALMAX_DB_PATH must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for _, origin := range c.CORSOrigins {
		if !validOrigin(origin) {
			return fmt.Errorf("invalid MEALMAX_CORS_ORIGINS entry %q: must be \"*\" or start with http:// or https://", origin)
		}
	}
	return nil
}

// trimOrigins strips whitespace around each comma-separated origin and drops
// empty entries.
func trimOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func validOrigin(o string) bool {
	return o == "*" || strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://")
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid MEALMAX_LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
