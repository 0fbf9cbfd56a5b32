/*
Package config loads and validates runtime configuration.

PURPOSE:
  One place where flags and environment variables meet. Flags win over
  environment variables, environment variables win over defaults. The
  resulting Config is validated before the server touches any of it, so
  a bad port or an empty database path fails fast at startup instead of
  surfacing as a confusing runtime error.

PRECEDENCE:
  flag > environment variable > default

ENVIRONMENT:
  PORT            HTTP server port
  DB_PATH         SQLite database path (":memory:" allowed)
  CORS_ORIGINS    Comma-separated allowed origins
  SYNC_MONTHS     Months of history fetched per sync
  STALENESS_HOURS Hours before a cached month is refetched
*/
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults mirror local development usage.
const (
	DefaultPort           = 8080
	DefaultDBPath         = "districts.db"
	DefaultSyncMonths     = 12
	DefaultStalenessHours = 24
)

// Config is the validated runtime configuration.
type Config struct {
	Port        int      `validate:"required,min=1,max=65535"`
	DBPath      string   `validate:"required"`
	CORSOrigins []string `validate:"min=1,dive,required"`
	SyncMonths  int      `validate:"required,min=1,max=60"`
	Staleness   time.Duration
}

// Load parses the given argument list (usually os.Args[1:]) against the
// environment and defaults, then validates the result.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("district-pulse", flag.ContinueOnError)

	port := fs.Int("port", envInt("PORT", DefaultPort), "HTTP server port")
	dbPath := fs.String("db", envStr("DB_PATH", DefaultDBPath), "SQLite database path")
	origins := fs.String("cors-origins", envStr("CORS_ORIGINS", "*"), "comma-separated allowed CORS origins")
	syncMonths := fs.Int("sync-months", envInt("SYNC_MONTHS", DefaultSyncMonths), "months of history fetched per sync")
	staleHours := fs.Int("staleness-hours", envInt("STALENESS_HOURS", DefaultStalenessHours), "hours before a cached month is refetched")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:        *port,
		DBPath:      *dbPath,
		CORSOrigins: splitOrigins(*origins),
		SyncMonths:  *syncMonths,
		Staleness:   time.Duration(*staleHours) * time.Hour,
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func splitOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
