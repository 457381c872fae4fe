/*
config.go - Environment-driven configuration

PURPOSE:
  Loads service configuration from the environment, with an optional
  .env file for local development. Command-line flags in
  cmd/server/main.go override these values.

VARIABLES:
  APP_PORT       HTTP server port (default 8080)
  DB_PATH        SQLite database path (default payroll.db)
  FIXTURE_PATH   Calendar fixture JSON (default testdata/calendars.json)
  LOG_LEVEL      debug | info | warn | error (default info)

SEE ALSO:
  - cmd/server/main.go: Applies this configuration
*/
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        int
	DBPath      string
	FixturePath string
	LogLevel    slog.Level
}

// Load reads configuration from the environment. A missing .env file
// is fine; the defaults carry a local run.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:        port,
		DBPath:      getEnv("DB_PATH", "payroll.db"),
		FixturePath: getEnv("FIXTURE_PATH", "testdata/calendars.json"),
		LogLevel:    level,
	}, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
