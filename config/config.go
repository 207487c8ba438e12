// Package config reads the game server settings from the environment
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/samber/oops"
)

// Storage backends
const (
	DBTypeJSON     = "json"
	DBTypePostgres = "postgres"
	DBTypeSQLite   = "sqlite"
)

// Config holds the server settings
type Config struct {
	Port         string
	DBType       string
	DatabaseURL  string
	DBFile       string
	Seed         *int64
	LogLevel     slog.Level
	DefaultLevel string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:         valueOr(getenv("PORT"), "8080"),
		DBType:       strings.ToLower(valueOr(getenv("DB_TYPE"), DBTypeJSON)),
		DatabaseURL:  getenv("DATABASE_URL"),
		DBFile:       getenv("DB_FILE"),
		DefaultLevel: valueOr(getenv("DEFAULT_LEVEL"), "01"),
	}

	switch cfg.DBType {
	case DBTypeJSON:
		cfg.DBFile = valueOr(cfg.DBFile, "db.json")
	case DBTypeSQLite:
		cfg.DBFile = valueOr(cfg.DBFile, "wumpus.db")
	case DBTypePostgres:
		cfg.DatabaseURL = valueOr(cfg.DatabaseURL, "host=localhost user=wumpus password=wumpus dbname=wumpus sslmode=disable")
	default:
		return nil, oops.Errorf("unknown DB_TYPE %q", cfg.DBType)
	}

	if raw := getenv("WUMPUS_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, oops.Wrapf(err, "WUMPUS_SEED")
		}
		cfg.Seed = &seed
	}

	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return nil, oops.Wrapf(err, "LOG_LEVEL")
		}
	}

	return cfg, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
