package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(env(nil))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DBTypeJSON, cfg.DBType)
	assert.Equal(t, "db.json", cfg.DBFile)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "01", cfg.DefaultLevel)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"PORT":          "9000",
		"DB_TYPE":       "SQLite",
		"WUMPUS_SEED":   "-42",
		"LOG_LEVEL":     "debug",
		"DEFAULT_LEVEL": "02",
	}))
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, DBTypeSQLite, cfg.DBType)
	assert.Equal(t, "wumpus.db", cfg.DBFile)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(-42), *cfg.Seed)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "02", cfg.DefaultLevel)

	cfg, err = load(env(map[string]string{"DB_TYPE": "postgres", "DATABASE_URL": "postgres://x"}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://x", cfg.DatabaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	for name, vars := range map[string]map[string]string{
		"db type":   {"DB_TYPE": "bolt"},
		"seed":      {"WUMPUS_SEED": "forty-two"},
		"log level": {"LOG_LEVEL": "loud"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := load(env(vars))
			assert.Error(t, err)
		})
	}
}
