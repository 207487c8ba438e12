package persistence

import (
	"database/sql"
	"log/slog"

	"github.com/samber/oops"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore handles database operations using PostgreSQL
type PostgresStore struct {
	sqlStore
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS players (
	id TEXT PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	wins INTEGER NOT NULL DEFAULT 0,
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS scores (
	player_id TEXT NOT NULL REFERENCES players(id),
	level TEXT NOT NULL,
	deaths INTEGER NOT NULL,
	seconds DOUBLE PRECISION NOT NULL,
	updated_at BIGINT NOT NULL,
	PRIMARY KEY (player_id, level)
);

CREATE TABLE IF NOT EXISTS levels (
	name TEXT PRIMARY KEY,
	caves JSONB NOT NULL,
	updated_at BIGINT NOT NULL
);
`

// NewPostgresStore creates a new PostgreSQL storage manager
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, oops.Wrapf(err, "open database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, oops.Wrapf(err, "ping database")
	}

	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, oops.Wrapf(err, "initialize schema")
	}

	return &PostgresStore{sqlStore{db: db, numbered: true}}, nil
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	slog.Info("closing database connection", "driver", "postgres")
	return ps.db.Close()
}
