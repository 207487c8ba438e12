package persistence

import (
	"database/sql"

	"github.com/samber/oops"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SQLiteStore handles data persistence in an embedded SQLite database
type SQLiteStore struct {
	sqlStore
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS players (
	id TEXT PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	wins INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS scores (
	player_id TEXT NOT NULL REFERENCES players(id),
	level TEXT NOT NULL,
	deaths INTEGER NOT NULL,
	seconds REAL NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (player_id, level)
);

CREATE TABLE IF NOT EXISTS levels (
	name TEXT PRIMARY KEY,
	caves TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// NewSQLiteStore opens the SQLite database at dsn, a file path or ":memory:"
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, oops.Wrapf(err, "open database %s", dsn)
	}
	// every connection to ":memory:" would get its own empty database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, oops.Wrapf(err, "initialize schema")
	}

	return &SQLiteStore{sqlStore{db: db}}, nil
}

// Close closes the database
func (ss *SQLiteStore) Close() error {
	return ss.db.Close()
}
