package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/debater-coder/wumpus/models"
)

// sqlStore holds the queries shared by the PostgreSQL and SQLite stores.
// Queries are written with ? placeholders; numbered turns them into $n.
// Timestamps are stored as Unix milliseconds.
type sqlStore struct {
	db       *sql.DB
	numbered bool
}

func (s *sqlStore) rebind(query string) string {
	if !s.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *sqlStore) exec(query string, args ...any) error {
	_, err := s.db.Exec(s.rebind(query), args...)
	return err
}

func (s *sqlStore) queryRow(query string, args ...any) *sql.Row {
	return s.db.QueryRow(s.rebind(query), args...)
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// SavePlayer saves a player to the database
func (s *sqlStore) SavePlayer(player *models.Player) error {
	query := `
	INSERT INTO players (id, username, wins, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (id)
	DO UPDATE SET username = excluded.username, wins = excluded.wins, updated_at = excluded.updated_at
	`
	err := s.exec(query, player.ID, player.Username, player.Wins, millis(player.CreatedAt), millis(player.UpdatedAt))
	if err != nil {
		return oops.Wrapf(err, "save player %s", player.ID)
	}
	return nil
}

func (s *sqlStore) loadPlayer(where string, arg string) (*models.Player, error) {
	query := `SELECT id, username, wins, created_at, updated_at FROM players WHERE ` + where + ` = ?`

	var player models.Player
	var created, updated int64
	err := s.queryRow(query, arg).Scan(&player.ID, &player.Username, &player.Wins, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.Wrapf(ErrNotFound, "player with %s %s", where, arg)
	}
	if err != nil {
		return nil, oops.Wrapf(err, "load player with %s %s", where, arg)
	}

	player.CreatedAt = fromMillis(created)
	player.UpdatedAt = fromMillis(updated)
	return &player, nil
}

// LoadPlayer loads a player from the database by ID
func (s *sqlStore) LoadPlayer(playerID string) (*models.Player, error) {
	return s.loadPlayer("id", playerID)
}

// LoadPlayerByUsername loads a player from the database by username
func (s *sqlStore) LoadPlayerByUsername(username string) (*models.Player, error) {
	return s.loadPlayer("username", username)
}

// SaveScore saves a player's score on a level
func (s *sqlStore) SaveScore(score *models.Score) error {
	query := `
	INSERT INTO scores (player_id, level, deaths, seconds, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (player_id, level)
	DO UPDATE SET deaths = excluded.deaths, seconds = excluded.seconds, updated_at = excluded.updated_at
	`
	err := s.exec(query, score.PlayerID, score.Level, score.Deaths, score.Seconds, millis(score.UpdatedAt))
	if err != nil {
		return oops.Wrapf(err, "save score of %s on level %s", score.PlayerID, score.Level)
	}
	return nil
}

const scoreColumns = `s.player_id, p.username, s.level, s.deaths, s.seconds, s.updated_at
	FROM scores s JOIN players p ON p.id = s.player_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScore(row rowScanner) (*models.Score, error) {
	var score models.Score
	var updated int64
	if err := row.Scan(&score.PlayerID, &score.Username, &score.Level, &score.Deaths, &score.Seconds, &updated); err != nil {
		return nil, err
	}
	score.UpdatedAt = fromMillis(updated)
	return &score, nil
}

// LoadScore loads a player's score on a level
func (s *sqlStore) LoadScore(playerID string, level string) (*models.Score, error) {
	query := `SELECT ` + scoreColumns + ` WHERE s.player_id = ? AND s.level = ?`

	score, err := scanScore(s.queryRow(query, playerID, level))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.Wrapf(ErrNotFound, "score of %s on level %s", playerID, level)
	}
	if err != nil {
		return nil, oops.Wrapf(err, "load score of %s on level %s", playerID, level)
	}
	return score, nil
}

// ListScores returns the best scores on a level
func (s *sqlStore) ListScores(level string, limit int) ([]*models.Score, error) {
	query := `SELECT ` + scoreColumns + ` WHERE s.level = ? ORDER BY s.deaths, s.seconds`
	args := []any{level}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, oops.Wrapf(err, "list scores on level %s", level)
	}
	defer rows.Close()

	var scores []*models.Score
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			return nil, oops.Wrapf(err, "scan score on level %s", level)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Wrapf(err, "list scores on level %s", level)
	}
	return scores, nil
}

// SaveLevel saves a level map under its name
func (s *sqlStore) SaveLevel(level *models.LevelMap) error {
	cavesJSON, err := json.Marshal(level.Caves)
	if err != nil {
		return oops.Wrapf(err, "marshal caves of level %s", level.Name)
	}

	query := `
	INSERT INTO levels (name, caves, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT (name)
	DO UPDATE SET caves = excluded.caves, updated_at = excluded.updated_at
	`
	if err := s.exec(query, level.Name, string(cavesJSON), millis(time.Now())); err != nil {
		return oops.Wrapf(err, "save level %s", level.Name)
	}
	return nil
}

// LoadLevel loads a level map by name
func (s *sqlStore) LoadLevel(name string) (*models.LevelMap, error) {
	var cavesJSON string
	err := s.queryRow(`SELECT caves FROM levels WHERE name = ?`, name).Scan(&cavesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.Wrapf(ErrNotFound, "level with name %s", name)
	}
	if err != nil {
		return nil, oops.Wrapf(err, "load level %s", name)
	}

	level := &models.LevelMap{Name: name}
	if err := json.Unmarshal([]byte(cavesJSON), &level.Caves); err != nil {
		return nil, oops.Wrapf(err, "unmarshal caves of level %s", name)
	}
	return level, nil
}
