package persistence

import (
	"errors"

	"github.com/debater-coder/wumpus/models"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("not found")

// Storage defines the interface for data persistence
type Storage interface {
	SavePlayer(player *models.Player) error
	LoadPlayer(playerID string) (*models.Player, error)
	LoadPlayerByUsername(username string) (*models.Player, error)

	SaveScore(score *models.Score) error
	LoadScore(playerID string, level string) (*models.Score, error)
	// ListScores returns the best scores on a level, fewest deaths first
	ListScores(level string, limit int) ([]*models.Score, error)

	SaveLevel(level *models.LevelMap) error
	LoadLevel(name string) (*models.LevelMap, error)

	Close() error
}
