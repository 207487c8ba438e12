package services

import (
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/debater-coder/wumpus/models"
	"github.com/debater-coder/wumpus/persistence"
)

// ScoreService manages players and their best scores
type ScoreService struct {
	db    persistence.Storage
	now   func() time.Time
	mutex sync.Mutex
}

// NewScoreService creates a new score service
func NewScoreService(db persistence.Storage) *ScoreService {
	return &ScoreService{db: db, now: time.Now}
}

// Player gets an existing player or creates a new one
func (ss *ScoreService) Player(username string) (*models.Player, error) {
	if username == "" {
		return nil, oops.Errorf("empty username")
	}

	ss.mutex.Lock()
	defer ss.mutex.Unlock()

	player, err := ss.db.LoadPlayerByUsername(username)
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, persistence.ErrNotFound) {
		return nil, err
	}

	now := ss.now()
	player = &models.Player{
		ID:        ulid.Make().String(),
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ss.db.SavePlayer(player); err != nil {
		return nil, oops.Wrapf(err, "save new player %s", username)
	}
	return player, nil
}

// Record counts a win and merges result into the player's best score on
// level, keeping the fewest deaths and the shortest time independently.
// It returns the best score after the merge.
func (ss *ScoreService) Record(playerID string, level string, deaths int, elapsed time.Duration) (*models.Score, error) {
	ss.mutex.Lock()
	defer ss.mutex.Unlock()

	player, err := ss.db.LoadPlayer(playerID)
	if err != nil {
		return nil, err
	}
	now := ss.now()
	player.Wins++
	player.UpdatedAt = now
	if err := ss.db.SavePlayer(player); err != nil {
		return nil, oops.Wrapf(err, "count win of %s", playerID)
	}

	result := models.Score{
		PlayerID:  playerID,
		Level:     level,
		Deaths:    deaths,
		Seconds:   elapsed.Seconds(),
		UpdatedAt: now,
	}

	best, err := ss.db.LoadScore(playerID, level)
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		best = &result
	case err != nil:
		return nil, err
	default:
		if !best.Improve(result) {
			return best, nil
		}
		best.UpdatedAt = now
	}

	if err := ss.db.SaveScore(best); err != nil {
		return nil, err
	}
	best.Username = player.Username
	return best, nil
}

// Best returns the player's best score on level
func (ss *ScoreService) Best(playerID string, level string) (*models.Score, error) {
	return ss.db.LoadScore(playerID, level)
}

// Leaderboard returns the top scores on level
func (ss *ScoreService) Leaderboard(level string, limit int) ([]*models.Score, error) {
	return ss.db.ListScores(level, limit)
}
