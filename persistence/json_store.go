package persistence

import (
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/samber/oops"

	"github.com/debater-coder/wumpus/models"
)

// JSONStore handles data persistence using a local JSON file
type JSONStore struct {
	filePath  string
	mutex     sync.RWMutex
	fileMutex sync.Mutex // held from snapshot to write
	data      *JSONData
}

// JSONData represents the structure of the JSON database
type JSONData struct {
	Players map[string]*models.Player   `json:"players"`
	Scores  map[string]*models.Score    `json:"scores"` // keyed by player ID and level
	Levels  map[string]*models.LevelMap `json:"levels"`
}

// NewJSONStore creates a new JSON storage manager
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Players: make(map[string]*models.Player),
			Scores:  make(map[string]*models.Score),
			Levels:  make(map[string]*models.LevelMap),
		},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, oops.Wrapf(err, "load JSON store %s", filePath)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, oops.Wrapf(err, "create JSON store %s", filePath)
		}
	}

	return store, nil
}

func scoreKey(playerID, level string) string {
	return playerID + "/" + level
}

// loadFromFile loads data from the JSON file
func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}

	// files written by older versions may lack a section
	if js.data.Players == nil {
		js.data.Players = make(map[string]*models.Player)
	}
	if js.data.Scores == nil {
		js.data.Scores = make(map[string]*models.Score)
	}
	if js.data.Levels == nil {
		js.data.Levels = make(map[string]*models.LevelMap)
	}
	return nil
}

// saveToFile saves data to the JSON file
func (js *JSONStore) saveToFile() error {
	js.fileMutex.Lock()
	defer js.fileMutex.Unlock()

	js.mutex.RLock()
	data, err := json.MarshalIndent(js.data, "", "  ")
	js.mutex.RUnlock()
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0644)
}

// SavePlayer saves a player to the store
func (js *JSONStore) SavePlayer(player *models.Player) error {
	stored := *player
	js.mutex.Lock()
	js.data.Players[player.ID] = &stored
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadPlayer loads a player by ID
func (js *JSONStore) LoadPlayer(playerID string) (*models.Player, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	player, exists := js.data.Players[playerID]
	if !exists {
		return nil, oops.Wrapf(ErrNotFound, "player with ID %s", playerID)
	}

	out := *player
	return &out, nil
}

// LoadPlayerByUsername loads a player by username
func (js *JSONStore) LoadPlayerByUsername(username string) (*models.Player, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	for _, player := range js.data.Players {
		if player.Username == username {
			out := *player
			return &out, nil
		}
	}

	return nil, oops.Wrapf(ErrNotFound, "player with username %s", username)
}

// SaveScore saves a player's score on a level
func (js *JSONStore) SaveScore(score *models.Score) error {
	stored := *score
	stored.Username = ""
	js.mutex.Lock()
	js.data.Scores[scoreKey(score.PlayerID, score.Level)] = &stored
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadScore loads a player's score on a level
func (js *JSONStore) LoadScore(playerID string, level string) (*models.Score, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	score, exists := js.data.Scores[scoreKey(playerID, level)]
	if !exists {
		return nil, oops.Wrapf(ErrNotFound, "score of %s on level %s", playerID, level)
	}

	return js.withUsername(score), nil
}

// ListScores returns the best scores on a level
func (js *JSONStore) ListScores(level string, limit int) ([]*models.Score, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	var scores []*models.Score
	for _, score := range js.data.Scores {
		if score.Level == level {
			scores = append(scores, js.withUsername(score))
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Deaths != scores[j].Deaths {
			return scores[i].Deaths < scores[j].Deaths
		}
		return scores[i].Seconds < scores[j].Seconds
	})
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

// withUsername copies score and fills in the player's name. Callers hold the read lock.
func (js *JSONStore) withUsername(score *models.Score) *models.Score {
	out := *score
	if player, ok := js.data.Players[score.PlayerID]; ok {
		out.Username = player.Username
	}
	return &out
}

// SaveLevel saves a level map under its name
func (js *JSONStore) SaveLevel(level *models.LevelMap) error {
	stored := *level
	js.mutex.Lock()
	js.data.Levels[level.Name] = &stored
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadLevel loads a level map by name
func (js *JSONStore) LoadLevel(name string) (*models.LevelMap, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	level, exists := js.data.Levels[name]
	if !exists {
		return nil, oops.Wrapf(ErrNotFound, "level with name %s", name)
	}

	out := *level
	return &out, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
