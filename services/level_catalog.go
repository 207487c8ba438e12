package services

import (
	"errors"
	"sync"

	"github.com/samber/oops"

	"github.com/debater-coder/wumpus/game"
	"github.com/debater-coder/wumpus/hazards"
	"github.com/debater-coder/wumpus/levels"
	"github.com/debater-coder/wumpus/models"
	"github.com/debater-coder/wumpus/persistence"
)

// MinCaves is the smallest playable level: one cave per hazard plus a spawn
var MinCaves = len(hazards.DefaultKinds) + 1

var (
	// ErrLevelNotFound is returned for a name that is neither built in nor stored
	ErrLevelNotFound = errors.New("level not found")
	// ErrLevelUnplayable is returned for a level map that parses but cannot host a game
	ErrLevelUnplayable = errors.New("level unplayable")
)

// LevelCatalog resolves level names to cave graphs. Built-in levels shadow
// stored ones; parsed levels are cached.
type LevelCatalog struct {
	levels map[string][]models.Cave
	db     persistence.Storage
	mutex  sync.RWMutex
}

// NewLevelCatalog creates a catalog. db may be nil, leaving only built-in levels.
func NewLevelCatalog(db persistence.Storage) *LevelCatalog {
	return &LevelCatalog{
		levels: make(map[string][]models.Cave),
		db:     db,
	}
}

// Get returns the caves of the named level
func (lc *LevelCatalog) Get(name string) ([]models.Cave, error) {
	lc.mutex.RLock()
	caves, exists := lc.levels[name]
	lc.mutex.RUnlock()
	if exists {
		return caves, nil
	}

	caves, err := lc.load(name)
	if err != nil {
		return nil, err
	}

	lc.mutex.Lock()
	lc.levels[name] = caves
	lc.mutex.Unlock()
	return caves, nil
}

func (lc *LevelCatalog) load(name string) ([]models.Cave, error) {
	if data, err := levels.Read(name); err == nil {
		caves, err := game.ParseLevelMap(data)
		if err != nil {
			return nil, oops.Wrapf(err, "built-in level %s", name)
		}
		return caves, nil
	}

	if lc.db == nil {
		return nil, oops.Wrapf(ErrLevelNotFound, "level %s", name)
	}
	stored, err := lc.db.LoadLevel(name)
	if errors.Is(err, persistence.ErrNotFound) {
		return nil, oops.Wrapf(ErrLevelNotFound, "level %s", name)
	}
	if err != nil {
		return nil, err
	}
	if err := validatePlayable(stored.Caves); err != nil {
		return nil, oops.Wrapf(err, "stored level %s", name)
	}
	return stored.Caves, nil
}

// Save validates a level map and stores it under name
func (lc *LevelCatalog) Save(name string, data []byte) error {
	if _, err := levels.Read(name); err == nil {
		return oops.Errorf("level %s is built in", name)
	}
	if lc.db == nil {
		return oops.Errorf("no storage for level %s", name)
	}

	caves, err := game.ParseLevelMap(data)
	if err != nil {
		return err
	}
	if err := validatePlayable(caves); err != nil {
		return oops.Wrapf(err, "level %s", name)
	}
	if err := lc.db.SaveLevel(&models.LevelMap{Name: name, Caves: caves}); err != nil {
		return err
	}

	lc.mutex.Lock()
	lc.levels[name] = caves
	lc.mutex.Unlock()
	return nil
}

// Names lists the built-in levels
func (lc *LevelCatalog) Names() []string {
	return levels.Names()
}

func validatePlayable(caves []models.Cave) error {
	graph, err := game.NewCaveGraph(caves)
	if err != nil {
		return err
	}
	if graph.Len() < MinCaves {
		return oops.Wrapf(ErrLevelUnplayable, "%d caves, need at least %d", graph.Len(), MinCaves)
	}
	if !graph.Connected() {
		return oops.Wrapf(ErrLevelUnplayable, "not every cave is reachable")
	}
	return nil
}
