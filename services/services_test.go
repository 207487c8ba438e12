package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/debater-coder/wumpus/game"
	"github.com/debater-coder/wumpus/hazards"
	"github.com/debater-coder/wumpus/persistence"
)

func newStore(t *testing.T) persistence.Storage {
	t.Helper()
	store, err := persistence.NewJSONStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// fakeClock advances by step on every reading
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// classicLayout surrounds cave 18 with a pit in 9 and the Wumpus in 17
var classicLayout = []game.Placement{
	{Kind: hazards.KindPit, Location: 9},
	{Kind: hazards.KindPit, Location: 14},
	{Kind: hazards.KindBats, Location: 2},
	{Kind: hazards.KindBats, Location: 6},
	{Kind: hazards.KindWumpus, Location: 17},
}
