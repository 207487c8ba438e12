package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/debater-coder/wumpus/events"
	"github.com/debater-coder/wumpus/hazards"
	"github.com/debater-coder/wumpus/levels"
	"github.com/debater-coder/wumpus/models"
)

// scriptedRand replays values in a loop, each reduced modulo n
type scriptedRand struct {
	values []int
	calls  int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.values[r.calls%len(r.values)]
	r.calls++
	return v % n
}

func classicCaves(t *testing.T) []models.Cave {
	t.Helper()
	data, err := levels.Read("01")
	require.NoError(t, err)
	caves, err := ParseLevelMap(data)
	require.NoError(t, err)
	return caves
}

// classicLayout puts a pit and the Wumpus next to cave 18
var classicLayout = []Placement{
	{Kind: hazards.KindPit, Location: 9},
	{Kind: hazards.KindPit, Location: 14},
	{Kind: hazards.KindBats, Location: 2},
	{Kind: hazards.KindBats, Location: 6},
	{Kind: hazards.KindWumpus, Location: 17},
}

func classicLevel(t *testing.T, rng hazards.Rand) *Level {
	t.Helper()
	l, err := NewLevel(classicCaves(t), WithLayout(classicLayout), WithRand(rng))
	require.NoError(t, err)
	return l
}

// spyHazard records how often each reaction ran and replays canned events
type spyHazard struct {
	kind     hazards.Kind
	location int
	enter    []events.Event
	misses   int
	enters   int
}

func (s *spyHazard) Kind() hazards.Kind { return s.kind }
func (s *spyHazard) Location() (int, bool) { return s.location, true }
func (s *spyHazard) Place(location int) { s.location = location }
func (s *spyHazard) ProximityMessage() string { return "spy" }

func (s *spyHazard) OnPlayerEnter() ([]events.Event, error) {
	s.enters++
	return s.enter, nil
}

func (s *spyHazard) OnArrowEnter() ([]events.Event, error) { return nil, nil }

func (s *spyHazard) OnArrowMiss() ([]events.Event, error) {
	s.misses++
	return nil, nil
}
