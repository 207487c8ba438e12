package hazards

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debater-coder/wumpus/events"
	"github.com/debater-coder/wumpus/models"
)

type mapGraph map[int]models.Cave

func (g mapGraph) Cave(location int) (models.Cave, error) {
	c, ok := g[location]
	if !ok {
		return models.Cave{}, fmt.Errorf("no cave %d", location)
	}
	return c, nil
}

func (g mapGraph) Locations() []int {
	var out []int
	for i := 0; len(out) < len(g); i++ {
		if _, ok := g[i]; ok {
			out = append(out, i)
		}
	}
	return out
}

// square is four caves in a ring plus a hub joined to all of them
func square() mapGraph {
	return mapGraph{
		0: {Location: 0, Tunnels: []int{1, 2, 3}},
		1: {Location: 1, Tunnels: []int{0, 2, 4}},
		2: {Location: 2, Tunnels: []int{0, 1, 3}},
		3: {Location: 3, Tunnels: []int{0, 2, 4}},
		4: {Location: 4, Tunnels: []int{1, 3}},
	}
}

func TestWumpus_StartleDistribution(t *testing.T) {
	const trials = 8000
	rng := rand.New(rand.NewSource(42))
	counts := map[int]int{}

	for i := 0; i < trials; i++ {
		w := NewWumpus(square(), rng)
		w.Place(0)
		evs, err := w.Startle()
		require.NoError(t, err)

		switch len(evs) {
		case 0:
			counts[0]++
		case 1:
			moved, ok := evs[0].(events.WumpusMoved)
			require.True(t, ok, "startle emitted %v", evs[0])
			require.Contains(t, []int{1, 2, 3}, moved.Location)
			counts[moved.Location]++
		default:
			t.Fatalf("startle emitted %d events", len(evs))
		}
	}

	for _, location := range []int{0, 1, 2, 3} {
		assert.InDelta(t, 0.25, float64(counts[location])/trials, 0.03, "outcome %d", location)
	}
}

func TestWumpus_StartleUnplaced(t *testing.T) {
	w := NewWumpus(square(), rand.New(rand.NewSource(1)))
	_, err := w.Startle()
	assert.ErrorIs(t, err, ErrNotPlaced)

	_, err = w.OnArrowMiss()
	assert.ErrorIs(t, err, ErrNotPlaced)
}

func TestWumpus_OnArrowEnter(t *testing.T) {
	w := NewWumpus(square(), rand.New(rand.NewSource(1)))
	w.Place(2)
	for i := 0; i < 10; i++ {
		evs, err := w.OnArrowEnter()
		require.NoError(t, err)
		assert.Equal(t, []events.Event{events.ArrowHit{}, events.PlayerWon{}}, evs)
	}
}

func TestWumpus_OnPlayerEnter(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		w := NewWumpus(square(), rng)
		w.Place(0)
		evs, err := w.OnPlayerEnter()
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(evs), 2)
		require.LessOrEqual(t, len(evs), 3)

		assert.Equal(t, events.PlayerKilled{}, evs[0])
		assert.Equal(t, events.TextMessage{Text: "Wumpus EATS YOU UP!"}, evs[1])
		if len(evs) == 3 {
			assert.IsType(t, events.WumpusMoved{}, evs[2])
		}
	}
}

func TestBottomlessPit_OnPlayerEnter(t *testing.T) {
	p := NewBottomlessPit(square())
	p.Place(4)
	evs, err := p.OnPlayerEnter()
	require.NoError(t, err)
	assert.Equal(t, []events.Event{
		events.PlayerKilled{},
		events.TextMessage{Text: "YIIIEEEE... fell in pit!"},
	}, evs)
	assert.False(t, events.Contains(evs, events.TypePlayerMoved))

	arrow, err := p.OnArrowEnter()
	require.NoError(t, err)
	assert.Empty(t, arrow)
	miss, err := p.OnArrowMiss()
	require.NoError(t, err)
	assert.Empty(t, miss)
}

func TestSuperbats_OnPlayerEnter(t *testing.T) {
	const trials = 10000
	graph := square()
	s := NewSuperbats(graph, rand.New(rand.NewSource(3)))
	s.Place(1)
	counts := map[int]int{}

	for i := 0; i < trials; i++ {
		evs, err := s.OnPlayerEnter()
		require.NoError(t, err)
		require.Len(t, evs, 2)
		assert.IsType(t, events.TextMessage{}, evs[0])
		moved, ok := evs[1].(events.PlayerMoved)
		require.True(t, ok)
		counts[moved.Location]++
	}

	// every cave, the bats' own included, is a possible drop-off
	require.Len(t, counts, len(graph))
	for location := range graph {
		assert.InDelta(t, 1.0/float64(len(graph)), float64(counts[location])/trials, 0.02, "cave %d", location)
	}
}

func TestProximityMessages(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, "I smell a Wumpus.", NewWumpus(square(), rng).ProximityMessage())
	assert.Equal(t, "I feel a draft.", NewBottomlessPit(square()).ProximityMessage())
	assert.Equal(t, "Bats nearby.", NewSuperbats(square(), rng).ProximityMessage())
}

func TestNew(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, kind := range []Kind{KindWumpus, KindPit, KindBats} {
		h, err := New(kind, square(), rng)
		require.NoError(t, err)
		assert.Equal(t, kind, h.Kind())
		_, placed := h.Location()
		assert.False(t, placed)
	}

	_, err := New("dragon", square(), rng)
	assert.Error(t, err)
}

func TestDefaultSet(t *testing.T) {
	set := DefaultSet(square(), rand.New(rand.NewSource(1)))
	var kinds []Kind
	for _, h := range set {
		kinds = append(kinds, h.Kind())
	}
	assert.Equal(t, []Kind{KindPit, KindPit, KindBats, KindBats, KindWumpus}, kinds)
}
