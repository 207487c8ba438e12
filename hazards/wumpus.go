package hazards

import (
	"fmt"

	"github.com/debater-coder/wumpus/events"
)

// Wumpus kills the player who walks into its cave and dies to an arrow.
// A missed arrow or a meal startles it: it stays put or wanders down one of
// the tunnels, each outcome equally likely.
type Wumpus struct {
	base
	rng Rand
}

// NewWumpus creates an unplaced Wumpus
func NewWumpus(graph Graph, rng Rand) *Wumpus {
	return &Wumpus{base: base{graph: graph}, rng: rng}
}

func (w *Wumpus) Kind() Kind { return KindWumpus }

func (w *Wumpus) ProximityMessage() string { return "I smell a Wumpus." }

func (w *Wumpus) OnPlayerEnter() ([]events.Event, error) {
	evs := []events.Event{
		events.PlayerKilled{},
		events.TextMessage{Text: "Wumpus EATS YOU UP!"},
	}
	moved, err := w.Startle()
	if err != nil {
		return nil, err
	}
	return append(evs, moved...), nil
}

func (w *Wumpus) OnArrowEnter() ([]events.Event, error) {
	return []events.Event{events.ArrowHit{}, events.PlayerWon{}}, nil
}

func (w *Wumpus) OnArrowMiss() ([]events.Event, error) {
	return w.Startle()
}

// Startle picks uniformly among staying and each tunnel of the current cave.
// The Wumpus does not move itself; the level applies the returned WumpusMoved.
func (w *Wumpus) Startle() ([]events.Event, error) {
	if !w.placed {
		return nil, ErrNotPlaced
	}
	cave, err := w.graph.Cave(w.location)
	if err != nil {
		return nil, fmt.Errorf("startle wumpus in cave %d: %w", w.location, err)
	}

	choice := w.rng.Intn(len(cave.Tunnels) + 1)
	if choice == len(cave.Tunnels) {
		return nil, nil
	}
	return []events.Event{events.WumpusMoved{Location: cave.Tunnels[choice]}}, nil
}
