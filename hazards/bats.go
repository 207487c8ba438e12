package hazards

import (
	"errors"

	"github.com/debater-coder/wumpus/events"
)

// Superbats carry the player off to any cave of the level, hazards and the
// bats' own cave included.
type Superbats struct {
	base
	rng Rand
}

// NewSuperbats creates an unplaced bat swarm
func NewSuperbats(graph Graph, rng Rand) *Superbats {
	return &Superbats{base: base{graph: graph}, rng: rng}
}

func (s *Superbats) Kind() Kind { return KindBats }

func (s *Superbats) ProximityMessage() string { return "Bats nearby." }

func (s *Superbats) OnPlayerEnter() ([]events.Event, error) {
	locations := s.graph.Locations()
	if len(locations) == 0 {
		return nil, errors.New("superbats: level has no caves")
	}
	return []events.Event{
		events.TextMessage{Text: "ZAP -- Super bat snatch! Elsewhereville for you!"},
		events.PlayerMoved{Location: locations[s.rng.Intn(len(locations))]},
	}, nil
}
