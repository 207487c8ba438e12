// Package hazards implements the entities that live in caves and react to
// the player and to arrows. A hazard only sees the cave graph; everything it
// wants to do to the player or the level is expressed as returned events.
package hazards

import (
	"errors"
	"fmt"

	"github.com/debater-coder/wumpus/events"
	"github.com/debater-coder/wumpus/models"
)

// ErrNotPlaced is returned when a hazard needs its location before it was placed
var ErrNotPlaced = errors.New("hazard has not been placed")

// Rand is the random source hazards draw from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Graph is the read-only view of the cave graph given to hazards
type Graph interface {
	Cave(location int) (models.Cave, error)
	// Locations returns every cave location in ascending order
	Locations() []int
}

// Kind names a hazard variant
type Kind string

const (
	KindWumpus Kind = "wumpus"
	KindPit    Kind = "pit"
	KindBats   Kind = "bats"
)

// Hazard is anything bound to a cave that reacts to the player or an arrow
type Hazard interface {
	Kind() Kind
	// Location returns the hazard's cave and whether it has been placed
	Location() (int, bool)
	Place(location int)

	// OnPlayerEnter is called when the player arrives in the hazard's cave
	OnPlayerEnter() ([]events.Event, error)
	// OnArrowEnter is called when an arrow passes through the hazard's cave
	OnArrowEnter() ([]events.Event, error)
	// OnArrowMiss is called once for an arrow that hit nothing
	OnArrowMiss() ([]events.Event, error)

	// ProximityMessage is shown when the hazard is in an adjacent cave
	ProximityMessage() string
}

// base carries the placement state and the default (inert) reactions
type base struct {
	location int
	placed   bool
	graph    Graph
}

func (b *base) Location() (int, bool) {
	return b.location, b.placed
}

func (b *base) Place(location int) {
	b.location = location
	b.placed = true
}

func (b *base) OnPlayerEnter() ([]events.Event, error) { return nil, nil }
func (b *base) OnArrowEnter() ([]events.Event, error) { return nil, nil }
func (b *base) OnArrowMiss() ([]events.Event, error) { return nil, nil }

// New creates an unplaced hazard of the given kind
func New(kind Kind, graph Graph, rng Rand) (Hazard, error) {
	switch kind {
	case KindWumpus:
		return NewWumpus(graph, rng), nil
	case KindPit:
		return NewBottomlessPit(graph), nil
	case KindBats:
		return NewSuperbats(graph, rng), nil
	default:
		return nil, fmt.Errorf("unknown hazard kind %q", kind)
	}
}

// DefaultKinds is the hazard population of every level, in placement order
var DefaultKinds = []Kind{KindPit, KindPit, KindBats, KindBats, KindWumpus}

// DefaultSet creates the unplaced hazards listed in DefaultKinds
func DefaultSet(graph Graph, rng Rand) []Hazard {
	set := make([]Hazard, 0, len(DefaultKinds))
	for _, kind := range DefaultKinds {
		h, _ := New(kind, graph, rng)
		set = append(set, h)
	}
	return set
}
