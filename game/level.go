package game

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"strings"

	"github.com/debater-coder/wumpus/events"
	"github.com/debater-coder/wumpus/hazards"
	"github.com/debater-coder/wumpus/models"
)

// MaxCausalDepth bounds how deeply one event may provoke further events
const MaxCausalDepth = 64

// Placement records which hazard occupies which cave
type Placement struct {
	Kind     hazards.Kind `json:"kind"`
	Location int          `json:"location"`
}

// Level owns the cave graph and the hazards placed in it. It is the only
// component that moves hazards, and HandleEvent is the only place where the
// consequences of an event are worked out.
type Level struct {
	graph   *CaveGraph
	hazards map[int]hazards.Hazard
	// hazards sharing a cave with the Wumpus, reinstated when it leaves
	parked map[int]hazards.Hazard

	playerLocation int
	playerPlaced   bool

	rng    hazards.Rand
	logger *slog.Logger
	layout []Placement
}

// Option configures a Level
type Option func(*Level)

// WithRand sets the random source used for placement and hazard behaviour
func WithRand(rng hazards.Rand) Option {
	return func(l *Level) { l.rng = rng }
}

// WithLogger sets the logger that receives each resolved event at debug level
func WithLogger(logger *slog.Logger) Option {
	return func(l *Level) { l.logger = logger }
}

// WithLayout places hazards at fixed caves instead of random ones. The
// layout must name exactly the default hazard population in distinct caves.
func WithLayout(layout []Placement) Option {
	return func(l *Level) { l.layout = layout }
}

// LoadLevel parses a level map and builds a Level from it
func LoadLevel(data []byte, opts ...Option) (*Level, error) {
	caves, err := ParseLevelMap(data)
	if err != nil {
		return nil, err
	}
	return NewLevel(caves, opts...)
}

// NewLevel builds the cave graph and places two pits, two bat swarms and the
// Wumpus, each in a different cave.
func NewLevel(caves []models.Cave, opts ...Option) (*Level, error) {
	graph, err := NewCaveGraph(caves)
	if err != nil {
		return nil, err
	}

	l := &Level{
		graph:   graph,
		hazards: make(map[int]hazards.Hazard),
		parked:  make(map[int]hazards.Hazard),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.rng == nil {
		l.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if l.layout != nil {
		err = l.placeLayout()
	} else {
		err = l.placeRandom()
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Level) placeRandom() error {
	for _, h := range hazards.DefaultSet(l.graph, l.rng) {
		cave, err := l.ChooseEmptyCave()
		if err != nil {
			return fmt.Errorf("place %s: %w", h.Kind(), err)
		}
		h.Place(cave.Location)
		l.hazards[cave.Location] = h
	}
	return nil
}

func (l *Level) placeLayout() error {
	want := make(map[hazards.Kind]int)
	for _, kind := range hazards.DefaultKinds {
		want[kind]++
	}

	for _, p := range l.layout {
		if _, err := l.graph.Cave(p.Location); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
		if _, taken := l.hazards[p.Location]; taken {
			return fmt.Errorf("%w: cave %d holds two hazards", ErrInvalidLayout, p.Location)
		}
		h, err := hazards.New(p.Kind, l.graph, l.rng)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
		want[p.Kind]--
		h.Place(p.Location)
		l.hazards[p.Location] = h
	}

	for kind, n := range want {
		if n != 0 {
			return fmt.Errorf("%w: wrong number of %s hazards", ErrInvalidLayout, kind)
		}
	}
	return nil
}

// Graph returns the level's cave graph
func (l *Level) Graph() *CaveGraph {
	return l.graph
}

// Cave looks up a cave by location
func (l *Level) Cave(location int) (models.Cave, error) {
	return l.graph.Cave(location)
}

// HazardInCave returns the hazard occupying cave, or nil
func (l *Level) HazardInCave(cave models.Cave) hazards.Hazard {
	return l.HazardAt(cave.Location)
}

// HazardAt returns the hazard occupying location, or nil
func (l *Level) HazardAt(location int) hazards.Hazard {
	return l.hazards[location]
}

// WumpusLocation returns the cave the Wumpus is in
func (l *Level) WumpusLocation() (int, error) {
	w := l.wumpus()
	if w == nil {
		return 0, ErrWumpusNotPlaced
	}
	location, placed := w.Location()
	if !placed {
		return 0, ErrWumpusNotPlaced
	}
	return location, nil
}

// PlayerLocation returns the level's record of the player's cave
func (l *Level) PlayerLocation() (int, bool) {
	return l.playerLocation, l.playerPlaced
}

// Placements lists every hazard, parked ones included, by ascending location.
// A parked hazard is listed after the Wumpus sharing its cave.
func (l *Level) Placements() []Placement {
	var out []Placement
	for _, h := range l.allHazards() {
		location, _ := h.Location()
		out = append(out, Placement{Kind: h.Kind(), Location: location})
	}
	return out
}

// ChooseEmptyCave picks uniformly among the caves that hold no hazard
func (l *Level) ChooseEmptyCave() (models.Cave, error) {
	var empty []int
	for _, location := range l.graph.locations {
		if _, taken := l.hazards[location]; !taken {
			empty = append(empty, location)
		}
	}
	if len(empty) == 0 {
		return models.Cave{}, ErrNoEmptyCave
	}
	return l.graph.Cave(empty[l.rng.Intn(len(empty))])
}

// HandleEvent resolves ev and everything it provokes. The returned events are
// in depth-first order: each hazard reaction directly follows the event that
// provoked it.
func (l *Level) HandleEvent(ev events.Event) ([]events.Event, error) {
	var out []events.Event
	if err := l.resolve(ev, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Level) resolve(ev events.Event, depth int, out *[]events.Event) error {
	if depth > MaxCausalDepth {
		return fmt.Errorf("%w: gave up at %s", ErrCausalChainTooDeep, ev)
	}
	l.logger.Debug("level handling event", "event", ev, "depth", depth)

	switch e := ev.(type) {
	case events.PlayerKilled, events.PlayerWon, events.ArrowHit, events.TextMessage:
		*out = append(*out, ev)

	case events.PlayerMoved:
		if _, err := l.graph.Cave(e.Location); err != nil {
			return err
		}
		*out = append(*out, ev)
		l.playerLocation = e.Location
		l.playerPlaced = true
		if h := l.hazards[e.Location]; h != nil {
			return l.react(h.OnPlayerEnter, depth, out)
		}

	case events.WumpusMoved:
		w, err := l.moveWumpus(e.Location)
		if err != nil {
			return err
		}
		if l.playerPlaced && e.Location == l.playerLocation {
			return l.react(w.OnPlayerEnter, depth, out)
		}

	case events.ArrowShot:
		if l.playerPlaced && e.Location == l.playerLocation {
			*out = append(*out, events.TextMessage{Text: "Ouch! Arrow got you!"}, events.PlayerKilled{})
			return nil
		}
		if h := l.hazards[e.Location]; h != nil {
			return l.react(h.OnArrowEnter, depth, out)
		}

	case events.ArrowMissed:
		for _, h := range l.allHazards() {
			if err := l.react(h.OnArrowMiss, depth, out); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("%w: level cannot resolve %v", ErrUnexpectedEvent, ev)
	}
	return nil
}

// react resolves each event of one hazard reaction in turn
func (l *Level) react(reaction func() ([]events.Event, error), depth int, out *[]events.Event) error {
	evs, err := reaction()
	if err != nil {
		return err
	}
	for _, ev := range evs {
		if err := l.resolve(ev, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

// moveWumpus re-keys the Wumpus to location. A hazard already living there is
// parked underneath it and gets its cave back once the Wumpus moves on.
func (l *Level) moveWumpus(location int) (hazards.Hazard, error) {
	w := l.wumpus()
	if w == nil {
		return nil, ErrWumpusNotPlaced
	}
	if _, err := l.graph.Cave(location); err != nil {
		return nil, err
	}

	from, _ := w.Location()
	if from == location {
		return w, nil
	}

	delete(l.hazards, from)
	if resident, ok := l.parked[from]; ok {
		l.hazards[from] = resident
		delete(l.parked, from)
	}
	if resident, ok := l.hazards[location]; ok {
		l.parked[location] = resident
	}
	l.hazards[location] = w
	w.Place(location)

	return w, nil
}

func (l *Level) wumpus() hazards.Hazard {
	for _, h := range l.hazards {
		if h.Kind() == hazards.KindWumpus {
			return h
		}
	}
	return nil
}

// allHazards returns every hazard ordered by location, the occupant of a
// cave before any hazard parked beneath it.
func (l *Level) allHazards() []hazards.Hazard {
	locations := make([]int, 0, len(l.hazards))
	for location := range l.hazards {
		locations = append(locations, location)
	}
	sort.Ints(locations)

	out := make([]hazards.Hazard, 0, len(l.hazards)+len(l.parked))
	for _, location := range locations {
		out = append(out, l.hazards[location])
		if p, ok := l.parked[location]; ok {
			out = append(out, p)
		}
	}
	return out
}

// String describes every cave and its hazard, for debugging
func (l *Level) String() string {
	var b strings.Builder
	for _, location := range l.graph.locations {
		c := l.graph.caves[location]
		hazard := "none"
		if h := l.hazards[location]; h != nil {
			hazard = string(h.Kind())
		}
		fmt.Fprintf(&b, "Cave %d, tunnels to %v. Hazards: %s\n", c.Location, c.Tunnels, hazard)
	}
	return strings.TrimRight(b.String(), "\n")
}
