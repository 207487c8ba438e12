package game

import (
	"fmt"

	"github.com/debater-coder/wumpus/events"
	"github.com/debater-coder/wumpus/models"
)

// PlayerController turns the player's intents into events for the level and
// updates the player's state from what the level sends back.
type PlayerController struct {
	level       *Level
	cave        models.Cave
	initialCave models.Cave
	alive       bool
	win         bool

	onMessage func(string)
	onEvent   func(events.Event)
}

type playerConfig struct {
	spawn     *int
	onMessage func(string)
	onEvent   func(events.Event)
}

// PlayerOption configures a PlayerController
type PlayerOption func(*playerConfig)

// WithSpawn starts the player in the given cave instead of a random empty one
func WithSpawn(location int) PlayerOption {
	return func(c *playerConfig) { c.spawn = &location }
}

// WithMessageHook receives the text of every TextMessage event
func WithMessageHook(hook func(string)) PlayerOption {
	return func(c *playerConfig) { c.onMessage = hook }
}

// WithEventHook receives every event the controller processes, in order
func WithEventHook(hook func(events.Event)) PlayerOption {
	return func(c *playerConfig) { c.onEvent = hook }
}

// NewPlayerController spawns a player in level. The spawn cave is fixed for
// the controller's lifetime and is where Respawn returns to.
func NewPlayerController(level *Level, opts ...PlayerOption) (*PlayerController, error) {
	var cfg playerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		spawn models.Cave
		err   error
	)
	if cfg.spawn != nil {
		spawn, err = level.Cave(*cfg.spawn)
	} else {
		spawn, err = level.ChooseEmptyCave()
	}
	if err != nil {
		return nil, fmt.Errorf("spawn player: %w", err)
	}

	p := &PlayerController{
		level:       level,
		cave:        spawn,
		initialCave: spawn,
		alive:       true,
		onMessage:   cfg.onMessage,
		onEvent:     cfg.onEvent,
	}
	if _, err := p.emitToLevel(events.PlayerMoved{Location: spawn.Location}); err != nil {
		return nil, err
	}
	return p, nil
}

// Level returns the level the player is in
func (p *PlayerController) Level() *Level { return p.level }

// Cave returns the player's current cave
func (p *PlayerController) Cave() models.Cave { return p.cave }

// InitialCave returns the spawn cave
func (p *PlayerController) InitialCave() models.Cave { return p.initialCave }

// Alive reports whether the player is alive
func (p *PlayerController) Alive() bool { return p.alive }

// Won reports whether the player has slain the Wumpus
func (p *PlayerController) Won() bool { return p.win }

// Move sends the player to location. Adjacency is not checked.
func (p *PlayerController) Move(location int) error {
	_, err := p.emitToLevel(events.PlayerMoved{Location: location})
	return err
}

// Shoot fires one arrow through locations in order. The arrow stops at the
// first room where it hits something; if it never does, the level is told the
// arrow missed. Shoot reports whether the arrow hit.
func (p *PlayerController) Shoot(locations []int) (bool, error) {
	for _, location := range locations {
		hit, err := p.emitToLevel(events.ArrowShot{Location: location})
		if err != nil {
			return false, err
		}
		if hit {
			return true, nil
		}
	}

	_, err := p.emitToLevel(events.ArrowMissed{})
	return false, err
}

// Respawn returns the player to the spawn cave alive and without a win.
// Entering the spawn cave is replayed, so a Wumpus waiting there still fires.
func (p *PlayerController) Respawn() error {
	p.cave = p.initialCave
	if _, err := p.emitToLevel(events.PlayerMoved{Location: p.initialCave.Location}); err != nil {
		return err
	}
	p.alive = true
	p.win = false
	return nil
}

// NearbyMessages returns the proximity message of each hazard in a cave
// adjacent to the player, in tunnel order.
func (p *PlayerController) NearbyMessages() ([]string, error) {
	messages := []string{}
	for _, location := range p.cave.Tunnels {
		cave, err := p.level.Cave(location)
		if err != nil {
			return nil, err
		}
		if h := p.level.HazardInCave(cave); h != nil {
			messages = append(messages, h.ProximityMessage())
		}
	}
	return messages, nil
}

// emitToLevel submits ev to the level and applies the resulting events in
// order. It reports whether an ArrowHit came back.
func (p *PlayerController) emitToLevel(ev events.Event) (bool, error) {
	resolved, err := p.level.HandleEvent(ev)
	if err != nil {
		return false, err
	}

	hit := false
	for _, e := range resolved {
		if p.onEvent != nil {
			p.onEvent(e)
		}
		switch e := e.(type) {
		case events.PlayerKilled:
			p.alive = false
		case events.PlayerWon:
			p.win = true
		case events.PlayerMoved:
			cave, err := p.level.Cave(e.Location)
			if err != nil {
				return hit, err
			}
			p.cave = cave
		case events.ArrowHit:
			hit = true
		case events.TextMessage:
			if p.onMessage != nil {
				p.onMessage(e.Text)
			}
		default:
			return hit, fmt.Errorf("%w: player cannot handle %v", ErrUnexpectedEvent, e)
		}
	}
	return hit, nil
}
