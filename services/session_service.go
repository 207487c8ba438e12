package services

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/debater-coder/wumpus/events"
	"github.com/debater-coder/wumpus/game"
	"github.com/debater-coder/wumpus/models"
)

var (
	// ErrSessionNotFound is returned for an unknown or ended session
	ErrSessionNotFound = errors.New("session not found")
	// ErrGameOver is returned for moves and shots after the player died or won
	ErrGameOver = errors.New("game over")
	// ErrNotAdjacent is returned for a move to a cave without a tunnel from the current one
	ErrNotAdjacent = errors.New("no tunnel to that cave")
	// ErrStillAlive is returned when respawning a living player
	ErrStillAlive = errors.New("player is still alive")
)

// State is what a player is allowed to see of a game
type State struct {
	SessionID      string   `json:"session_id"`
	Level          string   `json:"level"`
	Location       int      `json:"location"`
	Tunnels        []int    `json:"tunnels"`
	Nearby         []string `json:"nearby"`
	Alive          bool     `json:"alive"`
	Won            bool     `json:"won"`
	Deaths         int      `json:"deaths"`
	WumpusLocation *int     `json:"wumpus_location,omitempty"` // Revealed on win
}

// Outcome is the result of one player action
type Outcome struct {
	Events  []events.Event
	State   State
	Score   *models.Score // Set on the action that won the game
	Seconds float64       // Length of the won game
}

// Session is one player's game on one level
type Session struct {
	ID        string
	Player    *models.Player
	LevelName string

	caves      []models.Cave
	level      *game.Level
	controller *game.PlayerController
	rng        *rand.Rand
	deaths     int
	startedAt  time.Time
	recorded   bool
	pending    []events.Event
	mutex      sync.Mutex
}

// SessionOption configures a SessionService
type SessionOption func(*SessionService)

// WithSeed makes every new session draw from a source seeded with seed
func WithSeed(seed int64) SessionOption {
	return func(s *SessionService) { s.seed = func() int64 { return seed } }
}

// WithClock replaces time.Now for elapsed-time scoring
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionService) { s.now = now }
}

// WithSessionLogger sets the logger used by the service and passed to each level
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *SessionService) { s.logger = logger }
}

// WithFixedSetup places hazards and the player identically in every new game
func WithFixedSetup(layout []game.Placement, spawn int) SessionOption {
	return func(s *SessionService) {
		s.layout = layout
		s.spawn = &spawn
	}
}

// SessionService hosts running games
type SessionService struct {
	sessions map[string]*Session
	catalog  *LevelCatalog
	scores   *ScoreService
	seed     func() int64
	now      func() time.Time
	logger   *slog.Logger
	layout   []game.Placement
	spawn    *int
	mutex    sync.RWMutex
}

// NewSessionService creates a new session service
func NewSessionService(catalog *LevelCatalog, scores *ScoreService, opts ...SessionOption) *SessionService {
	s := &SessionService{
		sessions: make(map[string]*Session),
		catalog:  catalog,
		scores:   scores,
		seed:     rand.Int63,
		now:      time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a game on levelName for username
func (s *SessionService) Start(username string, levelName string) (*Session, *Outcome, error) {
	player, err := s.scores.Player(username)
	if err != nil {
		return nil, nil, err
	}
	caves, err := s.catalog.Get(levelName)
	if err != nil {
		return nil, nil, err
	}

	session := &Session{
		ID:        ulid.Make().String(),
		Player:    player,
		LevelName: levelName,
		caves:     caves,
		rng:       rand.New(rand.NewSource(s.seed())),
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()
	if err := s.newGame(session); err != nil {
		return nil, nil, oops.Wrapf(err, "start %s on level %s", username, levelName)
	}

	s.mutex.Lock()
	s.sessions[session.ID] = session
	s.mutex.Unlock()

	s.logger.Info("Session started", "session", session.ID, "player", username, "level", levelName)
	outcome, err := s.outcome(session)
	return session, outcome, err
}

// newGame places fresh hazards and a fresh player in session. Caller holds the session lock.
func (s *SessionService) newGame(session *Session) error {
	opts := []game.Option{game.WithRand(session.rng), game.WithLogger(s.logger)}
	if s.layout != nil {
		opts = append(opts, game.WithLayout(s.layout))
	}
	level, err := game.NewLevel(session.caves, opts...)
	if err != nil {
		return err
	}

	session.pending = nil
	playerOpts := []game.PlayerOption{game.WithEventHook(func(ev events.Event) {
		session.pending = append(session.pending, ev)
	})}
	if s.spawn != nil {
		playerOpts = append(playerOpts, game.WithSpawn(*s.spawn))
	}
	controller, err := game.NewPlayerController(level, playerOpts...)
	if err != nil {
		return err
	}

	session.level = level
	session.controller = controller
	session.resetCounters(s.now())
	return nil
}

func (session *Session) resetCounters(now time.Time) {
	session.deaths = 0
	session.startedAt = now
	session.recorded = false
}

// Get returns a running session
func (s *SessionService) Get(id string) (*Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, oops.Wrapf(ErrSessionNotFound, "session %s", id)
	}
	return session, nil
}

// Move sends the player through a tunnel to location
func (s *SessionService) Move(id string, location int) (*Outcome, error) {
	return s.act(id, func(session *Session) error {
		if !session.controller.Cave().HasTunnel(location) {
			return oops.Wrapf(ErrNotAdjacent, "cave %d to %d", session.controller.Cave().Location, location)
		}
		return session.controller.Move(location)
	})
}

// Shoot fires an arrow aimed through rooms. The path is bent by crooked-arrow rules.
func (s *SessionService) Shoot(id string, rooms []int) (*Outcome, error) {
	return s.act(id, func(session *Session) error {
		path, err := game.CrookedPath(session.level, session.rng, rooms)
		if err != nil {
			return err
		}
		_, err = session.controller.Shoot(path)
		return err
	})
}

func (s *SessionService) act(id string, action func(*Session) error) (*Outcome, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()

	if !session.controller.Alive() || session.controller.Won() {
		return nil, ErrGameOver
	}
	session.pending = nil
	if err := action(session); err != nil {
		return nil, err
	}
	return s.outcome(session)
}

// Respawn returns a dead player to the spawn cave and counts the death
func (s *SessionService) Respawn(id string) (*Outcome, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.controller.Won() {
		return nil, ErrGameOver
	}
	if session.controller.Alive() {
		return nil, ErrStillAlive
	}
	session.deaths++
	session.pending = nil
	if err := session.controller.Respawn(); err != nil {
		return nil, err
	}
	return s.outcome(session)
}

// Replay starts the next game of a session. With sameSetup the player
// returns to the spawn cave of the current level, otherwise hazards and
// spawn are drawn anew.
func (s *SessionService) Replay(id string, sameSetup bool) (*Outcome, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()

	if !sameSetup {
		if err := s.newGame(session); err != nil {
			return nil, err
		}
		return s.outcome(session)
	}

	session.pending = nil
	if err := session.controller.Respawn(); err != nil {
		return nil, err
	}
	session.resetCounters(s.now())
	return s.outcome(session)
}

// State returns the current state of a session
func (s *SessionService) State(id string) (State, error) {
	session, err := s.Get(id)
	if err != nil {
		return State{}, err
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()
	return session.state()
}

// End stops a session
func (s *SessionService) End(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.sessions[id]; exists {
		delete(s.sessions, id)
		s.logger.Info("Session ended", "session", id)
	}
}

// outcome collects the events of the last action and records a fresh win.
// Caller holds the session lock.
func (s *SessionService) outcome(session *Session) (*Outcome, error) {
	out := &Outcome{Events: session.pending}
	session.pending = nil

	if session.controller.Won() && !session.recorded {
		elapsed := s.now().Sub(session.startedAt)
		best, err := s.scores.Record(session.Player.ID, session.LevelName, session.deaths, elapsed)
		if err != nil {
			return nil, oops.Wrapf(err, "record win of session %s", session.ID)
		}
		session.recorded = true
		out.Score = best
		out.Seconds = elapsed.Seconds()
		s.logger.Info("Wumpus slain", "session", session.ID, "player", session.Player.Username,
			"deaths", session.deaths, "seconds", elapsed.Seconds())
	}

	state, err := session.state()
	if err != nil {
		return nil, err
	}
	out.State = state
	return out, nil
}

func (session *Session) state() (State, error) {
	cave := session.controller.Cave()
	nearby, err := session.controller.NearbyMessages()
	if err != nil {
		return State{}, err
	}

	state := State{
		SessionID: session.ID,
		Level:     session.LevelName,
		Location:  cave.Location,
		Tunnels:   append([]int(nil), cave.Tunnels...),
		Nearby:    nearby,
		Alive:     session.controller.Alive(),
		Won:       session.controller.Won(),
		Deaths:    session.deaths,
	}
	if state.Won {
		location, err := session.level.WumpusLocation()
		if err != nil {
			return State{}, err
		}
		state.WumpusLocation = &location
	}
	return state, nil
}
