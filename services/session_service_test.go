package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debater-coder/wumpus/events"
	"github.com/debater-coder/wumpus/game"
)

func newSessionService(t *testing.T) *SessionService {
	t.Helper()
	store := newStore(t)
	clock := &fakeClock{now: time.Unix(1700000000, 0), step: 10 * time.Second}
	return NewSessionService(NewLevelCatalog(store), NewScoreService(store),
		WithSeed(1), WithClock(clock.Now), WithFixedSetup(classicLayout, 18))
}

func TestSessionService_Start(t *testing.T) {
	s := newSessionService(t)

	session, outcome, err := s.Start("yob", "01")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "yob", session.Player.Username)
	assert.Equal(t, []events.Event{events.PlayerMoved{Location: 18}}, outcome.Events)
	assert.Nil(t, outcome.Score)

	state := outcome.State
	assert.Equal(t, session.ID, state.SessionID)
	assert.Equal(t, "01", state.Level)
	assert.Equal(t, 18, state.Location)
	assert.Equal(t, []int{9, 17, 19}, state.Tunnels)
	assert.Equal(t, []string{"I feel a draft.", "I smell a Wumpus."}, state.Nearby)
	assert.True(t, state.Alive)
	assert.False(t, state.Won)
	assert.Nil(t, state.WumpusLocation)

	_, _, err = s.Start("yob", "nope")
	assert.ErrorIs(t, err, ErrLevelNotFound)
}

func TestSessionService_DieRespawnWin(t *testing.T) {
	s := newSessionService(t)
	session, _, err := s.Start("yob", "01")
	require.NoError(t, err)

	_, err = s.Move(session.ID, 20)
	assert.ErrorIs(t, err, ErrNotAdjacent)
	_, err = s.Respawn(session.ID)
	assert.ErrorIs(t, err, ErrStillAlive)

	outcome, err := s.Move(session.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, []events.Event{
		events.PlayerMoved{Location: 9},
		events.PlayerKilled{},
		events.TextMessage{Text: "YIIIEEEE... fell in pit!"},
	}, outcome.Events)
	assert.False(t, outcome.State.Alive)

	_, err = s.Move(session.ID, 8)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = s.Shoot(session.ID, []int{8})
	assert.ErrorIs(t, err, ErrGameOver)

	outcome, err = s.Respawn(session.ID)
	require.NoError(t, err)
	assert.True(t, outcome.State.Alive)
	assert.Equal(t, 18, outcome.State.Location)
	assert.Equal(t, 1, outcome.State.Deaths)

	outcome, err = s.Shoot(session.ID, []int{17})
	require.NoError(t, err)
	assert.True(t, events.Contains(outcome.Events, events.TypePlayerWon))
	assert.True(t, outcome.State.Won)
	require.NotNil(t, outcome.State.WumpusLocation)
	assert.Equal(t, 17, *outcome.State.WumpusLocation)
	require.NotNil(t, outcome.Score)
	assert.Equal(t, 1, outcome.Score.Deaths)
	assert.Equal(t, 10.0, outcome.Score.Seconds)

	_, err = s.Shoot(session.ID, []int{17})
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = s.Respawn(session.ID)
	assert.ErrorIs(t, err, ErrGameOver)

	state, err := s.State(session.ID)
	require.NoError(t, err)
	assert.True(t, state.Won)
}

func TestSessionService_Replay(t *testing.T) {
	s := newSessionService(t)
	session, _, err := s.Start("yob", "01")
	require.NoError(t, err)

	_, err = s.Move(session.ID, 9)
	require.NoError(t, err)
	_, err = s.Respawn(session.ID)
	require.NoError(t, err)
	outcome, err := s.Shoot(session.ID, []int{17})
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Score.Deaths)

	outcome, err = s.Replay(session.ID, true)
	require.NoError(t, err)
	assert.True(t, outcome.State.Alive)
	assert.False(t, outcome.State.Won)
	assert.Equal(t, 0, outcome.State.Deaths)
	assert.Equal(t, 18, outcome.State.Location)

	outcome, err = s.Shoot(session.ID, []int{17})
	require.NoError(t, err)
	require.NotNil(t, outcome.Score)
	assert.Equal(t, 0, outcome.Score.Deaths, "best deaths improves")
	assert.Equal(t, 10.0, outcome.Score.Seconds)

	outcome, err = s.Replay(session.ID, false)
	require.NoError(t, err)
	assert.Equal(t, []events.Event{events.PlayerMoved{Location: 18}}, outcome.Events)
	assert.True(t, outcome.State.Alive)
	assert.Equal(t, 0, outcome.State.Deaths)
}

func TestSessionService_Shoot(t *testing.T) {
	s := newSessionService(t)
	session, _, err := s.Start("yob", "01")
	require.NoError(t, err)

	_, err = s.Shoot(session.ID, nil)
	assert.ErrorIs(t, err, game.ErrCrookedArrow)
	_, err = s.Shoot(session.ID, []int{1, 2, 3, 4, 5, 6})
	assert.ErrorIs(t, err, game.ErrCrookedArrow)

	outcome, err := s.Shoot(session.ID, []int{19, 20, 13})
	require.NoError(t, err)
	assert.False(t, events.Contains(outcome.Events, events.TypeArrowHit))
	assert.False(t, outcome.State.Won)
	assert.Nil(t, outcome.Score)
}

func TestSessionService_End(t *testing.T) {
	s := newSessionService(t)
	session, _, err := s.Start("yob", "01")
	require.NoError(t, err)

	s.End(session.ID)
	s.End(session.ID)

	_, err = s.State(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Move(session.ID, 19)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_RandomSetup(t *testing.T) {
	store := newStore(t)
	s := NewSessionService(NewLevelCatalog(store), NewScoreService(store), WithSeed(7))

	a, first, err := s.Start("yob", "02")
	require.NoError(t, err)
	b, second, err := s.Start("ahl", "02")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, first.State.Location, second.State.Location, "same seed, same spawn")
	assert.True(t, first.State.Alive)
	assert.Len(t, first.State.Tunnels, 4)
}
