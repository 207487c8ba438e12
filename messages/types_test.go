package messages

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debater-coder/wumpus/events"
)

func TestFromEvents(t *testing.T) {
	msgs := FromEvents([]events.Event{
		events.PlayerMoved{Location: 9},
		events.PlayerKilled{},
		events.TextMessage{Text: "YIIIEEEE... fell in pit!"},
	})

	data, err := json.Marshal(msgs)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type": "player_moved", "location": 9},
		{"type": "player_killed"},
		{"type": "text_message", "text": "YIIIEEEE... fell in pit!"}
	]`, string(data))
}

func TestFromEvent_LocationZero(t *testing.T) {
	data, err := json.Marshal(FromEvent(events.WumpusMoved{Location: 0}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "wumpus_moved", "location": 0}`, string(data))
}

func TestNewError(t *testing.T) {
	data, err := json.Marshal(NewError(CodeMoveFailed, errors.New("no tunnel to that cave")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "error", "payload": {"code": "MOVE_FAILED", "message": "no tunnel to that cave"}}`, string(data))
}
