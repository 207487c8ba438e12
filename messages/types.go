package messages

import (
	"github.com/debater-coder/wumpus/events"
	"github.com/debater-coder/wumpus/models"
)

// MessageType defines the type of message being sent
type MessageType string

const (
	// Client to server
	MessageTypeLogin   MessageType = "login"
	MessageTypeStart   MessageType = "start"
	MessageTypeMove    MessageType = "move"
	MessageTypeShoot   MessageType = "shoot"
	MessageTypeRespawn MessageType = "respawn"
	MessageTypeReplay  MessageType = "replay"
	MessageTypeScores  MessageType = "scores"

	// Server to client
	MessageTypeLoginSuccess MessageType = "login_success"
	MessageTypeState        MessageType = "state"
	MessageTypeEvents       MessageType = "events"
	MessageTypeScore        MessageType = "score"
	MessageTypeAnnounce     MessageType = "announce"
	MessageTypeError        MessageType = "error"
)

// Error codes
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnknownMessageType = "UNKNOWN_MESSAGE_TYPE"
	CodeNotLoggedIn        = "NOT_LOGGED_IN"
	CodeNoGame             = "NO_GAME"
	CodeLoginFailed        = "LOGIN_FAILED"
	CodeStartFailed        = "START_FAILED"
	CodeMoveFailed         = "MOVE_FAILED"
	CodeShootFailed        = "SHOOT_FAILED"
	CodeRespawnFailed      = "RESPAWN_FAILED"
	CodeReplayFailed       = "REPLAY_FAILED"
	CodeScoresFailed       = "SCORES_FAILED"
)

// BaseMessage is the base structure for all messages
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// LoginMessage represents a login request
type LoginMessage struct {
	Username string `json:"username"`
}

// LoginSuccessMessage represents a successful login response
type LoginSuccessMessage struct {
	PlayerID string   `json:"player_id"`
	Levels   []string `json:"levels"`
	Message  string   `json:"message"`
}

// StartMessage asks for a new game. An empty level means the server default.
type StartMessage struct {
	Level string `json:"level"`
}

// MoveMessage represents a player movement request
type MoveMessage struct {
	Location int `json:"location"`
}

// ShootMessage aims an arrow through up to five rooms
type ShootMessage struct {
	Rooms []int `json:"rooms"`
}

// ReplayMessage asks for another game in the same session
type ReplayMessage struct {
	SameSetup bool `json:"same_setup"`
}

// ScoresMessage asks for the leaderboard of a level
type ScoresMessage struct {
	Level string `json:"level"`
	Limit int    `json:"limit,omitempty"`
}

// EventMessage is one resolved game event
type EventMessage struct {
	Type     events.EventType `json:"type"`
	Location *int             `json:"location,omitempty"`
	Text     string           `json:"text,omitempty"`
}

// ScoreMessage carries the player's best score after a win, or a leaderboard
type ScoreMessage struct {
	Level  string          `json:"level"`
	Best   *models.Score   `json:"best,omitempty"`
	Scores []*models.Score `json:"scores,omitempty"`
}

// AnnounceMessage tells everyone that someone slew the Wumpus
type AnnounceMessage struct {
	Username string  `json:"username"`
	Level    string  `json:"level"`
	Deaths   int     `json:"deaths"`
	Seconds  float64 `json:"seconds"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FromEvent encodes a game event for the wire
func FromEvent(ev events.Event) EventMessage {
	msg := EventMessage{Type: ev.Type()}
	switch e := ev.(type) {
	case events.PlayerMoved:
		msg.Location = &e.Location
	case events.ArrowShot:
		msg.Location = &e.Location
	case events.WumpusMoved:
		msg.Location = &e.Location
	case events.TextMessage:
		msg.Text = e.Text
	}
	return msg
}

// FromEvents encodes events in order
func FromEvents(evs []events.Event) []EventMessage {
	out := make([]EventMessage, 0, len(evs))
	for _, ev := range evs {
		out = append(out, FromEvent(ev))
	}
	return out
}

// NewError builds an error message
func NewError(code string, err error) BaseMessage {
	return BaseMessage{
		Type:    MessageTypeError,
		Payload: ErrorMessage{Code: code, Message: err.Error()},
	}
}
