// Package events defines the values exchanged between hazards, the level and
// the player controller. Hazards never call into the level or the player;
// they return events and the level resolves them.
package events

import "fmt"

// EventType identifies the kind of event
type EventType string

const (
	TypePlayerMoved  EventType = "player_moved"
	TypePlayerKilled EventType = "player_killed"
	TypePlayerWon    EventType = "player_won"
	TypeArrowShot    EventType = "arrow_shot"
	TypeArrowHit     EventType = "arrow_hit"
	TypeArrowMissed  EventType = "arrow_missed"
	TypeWumpusMoved  EventType = "wumpus_moved"
	TypeTextMessage  EventType = "text_message"
)

// Event is one of the eight event structs declared in this package.
// The set is closed: isEvent keeps other packages from adding members.
type Event interface {
	Type() EventType
	isEvent()
}

// PlayerMoved is emitted when the player arrives in a cave
type PlayerMoved struct {
	Location int
}

// PlayerKilled is emitted when the player dies
type PlayerKilled struct{}

// PlayerWon is emitted when the Wumpus is slain
type PlayerWon struct{}

// ArrowShot is emitted for each room an arrow passes through
type ArrowShot struct {
	Location int
}

// ArrowHit is emitted when an arrow strikes something and stops
type ArrowHit struct{}

// ArrowMissed is emitted once when an arrow ends its path without a hit
type ArrowMissed struct{}

// WumpusMoved is emitted when the Wumpus relocates
type WumpusMoved struct {
	Location int
}

// TextMessage carries narrative text for the player
type TextMessage struct {
	Text string
}

func (PlayerMoved) Type() EventType { return TypePlayerMoved }
func (PlayerKilled) Type() EventType { return TypePlayerKilled }
func (PlayerWon) Type() EventType { return TypePlayerWon }
func (ArrowShot) Type() EventType { return TypeArrowShot }
func (ArrowHit) Type() EventType { return TypeArrowHit }
func (ArrowMissed) Type() EventType { return TypeArrowMissed }
func (WumpusMoved) Type() EventType { return TypeWumpusMoved }
func (TextMessage) Type() EventType { return TypeTextMessage }

func (PlayerMoved) isEvent() {}
func (PlayerKilled) isEvent() {}
func (PlayerWon) isEvent() {}
func (ArrowShot) isEvent() {}
func (ArrowHit) isEvent() {}
func (ArrowMissed) isEvent() {}
func (WumpusMoved) isEvent() {}
func (TextMessage) isEvent() {}

func (e PlayerMoved) String() string { return fmt.Sprintf("PlayerMoved(%d)", e.Location) }
func (PlayerKilled) String() string { return "PlayerKilled" }
func (PlayerWon) String() string { return "PlayerWon" }
func (e ArrowShot) String() string { return fmt.Sprintf("ArrowShot(%d)", e.Location) }
func (ArrowHit) String() string { return "ArrowHit" }
func (ArrowMissed) String() string { return "ArrowMissed" }
func (e WumpusMoved) String() string { return fmt.Sprintf("WumpusMoved(%d)", e.Location) }
func (e TextMessage) String() string { return fmt.Sprintf("TextMessage(%q)", e.Text) }

// Contains reports whether any event in evs has type t
func Contains(evs []Event, t EventType) bool {
	for _, ev := range evs {
		if ev.Type() == t {
			return true
		}
	}
	return false
}
