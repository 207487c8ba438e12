package models

import "time"

// Player is a registered player of the game server
type Player struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Wins      int       `json:"wins"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Score is a player's best result on a level. Deaths and Seconds are kept
// independently, so the best of each may come from different games.
type Score struct {
	PlayerID  string    `json:"player_id"`
	Username  string    `json:"username,omitempty"` // Filled in on read
	Level     string    `json:"level"`
	Deaths    int       `json:"deaths"`
	Seconds   float64   `json:"seconds"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Improve merges other into s keeping the lower value of each field.
// It reports whether anything changed.
func (s *Score) Improve(other Score) bool {
	changed := false
	if other.Deaths < s.Deaths {
		s.Deaths = other.Deaths
		changed = true
	}
	if other.Seconds < s.Seconds {
		s.Seconds = other.Seconds
		changed = true
	}
	return changed
}
