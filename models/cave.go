package models

// Cave is a node of the level graph. Tunnels lists the locations of the
// adjacent caves in the order the level map declares them.
type Cave struct {
	Location int       `json:"location"`
	Tunnels  []int     `json:"tunnels"`
	Coords   []float64 `json:"coords,omitempty"` // Only used by renderers
}

// HasTunnel reports whether location is adjacent to the cave
func (c Cave) HasTunnel(location int) bool {
	for _, t := range c.Tunnels {
		if t == location {
			return true
		}
	}
	return false
}

// LevelMap is a named, stored level graph
type LevelMap struct {
	Name  string `json:"name"`
	Caves []Cave `json:"caves"`
}
