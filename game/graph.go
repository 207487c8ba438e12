package game

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/debater-coder/wumpus/models"
)

// caveRecord mirrors one level-map entry. Pointers tell a missing field
// apart from a zero value.
type caveRecord struct {
	Location *int   `json:"location"`
	Tunnels  *[]int `json:"tunnels"`
}

// ParseLevelMap decodes a level map: a JSON array of
// {"location": int, "tunnels": [int, ...]} records. Unknown fields are ignored.
func ParseLevelMap(data []byte) ([]models.Cave, error) {
	var records []caveRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevelMap, err)
	}

	caves := make([]models.Cave, 0, len(records))
	for i, r := range records {
		if r.Location == nil {
			return nil, fmt.Errorf("%w: record %d has no location", ErrInvalidLevelMap, i)
		}
		if r.Tunnels == nil {
			return nil, fmt.Errorf("%w: cave %d has no tunnels", ErrInvalidLevelMap, *r.Location)
		}
		tunnels := make([]int, len(*r.Tunnels))
		copy(tunnels, *r.Tunnels)
		caves = append(caves, models.Cave{Location: *r.Location, Tunnels: tunnels})
	}
	if _, err := NewCaveGraph(caves); err != nil {
		return nil, err
	}
	return caves, nil
}

// CaveGraph is the immutable location -> cave mapping of a level
type CaveGraph struct {
	caves     map[int]models.Cave
	locations []int
}

// NewCaveGraph validates caves and indexes them by location. Locations must be
// unique and every tunnel must lead to a cave of the graph.
func NewCaveGraph(caves []models.Cave) (*CaveGraph, error) {
	if len(caves) == 0 {
		return nil, fmt.Errorf("%w: no caves", ErrInvalidLevelMap)
	}

	seen := mapset.New[int]()
	for _, c := range caves {
		if seen.Has(c.Location) {
			return nil, fmt.Errorf("%w: duplicate cave %d", ErrInvalidLevelMap, c.Location)
		}
		seen.Put(c.Location)
	}

	g := &CaveGraph{
		caves:     make(map[int]models.Cave, len(caves)),
		locations: make([]int, 0, len(caves)),
	}
	for _, c := range caves {
		for _, t := range c.Tunnels {
			if !seen.Has(t) {
				return nil, fmt.Errorf("%w: cave %d has a tunnel to unknown cave %d", ErrInvalidLevelMap, c.Location, t)
			}
		}
		g.caves[c.Location] = c
		g.locations = append(g.locations, c.Location)
	}
	sort.Ints(g.locations)

	return g, nil
}

// Cave looks up a cave by location
func (g *CaveGraph) Cave(location int) (models.Cave, error) {
	c, ok := g.caves[location]
	if !ok {
		return models.Cave{}, fmt.Errorf("%w: %d", ErrCaveNotFound, location)
	}
	return c, nil
}

// Locations returns all cave locations in ascending order
func (g *CaveGraph) Locations() []int {
	out := make([]int, len(g.locations))
	copy(out, g.locations)
	return out
}

// Len returns the number of caves
func (g *CaveGraph) Len() int {
	return len(g.locations)
}

// Reachable returns how many caves can be reached from the cave at from by
// following tunnels, from included.
func (g *CaveGraph) Reachable(from int) int {
	if _, ok := g.caves[from]; !ok {
		return 0
	}

	visited := mapset.New[int]()
	stack := []int{from}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited.Has(current) {
			continue
		}
		visited.Put(current)
		for _, t := range g.caves[current].Tunnels {
			if !visited.Has(t) {
				stack = append(stack, t)
			}
		}
	}
	return visited.Size()
}

// Connected reports whether every cave is reachable from the lowest location
func (g *CaveGraph) Connected() bool {
	return g.Reachable(g.locations[0]) == len(g.locations)
}
