package game

import (
	"errors"
	"fmt"

	"github.com/debater-coder/wumpus/hazards"
)

// MaxArrowRooms is how many rooms one arrow can be aimed through
const MaxArrowRooms = 5

// ErrCrookedArrow is returned for an arrow aimed through too few or too many rooms
var ErrCrookedArrow = errors.New("crooked arrows aren't that crooked")

// CrookedPath shapes the rooms a player aims an arrow through into the path
// it actually flies. Every room after the first must be a tunnel of the room
// before it; where it is not, the arrow veers down a random tunnel instead.
// The first room is taken as given.
func CrookedPath(level *Level, rng hazards.Rand, rooms []int) ([]int, error) {
	if len(rooms) < 1 || len(rooms) > MaxArrowRooms {
		return nil, fmt.Errorf("%w: %d rooms", ErrCrookedArrow, len(rooms))
	}

	path := []int{rooms[0]}
	for _, next := range rooms[1:] {
		prev, err := level.Cave(path[len(path)-1])
		if err != nil {
			return nil, err
		}
		if !prev.HasTunnel(next) && len(prev.Tunnels) > 0 {
			next = prev.Tunnels[rng.Intn(len(prev.Tunnels))]
		}
		path = append(path, next)
	}
	return path, nil
}
