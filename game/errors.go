package game

import "errors"

var (
	// ErrInvalidLevelMap is returned for malformed or incomplete level-map input
	ErrInvalidLevelMap = errors.New("invalid level map")
	// ErrCaveNotFound is returned when a location is not part of the cave graph
	ErrCaveNotFound = errors.New("cave not found")
	// ErrWumpusNotPlaced is returned when the level holds no Wumpus
	ErrWumpusNotPlaced = errors.New("wumpus not placed")
	// ErrNoEmptyCave is returned when every cave already holds a hazard
	ErrNoEmptyCave = errors.New("no empty cave")
	// ErrInvalidLayout is returned for an explicit hazard layout that breaks placement rules
	ErrInvalidLayout = errors.New("invalid hazard layout")
	// ErrUnexpectedEvent is returned when an event reaches a component that has no rule for it
	ErrUnexpectedEvent = errors.New("unexpected event")
	// ErrCausalChainTooDeep is returned when resolving one event nests deeper than MaxCausalDepth
	ErrCausalChainTooDeep = errors.New("causal chain too deep")
)
