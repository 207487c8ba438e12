package hazards

import "github.com/debater-coder/wumpus/events"

// BottomlessPit kills the player on entry and ignores arrows
type BottomlessPit struct {
	base
}

// NewBottomlessPit creates an unplaced pit
func NewBottomlessPit(graph Graph) *BottomlessPit {
	return &BottomlessPit{base: base{graph: graph}}
}

func (p *BottomlessPit) Kind() Kind { return KindPit }

func (p *BottomlessPit) ProximityMessage() string { return "I feel a draft." }

func (p *BottomlessPit) OnPlayerEnter() ([]events.Event, error) {
	return []events.Event{
		events.PlayerKilled{},
		events.TextMessage{Text: "YIIIEEEE... fell in pit!"},
	}, nil
}
