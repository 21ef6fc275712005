package strategy

import (
	"context"

	"holdem-arena/internal/game"
)

// Station never folds: it checks when free and calls any bet. A useful
// baseline opponent because it realises every hand's showdown equity.
type Station struct{}

// NewStation creates a calling station.
func NewStation() *Station {
	return &Station{}
}

func (Station) Decide(_ context.Context, s game.Situation) (game.ActionResponse, error) {
	if s.ToCall == 0 {
		return check()
	}
	return call(min(s.ToCall, s.Chips))
}
