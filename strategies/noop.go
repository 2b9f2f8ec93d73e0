package strategies

import (
	"github.com/oddslab/backcourt/market"
	"github.com/oddslab/backcourt/sim"
)

// Noop does nothing. Baseline for runner wiring and fee-free replays.
type Noop struct{}

func (Noop) Name() string { return "noop" }
func (Noop) Reset()       {}

func (Noop) OnState(*market.GameState, sim.View) []sim.Intent { return nil }

// OpenOnce opens the first priced moneyline it sees and then goes quiet.
// A wiring test for the full open/settle path, not a real policy.
type OpenOnce struct {
	Stake float64

	opened bool
}

func NewOpenOnce(p Params) *OpenOnce {
	return &OpenOnce{Stake: p.Get("stake", 100)}
}

func (s *OpenOnce) Name() string { return "open-once" }
func (s *OpenOnce) Reset()       { s.opened = false }

func (s *OpenOnce) OnState(state *market.GameState, view sim.View) []sim.Intent {
	if s.opened {
		return nil
	}
	for _, m := range state.Markets {
		if !tradable(m) {
			continue
		}
		if p := effectiveOpenPrice(m); p == nil || *p <= 0 {
			continue
		}
		s.opened = true
		return []sim.Intent{{MarketID: m.ID, Action: sim.ActionOpen, Size: s.Stake}}
	}
	return nil
}
