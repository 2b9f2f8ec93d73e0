package strategies

import (
	"github.com/oddslab/backcourt/market"
	"github.com/oddslab/backcourt/sim"
)

// LateGameUnderdog buys the underdog moneyline late in close games when the
// market is pessimistic, then lets the position ride to settlement. The
// underdog is whichever side has the lowest effective execution price.
type LateGameUnderdog struct {
	MaxPrice         float64 // entry must be at most this cheap
	MaxTimeRemaining float64 // minutes
	MaxScoreDiff     float64
	Stake            float64
}

func NewLateGameUnderdog(p Params) *LateGameUnderdog {
	return &LateGameUnderdog{
		MaxPrice:         p.Get("max_price", 0.15),
		MaxTimeRemaining: p.Get("max_time_remaining", 5.0),
		MaxScoreDiff:     p.Get("max_score_diff", 6.0),
		Stake:            p.Get("stake", 100.0),
	}
}

func (s *LateGameUnderdog) Name() string { return "late-game-underdog" }
func (s *LateGameUnderdog) Reset()       {}

func (s *LateGameUnderdog) OnState(state *market.GameState, view sim.View) []sim.Intent {
	var underdogID string
	var underdogPrice float64

	for _, m := range state.Markets {
		if !tradable(m) {
			continue
		}
		p := effectiveOpenPrice(m)
		if p == nil || *p <= 0 {
			continue
		}
		if underdogID == "" || *p < underdogPrice {
			underdogID = m.ID
			underdogPrice = *p
		}
	}
	if underdogID == "" {
		return nil
	}

	if state.TimeRemaining >= s.MaxTimeRemaining ||
		float64(state.ScoreDiff) > s.MaxScoreDiff ||
		underdogPrice > s.MaxPrice ||
		hasRisk(view, underdogID) {
		return nil
	}

	return []sim.Intent{{MarketID: underdogID, Action: sim.ActionOpen, Size: s.Stake}}
}
