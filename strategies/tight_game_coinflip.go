package strategies

import (
	"github.com/oddslab/backcourt/market"
	"github.com/oddslab/backcourt/sim"
)

// TightGameCoinflip trades crunch-time coin flips: the game must be late
// and close, and both moneylines must be priced inside a band around 0.5.
// It buys the cheaper side.
type TightGameCoinflip struct {
	CrunchQuarter int     // quarter must be at least this
	CrunchTime    float64 // minutes remaining at most this
	CloseScoreMax float64

	PriceLow  float64 // coin-flip band
	PriceHigh float64

	Stake float64
}

func NewTightGameCoinflip(p Params) *TightGameCoinflip {
	return &TightGameCoinflip{
		CrunchQuarter: int(p.Get("q_crunch", 4)),
		CrunchTime:    p.Get("t_crunch", 4.0),
		CloseScoreMax: p.Get("close_score_max", 5.0),
		PriceLow:      p.Get("p_low", 0.35),
		PriceHigh:     p.Get("p_high", 0.65),
		Stake:         p.Get("stake", 25.0),
	}
}

func (s *TightGameCoinflip) Name() string { return "tight-game-coinflip" }
func (s *TightGameCoinflip) Reset()       {}

func (s *TightGameCoinflip) OnState(state *market.GameState, view sim.View) []sim.Intent {
	if state.Quarter < s.CrunchQuarter || state.TimeRemaining > s.CrunchTime {
		return nil
	}
	if float64(state.ScoreDiff) > s.CloseScoreMax {
		return nil
	}

	// Both sides must look roughly like a coin flip.
	type candidate struct {
		id    string
		price float64
	}
	var candidates []candidate

	for _, m := range state.Markets {
		if !tradable(m) {
			continue
		}
		p := effectiveOpenPrice(m)
		if p == nil || *p < s.PriceLow || *p > s.PriceHigh {
			continue
		}
		candidates = append(candidates, candidate{id: m.ID, price: *p})
	}
	if len(candidates) < 2 {
		return nil
	}

	cheapest := candidates[0]
	for _, c := range candidates[1:] {
		if c.price < cheapest.price {
			cheapest = c
		}
	}

	if hasRisk(view, cheapest.id) {
		return nil
	}
	return []sim.Intent{{MarketID: cheapest.id, Action: sim.ActionOpen, Size: s.Stake}}
}
