package strategies

import (
	"math"

	"github.com/oddslab/backcourt/indicators"
	"github.com/oddslab/backcourt/market"
	"github.com/oddslab/backcourt/sim"
)

// MicroMomentum follows slow, sustained price drifts while the scoreboard
// stays quiet, entering only while the drifting side is still cheap. Each
// market gets a rolling window of (price, score diff) pairs; a full window
// with enough upward drift and little scoreboard movement is a signal.
type MicroMomentum struct {
	WindowStates       int
	MinTrendMove       float64
	MaxScoreDiffChange float64

	PriceMin      float64
	PriceMax      float64
	EntryMaxPrice float64

	Stake float64

	prices map[string]*indicators.Window
	scores map[string]*indicators.Window
}

func NewMicroMomentum(p Params) *MicroMomentum {
	s := &MicroMomentum{
		WindowStates:       int(p.Get("window_states", 10)),
		MinTrendMove:       p.Get("min_trend_move", 0.07),
		MaxScoreDiffChange: p.Get("max_score_diff_change", 3.0),
		PriceMin:           p.Get("price_min", 0.05),
		PriceMax:           p.Get("price_max", 0.40),
		Stake:              p.Get("stake", 25.0),
	}
	s.EntryMaxPrice = p.Get("entry_max_price", s.PriceMax)
	s.Reset()
	return s
}

func (s *MicroMomentum) Name() string { return "micro-momentum" }

func (s *MicroMomentum) Reset() {
	s.prices = make(map[string]*indicators.Window)
	s.scores = make(map[string]*indicators.Window)
}

func (s *MicroMomentum) OnState(state *market.GameState, view sim.View) []sim.Intent {
	scoreDiff := float64(state.ScoreDiff)

	// Record this tick, then look for the strongest qualifying drift.
	var bestID string
	var bestDrift float64

	for _, m := range state.Markets {
		if !tradable(m) {
			continue
		}
		p := s.bandedPrice(m)
		if p == nil {
			continue
		}

		pw, ok := s.prices[m.ID]
		if !ok {
			pw = indicators.NewWindow(s.WindowStates)
			s.prices[m.ID] = pw
			s.scores[m.ID] = indicators.NewWindow(s.WindowStates)
		}
		pw.Update(*p)
		s.scores[m.ID].Update(scoreDiff)

		if !pw.Ready() {
			continue
		}

		drift := pw.Drift()
		if drift <= 0 || drift < s.MinTrendMove {
			continue
		}
		if math.Abs(s.scores[m.ID].Drift()) > s.MaxScoreDiffChange {
			continue
		}
		if pw.First() < s.PriceMin || pw.First() > s.EntryMaxPrice {
			continue
		}

		if drift > bestDrift {
			bestDrift = drift
			bestID = m.ID
		}
	}

	if bestID == "" || hasRisk(view, bestID) {
		return nil
	}
	return []sim.Intent{{MarketID: bestID, Action: sim.ActionOpen, Size: s.Stake}}
}

// bandedPrice is the effective open price, nil when missing or outside the
// global price band.
func (s *MicroMomentum) bandedPrice(m market.Market) *float64 {
	p := effectiveOpenPrice(m)
	if p == nil || *p < s.PriceMin || *p > s.PriceMax {
		return nil
	}
	return p
}
