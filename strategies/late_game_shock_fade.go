package strategies

import (
	"math"

	"github.com/oddslab/backcourt/indicators"
	"github.com/oddslab/backcourt/market"
	"github.com/oddslab/backcourt/sim"
)

// LateGameShockFade fades late-game overreactions: when one moneyline
// spikes well above its recent baseline on a small score change, buy the
// opposite side. The baseline is a short moving average of the effective
// price, reset per game.
type LateGameShockFade struct {
	LateQuarter    int
	LateTime       float64 // minutes
	MaxScoreDiff   float64
	MinShockMove   float64
	MaxDeltaScore  float64 // score-diff change that still counts as quiet
	BaselineStates int

	PriceMin float64
	PriceMax float64

	Stake float64

	gameID    string
	baselines map[string]*indicators.SimpleMA
	lastDiff  *float64
}

func NewLateGameShockFade(p Params) *LateGameShockFade {
	s := &LateGameShockFade{
		LateQuarter:    int(p.Get("q_late", 4)),
		LateTime:       p.Get("t_late", 4.0),
		MaxScoreDiff:   p.Get("max_score_diff", 6.0),
		MinShockMove:   p.Get("min_shock_move", 0.15),
		MaxDeltaScore:  p.Get("max_delta_score", 3.0),
		BaselineStates: int(p.Get("baseline_states", 5)),
		PriceMin:       p.Get("price_min", 0.01),
		PriceMax:       p.Get("price_max", 0.99),
		Stake:          p.Get("stake", 25.0),
	}
	s.Reset()
	return s
}

func (s *LateGameShockFade) Name() string { return "late-game-shock-fade" }

func (s *LateGameShockFade) Reset() {
	s.gameID = ""
	s.baselines = make(map[string]*indicators.SimpleMA)
	s.lastDiff = nil
}

func (s *LateGameShockFade) OnState(state *market.GameState, view sim.View) []sim.Intent {
	if state.GameID != s.gameID {
		s.Reset()
		s.gameID = state.GameID
	}

	scoreDiff := float64(state.ScoreDiff)
	inWindow := state.Quarter >= s.LateQuarter &&
		state.TimeRemaining <= s.LateTime &&
		scoreDiff <= s.MaxScoreDiff

	var intents []sim.Intent

	if inWindow && s.lastDiff != nil && math.Abs(scoreDiff-*s.lastDiff) <= s.MaxDeltaScore {
		if spiked := s.findShock(state); spiked != "" {
			if other := s.fadeSide(state, spiked); other != "" && !hasRisk(view, other) {
				intents = append(intents, sim.Intent{MarketID: other, Action: sim.ActionOpen, Size: s.Stake})
			}
		}
	}

	// Update memory after deciding, so the spike itself is judged against
	// the pre-shock baseline.
	for _, m := range state.Markets {
		if !tradable(m) {
			continue
		}
		p := effectiveOpenPrice(m)
		if p == nil {
			continue
		}
		ma, ok := s.baselines[m.ID]
		if !ok {
			ma = indicators.NewMA(s.BaselineStates)
			s.baselines[m.ID] = ma
		}
		ma.Update(*p)
	}
	s.lastDiff = &scoreDiff

	return intents
}

// findShock returns the market whose effective price jumped the furthest
// above its baseline, if any jump clears the shock threshold.
func (s *LateGameShockFade) findShock(state *market.GameState) string {
	var shockID string
	var shockMove float64

	for _, m := range state.Markets {
		if !tradable(m) {
			continue
		}
		p := effectiveOpenPrice(m)
		if p == nil {
			continue
		}
		ma, ok := s.baselines[m.ID]
		if !ok || !ma.Ready() {
			continue
		}
		move := *p - ma.Value()
		if move >= s.MinShockMove && move > shockMove {
			shockMove = move
			shockID = m.ID
		}
	}
	return shockID
}

// fadeSide picks the priced moneyline opposite the spiked one.
func (s *LateGameShockFade) fadeSide(state *market.GameState, spiked string) string {
	for _, m := range state.Markets {
		if !tradable(m) || m.ID == spiked {
			continue
		}
		p := effectiveOpenPrice(m)
		if p == nil || *p < s.PriceMin || *p > s.PriceMax {
			continue
		}
		return m.ID
	}
	return ""
}
