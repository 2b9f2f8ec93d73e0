package strategies

import (
	"fmt"
	"strings"

	"github.com/oddslab/backcourt/market"
	"github.com/oddslab/backcourt/sim"
)

// Strategy is the decision policy a backtest replays states through. It is
// called once per game state with a read-only ledger view and returns zero
// or more intents, applied in order within the tick. Implementations may
// keep private memory across calls (rolling windows, per-game baselines)
// but must be deterministic for a given call history.
type Strategy interface {
	Name() string
	Reset()
	OnState(state *market.GameState, view sim.View) []sim.Intent
}

// Params are the tunables a strategy is constructed with, straight from
// config. Missing keys fall back to per-strategy defaults.
type Params map[string]float64

func (p Params) Get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// ByName builds a strategy from its registry name.
func ByName(name string, params Params) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return Noop{}, nil

	case "open-once":
		return NewOpenOnce(params), nil

	case "late-game-underdog":
		return NewLateGameUnderdog(params), nil

	case "tight-game-coinflip":
		return NewTightGameCoinflip(params), nil

	case "micro-momentum":
		return NewMicroMomentum(params), nil

	case "late-game-shock-fade":
		return NewLateGameShockFade(params), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
}

// Names lists the registry in display order.
func Names() []string {
	return []string{
		"noop",
		"open-once",
		"late-game-underdog",
		"tight-game-coinflip",
		"micro-momentum",
		"late-game-shock-fade",
	}
}

// effectiveOpenPrice mirrors execution: opening a YES position pays the
// ask, then the mark, then the bid. nil when the market is unpriced.
func effectiveOpenPrice(m market.Market) *float64 {
	return sim.ResolvePrice(m, sim.Buy)
}

// hasRisk reports whether the view already carries dollars on the market.
func hasRisk(view sim.View, marketID string) bool {
	pos, ok := view.Position(marketID)
	return ok && pos.DollarsAtRisk != 0
}

// tradable filters to live moneyline markets; settled markets are out.
func tradable(m market.Market) bool {
	return m.Moneyline() && m.Result == market.ResultUnknown
}
