package sim

import "github.com/oddslab/backcourt/market"

// Equity marks the ledger to market against the given state: cash plus the
// current value of every open position. A position whose market is absent
// from the state, or whose mark price is nil, contributes nothing to this
// sample; its value reappears on the next priced tick.
func Equity(state *market.GameState, l *Ledger) float64 {
	equity := l.Cash

	for id, pos := range l.Positions {
		m, ok := state.Market(id)
		if !ok || m.Price == nil {
			continue
		}
		equity += pos.Contracts * *m.Price
	}

	return equity
}
