package sim

// PositionView is the strategy-facing summary of one open position.
type PositionView struct {
	DollarsAtRisk float64
	Contracts     float64
	EntryPrice    float64
}

// View is the read-only ledger snapshot handed to strategies each tick.
// It is a copy; strategies must not be able to reach back into the ledger.
type View struct {
	Cash      float64
	Equity    float64
	Positions map[string]PositionView
}

// View builds a snapshot at the given mark-to-market equity.
func (l *Ledger) View(equity float64) View {
	v := View{
		Cash:      l.Cash,
		Equity:    equity,
		Positions: make(map[string]PositionView, len(l.Positions)),
	}
	for id, pos := range l.Positions {
		v.Positions[id] = PositionView{
			DollarsAtRisk: pos.CostBasis(),
			Contracts:     pos.Contracts,
			EntryPrice:    pos.EntryPrice,
		}
	}
	return v
}

// Position returns the view for one market; the zero view and false when
// the market has no open position.
func (v View) Position(marketID string) (PositionView, bool) {
	p, ok := v.Positions[marketID]
	return p, ok
}
