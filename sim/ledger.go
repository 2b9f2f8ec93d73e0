package sim

import "time"

// Action tags a trade record.
type Action string

const (
	ActionOpen      Action = "open"
	ActionClose     Action = "close"
	ActionAutoClose Action = "auto_close" // forced settlement, fee waived
)

// Intent is a single instruction from a strategy: open or close one market.
// Size is the requested dollar stake and only matters for opens.
type Intent struct {
	MarketID string
	Action   Action
	Size     float64
}

// Position is an open YES holding on one market. At most one position per
// market may exist; it is created by an open and destroyed by a close.
type Position struct {
	MarketID   string
	GameID     string
	Team       string
	Contracts  float64
	EntryPrice float64
	OpenFee    float64
}

// CostBasis is the dollars put at risk when the position was opened.
func (p *Position) CostBasis() float64 {
	return p.Contracts * p.EntryPrice
}

// Trade is an immutable audit entry. PnL is zero for opens and net of both
// fees for closes.
type Trade struct {
	Timestamp time.Time
	MarketID  string
	Action    Action
	Price     float64
	Contracts float64
	PnL       float64
}

// Ledger owns the cash balance, the open positions and the append-only
// trade log for one replay. It is exclusively owned by a single runner;
// nothing else may mutate it while a replay is in flight.
type Ledger struct {
	Cash      float64
	Positions map[string]*Position
	Trades    []Trade
}

func NewLedger(cash float64) *Ledger {
	return &Ledger{
		Cash:      cash,
		Positions: make(map[string]*Position),
	}
}

// OpenCostBasis sums cost bases over all open positions. Together with Cash
// it must reconcile to initial capital minus fees plus realized PnL after
// every mutation.
func (l *Ledger) OpenCostBasis() float64 {
	var sum float64
	for _, p := range l.Positions {
		sum += p.CostBasis()
	}
	return sum
}
