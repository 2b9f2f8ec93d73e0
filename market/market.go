package market

// Result is a market's settlement outcome once known.
type Result string

const (
	ResultUnknown Result = ""
	ResultYes     Result = "yes"
	ResultNo      Result = "no"
)

// Market is a single prediction-market snapshot inside a GameState.
// Prices are probabilities in [0,1]. A nil price means the market had no
// tradable print this tick; callers must treat that as a gap, not a zero.
type Market struct {
	ID   string
	Type string // "moneyline", "spread", "total"
	Team string // team code this market pays out on

	Price  *float64 // last mark
	YesBid *float64 // best bid to sell YES into
	YesAsk *float64 // best ask to buy YES at

	Result Result
}

// Spread returns ask-bid, or false when either side is missing.
func (m Market) Spread() (float64, bool) {
	if m.YesBid == nil || m.YesAsk == nil {
		return 0, false
	}
	return *m.YesAsk - *m.YesBid, true
}

// Moneyline reports whether the market tracks the game winner outright.
func (m Market) Moneyline() bool { return m.Type == "moneyline" }
