package sim

import "github.com/oddslab/backcourt/market"

// Direction of an execution for price selection.
type Direction int

const (
	Buy  Direction = iota // entering a position, pay the ask
	Sell                  // exiting, hit the bid
)

// ResolvePrice picks the execution price for a market given the trade
// direction. Buys prefer ask, then mark, then bid; sells the reverse.
// Returns nil when the market has no price source at all; callers must
// treat that as "skip this instruction", never as an error.
func ResolvePrice(m market.Market, dir Direction) *float64 {
	if dir == Buy {
		if m.YesAsk != nil {
			return m.YesAsk
		}
		if m.Price != nil {
			return m.Price
		}
		return m.YesBid
	}

	if m.YesBid != nil {
		return m.YesBid
	}
	if m.Price != nil {
		return m.Price
	}
	return m.YesAsk
}
