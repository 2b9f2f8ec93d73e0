package sim

import "math"

// FeeRate is the exchange taker-fee coefficient.
const FeeRate = 0.07

// Fee computes the taker fee for a fill: rate * contracts * p * (1-p),
// rounded up to the next cent so the model never under-charges. The
// variance term vanishes at p=0 and p=1, so degenerate prices (and
// settlement fills at 0.0/1.0) cost nothing.
func Fee(contracts, price float64) float64 {
	if contracts <= 0 || price <= 0 || price >= 1 {
		return 0
	}
	raw := FeeRate * contracts * price * (1.0 - price)
	return math.Ceil(raw*100.0) / 100.0
}
