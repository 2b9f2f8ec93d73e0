package backtest

import (
	"github.com/montanaflynn/stats"

	"github.com/oddslab/backcourt/sim"
)

// RoundTrip is a matched open+close pair on one market, the atomic unit
// for hit-rate and PnL statistics. Fees are inferred by comparing the
// close's net PnL against the gross move.
type RoundTrip struct {
	MarketID   string
	EntryPrice float64
	ExitPrice  float64
	Contracts  float64
	PnL        float64 // net of fees, from the close record
	GrossPnL   float64 // contracts * (exit - entry)
	Fees       float64 // gross - net, open and close fees combined
}

// BucketRange is one fixed entry-price band.
type BucketRange struct {
	Label string
	Lo    float64
	Hi    float64
}

// EntryBuckets partitions round trips by entry price. The set is fixed and
// ordered; the last band absorbs everything from 0.15 up.
var EntryBuckets = [4]BucketRange{
	{Label: "0.00-0.05", Lo: 0.00, Hi: 0.05},
	{Label: "0.05-0.10", Lo: 0.05, Hi: 0.10},
	{Label: "0.10-0.15", Lo: 0.10, Hi: 0.15},
	{Label: "0.15+", Lo: 0.15, Hi: 1.00},
}

// BucketStats are per-band round-trip statistics.
type BucketStats struct {
	Label     string
	Count     int
	HitRate   float64
	AvgPnL    float64
	AvgWin    float64
	AvgLoss   float64
	TotalFees float64
	AvgFee    float64
}

// Summary is the full statistics report for one replay.
type Summary struct {
	TotalPnL    float64 // net of fees: last equity sample minus first
	GrossPnL    float64 // before fees
	TotalFees   float64
	MaxDrawdown float64

	Trades     int // individual trade records, opens included
	RoundTrips int

	HitRate            float64
	AvgWin             float64
	AvgLoss            float64
	AvgFeePerRoundTrip float64

	Buckets [4]BucketStats
}

// ComputeSummary turns a trade log and equity curve into a report. It is a
// pure function: same inputs, same report. Empty inputs produce a report
// of zeros, never NaN.
func ComputeSummary(trades []sim.Trade, curve []EquityPoint) Summary {
	s := Summary{}
	for i, b := range EntryBuckets {
		s.Buckets[i].Label = b.Label
	}
	if len(curve) == 0 {
		return s
	}

	s.TotalPnL = curve[len(curve)-1].Equity - curve[0].Equity
	s.MaxDrawdown = MaxDrawdown(curve)
	s.Trades = len(trades)

	rts := RoundTrips(trades)
	s.RoundTrips = len(rts)

	var wins, losses []float64
	bucketed := make([][]RoundTrip, len(EntryBuckets))

	for _, rt := range rts {
		s.TotalFees += rt.Fees

		if rt.PnL > 0 {
			wins = append(wins, rt.PnL)
		} else if rt.PnL < 0 {
			losses = append(losses, rt.PnL)
		}

		i := bucketIndex(rt.EntryPrice)
		bucketed[i] = append(bucketed[i], rt)
	}

	if len(rts) > 0 {
		s.HitRate = float64(len(wins)) / float64(len(rts))
		s.AvgFeePerRoundTrip = s.TotalFees / float64(len(rts))
	}
	s.AvgWin = mean(wins)
	s.AvgLoss = mean(losses)
	s.GrossPnL = s.TotalPnL + s.TotalFees

	for i := range EntryBuckets {
		s.Buckets[i] = bucketStats(EntryBuckets[i].Label, bucketed[i])
	}

	return s
}

// RoundTrips matches each close/auto_close against the most recent
// unmatched open on the same market. Closes without a matching open are
// dropped; the ledger should never produce them, but the aggregator
// tolerates them.
func RoundTrips(trades []sim.Trade) []RoundTrip {
	openByMarket := make(map[string]sim.Trade)
	var rts []RoundTrip

	for _, t := range trades {
		switch t.Action {
		case sim.ActionOpen:
			openByMarket[t.MarketID] = t

		case sim.ActionClose, sim.ActionAutoClose:
			open, ok := openByMarket[t.MarketID]
			if !ok {
				continue
			}
			delete(openByMarket, t.MarketID)

			gross := open.Contracts * (t.Price - open.Price)
			rts = append(rts, RoundTrip{
				MarketID:   t.MarketID,
				EntryPrice: open.Price,
				ExitPrice:  t.Price,
				Contracts:  open.Contracts,
				PnL:        t.PnL,
				GrossPnL:   gross,
				Fees:       gross - t.PnL,
			})
		}
	}

	return rts
}

// MaxDrawdown is the largest peak-to-trough fall over the curve, from a
// single forward scan with a running peak.
func MaxDrawdown(curve []EquityPoint) float64 {
	if len(curve) == 0 {
		return 0
	}

	peak := curve[0].Equity
	var maxDD float64

	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		if dd := peak - p.Equity; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

func bucketIndex(entry float64) int {
	for i, b := range EntryBuckets[:len(EntryBuckets)-1] {
		if entry < b.Hi {
			return i
		}
	}
	return len(EntryBuckets) - 1
}

func bucketStats(label string, rts []RoundTrip) BucketStats {
	b := BucketStats{Label: label, Count: len(rts)}
	if len(rts) == 0 {
		return b
	}

	var pnls, wins, losses []float64
	for _, rt := range rts {
		pnls = append(pnls, rt.PnL)
		if rt.PnL > 0 {
			wins = append(wins, rt.PnL)
		} else if rt.PnL < 0 {
			losses = append(losses, rt.PnL)
		}
		b.TotalFees += rt.Fees
	}

	b.HitRate = float64(len(wins)) / float64(len(rts))
	b.AvgPnL = mean(pnls)
	b.AvgWin = mean(wins)
	b.AvgLoss = mean(losses)
	b.AvgFee = b.TotalFees / float64(len(rts))
	return b
}

// mean wraps stats.Mean with zero-on-empty, matching the empty-input
// policy of the report.
func mean(xs []float64) float64 {
	m, err := stats.Mean(xs)
	if err != nil {
		return 0
	}
	return m
}
