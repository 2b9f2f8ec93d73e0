package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddslab/backcourt/sim"
)

func curveOf(values ...float64) []EquityPoint {
	base := time.Date(2024, 1, 15, 2, 0, 0, 0, time.UTC)
	curve := make([]EquityPoint, len(values))
	for i, v := range values {
		curve[i] = EquityPoint{Timestamp: base.Add(time.Duration(i) * time.Minute), Equity: v}
	}
	return curve
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{name: "flat_curve", values: []float64{100, 100, 100}, expected: 0},
		{name: "dip_and_recover", values: []float64{100, 80, 120}, expected: 20},
		{name: "monotonic_rise", values: []float64{100, 110, 130}, expected: 0},
		{name: "peak_then_slide", values: []float64{100, 130, 90, 95}, expected: 40},
		{name: "empty", values: nil, expected: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expected, MaxDrawdown(curveOf(tt.values...)), 1e-9)
		})
	}
}

func TestRoundTrips(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 15, 2, 0, 0, 0, time.UTC)

	t.Run("matches_open_with_close", func(t *testing.T) {
		t.Parallel()

		trades := []sim.Trade{
			{Timestamp: ts, MarketID: "M", Action: sim.ActionOpen, Price: 0.10, Contracts: 1000},
			{Timestamp: ts, MarketID: "M", Action: sim.ActionClose, Price: 0.20, Contracts: 1000, PnL: 82.50},
		}

		rts := RoundTrips(trades)
		require.Len(t, rts, 1)

		rt := rts[0]
		assert.InDelta(t, 0.10, rt.EntryPrice, 1e-9)
		assert.InDelta(t, 0.20, rt.ExitPrice, 1e-9)
		assert.InDelta(t, 100.0, rt.GrossPnL, 1e-9)
		assert.InDelta(t, 82.50, rt.PnL, 1e-9)
		assert.InDelta(t, 17.50, rt.Fees, 1e-9)
	})

	t.Run("auto_close_matches_too", func(t *testing.T) {
		t.Parallel()

		trades := []sim.Trade{
			{Timestamp: ts, MarketID: "M", Action: sim.ActionOpen, Price: 0.40, Contracts: 100},
			{Timestamp: ts, MarketID: "M", Action: sim.ActionAutoClose, Price: 1.0, Contracts: 100, PnL: 55},
		}
		assert.Len(t, RoundTrips(trades), 1)
	})

	t.Run("unmatched_close_dropped", func(t *testing.T) {
		t.Parallel()

		trades := []sim.Trade{
			{Timestamp: ts, MarketID: "M", Action: sim.ActionClose, Price: 0.20, Contracts: 100, PnL: 5},
		}
		assert.Empty(t, RoundTrips(trades))
	})

	t.Run("reopen_after_close_forms_two_trips", func(t *testing.T) {
		t.Parallel()

		trades := []sim.Trade{
			{MarketID: "M", Action: sim.ActionOpen, Price: 0.10, Contracts: 100},
			{MarketID: "M", Action: sim.ActionClose, Price: 0.15, Contracts: 100, PnL: 3},
			{MarketID: "M", Action: sim.ActionOpen, Price: 0.20, Contracts: 50},
			{MarketID: "M", Action: sim.ActionAutoClose, Price: 0.0, Contracts: 50, PnL: -11},
		}

		rts := RoundTrips(trades)
		require.Len(t, rts, 2)
		assert.InDelta(t, 0.15, rts[0].ExitPrice, 1e-9)
		assert.InDelta(t, 0.20, rts[1].EntryPrice, 1e-9)
	})
}

func TestComputeSummary(t *testing.T) {
	t.Parallel()

	t.Run("empty_input_is_all_zeros", func(t *testing.T) {
		t.Parallel()

		s := ComputeSummary(nil, nil)
		assert.Zero(t, s.TotalPnL)
		assert.Zero(t, s.HitRate)
		assert.Zero(t, s.AvgWin)
		assert.Zero(t, s.AvgLoss)
		assert.Zero(t, s.RoundTrips)
		for i, b := range s.Buckets {
			assert.Equal(t, EntryBuckets[i].Label, b.Label)
			assert.Zero(t, b.Count)
		}
	})

	t.Run("scenario_totals", func(t *testing.T) {
		t.Parallel()

		trades := []sim.Trade{
			{MarketID: "M", Action: sim.ActionOpen, Price: 0.10, Contracts: 1000},
			{MarketID: "M", Action: sim.ActionClose, Price: 0.20, Contracts: 1000, PnL: 82.50},
		}
		curve := curveOf(1000, 893.70, 1082.50)

		s := ComputeSummary(trades, curve)

		assert.InDelta(t, 82.50, s.TotalPnL, 1e-9)
		assert.InDelta(t, 17.50, s.TotalFees, 1e-9)
		assert.InDelta(t, 100.0, s.GrossPnL, 1e-9)
		assert.InDelta(t, 106.30, s.MaxDrawdown, 1e-9)
		assert.Equal(t, 2, s.Trades)
		assert.Equal(t, 1, s.RoundTrips)
		assert.InDelta(t, 1.0, s.HitRate, 1e-9)
		assert.InDelta(t, 82.50, s.AvgWin, 1e-9)
		assert.Zero(t, s.AvgLoss)
		assert.InDelta(t, 17.50, s.AvgFeePerRoundTrip, 1e-9)

		// Entry price 0.10 lands in the third band.
		assert.Equal(t, 1, s.Buckets[2].Count)
		assert.Zero(t, s.Buckets[0].Count)
	})

	t.Run("bucket_partitioning", func(t *testing.T) {
		t.Parallel()

		mk := func(entry, pnl float64) []sim.Trade {
			return []sim.Trade{
				{MarketID: "M", Action: sim.ActionOpen, Price: entry, Contracts: 10},
				{MarketID: "M", Action: sim.ActionClose, Price: entry, Contracts: 10, PnL: pnl},
			}
		}

		var trades []sim.Trade
		trades = append(trades, mk(0.04, 1)...)
		trades = append(trades, mk(0.07, -2)...)
		trades = append(trades, mk(0.12, 3)...)
		trades = append(trades, mk(0.50, -4)...)

		s := ComputeSummary(trades, curveOf(100, 100))

		for i := range s.Buckets {
			assert.Equal(t, 1, s.Buckets[i].Count, "bucket %d", i)
		}
		assert.InDelta(t, 1.0, s.Buckets[0].HitRate, 1e-9)
		assert.Zero(t, s.Buckets[1].HitRate)
		assert.InDelta(t, 3.0, s.Buckets[2].AvgWin, 1e-9)
		assert.InDelta(t, -4.0, s.Buckets[3].AvgLoss, 1e-9)
	})

	t.Run("pure_function_idempotent", func(t *testing.T) {
		t.Parallel()

		trades := []sim.Trade{
			{MarketID: "A", Action: sim.ActionOpen, Price: 0.10, Contracts: 100},
			{MarketID: "A", Action: sim.ActionClose, Price: 0.05, Contracts: 100, PnL: -6},
			{MarketID: "B", Action: sim.ActionOpen, Price: 0.30, Contracts: 50},
		}
		curve := curveOf(100, 95, 97)

		first := ComputeSummary(trades, curve)
		second := ComputeSummary(trades, curve)
		assert.Equal(t, first, second)
	})
}
