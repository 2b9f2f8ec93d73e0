package backtest

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/oddslab/backcourt/market"
)

// StateFeed yields game states one at a time, in chronological order.
// Implementations must be deterministic and return ok=false at EOF.
type StateFeed interface {
	Next() (s *market.GameState, ok bool, err error)
	Close() error
}

// SliceFeed replays a pre-built slice of states. Useful for tests and for
// callers that assemble states in memory.
type SliceFeed struct {
	states []market.GameState
	idx    int
}

func NewSliceFeed(states []market.GameState) *SliceFeed {
	return &SliceFeed{states: states}
}

func (f *SliceFeed) Next() (*market.GameState, bool, error) {
	if f.idx >= len(f.states) {
		return nil, false, nil
	}
	s := &f.states[f.idx]
	f.idx++
	return s, true, nil
}

func (f *SliceFeed) Close() error { return nil }

// stateRow is one flat candlestick row: one market snapshot at one tick.
// Nullable columns are pointers so an empty cell stays distinguishable
// from zero.
type stateRow struct {
	Timestamp     string   `csv:"timestamp"`
	GameID        string   `csv:"game_id"`
	HomeTeam      string   `csv:"home_team"`
	AwayTeam      string   `csv:"away_team"`
	ScoreHome     *int     `csv:"score_home,omitempty"`
	ScoreAway     *int     `csv:"score_away,omitempty"`
	Quarter       int      `csv:"quarter"`
	TimeRemaining float64  `csv:"time_remaining_minutes"`
	MarketID      string   `csv:"market_id"`
	MarketType    string   `csv:"market_type"`
	Team          string   `csv:"team"`
	Price         *float64 `csv:"price,omitempty"`
	YesBid        *float64 `csv:"yes_bid_prob,omitempty"`
	YesAsk        *float64 `csv:"yes_ask_prob,omitempty"`
	Result        string   `csv:"result"`
}

// CSVStateFeed reads flat state rows and regroups them into GameStates:
// consecutive rows sharing (game_id, timestamp) are the markets of one
// tick. The file is loaded eagerly; datasets are bounded (one season of
// one-minute candlesticks fits comfortably in memory).
type CSVStateFeed struct {
	feed *SliceFeed
}

func NewCSVStateFeed(path string) (*CSVStateFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open states: %w", err)
	}
	defer f.Close()

	var rows []*stateRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse states %s: %w", path, err)
	}

	states, err := groupRows(rows)
	if err != nil {
		return nil, fmt.Errorf("group states %s: %w", path, err)
	}

	return &CSVStateFeed{feed: NewSliceFeed(states)}, nil
}

func (f *CSVStateFeed) Next() (*market.GameState, bool, error) { return f.feed.Next() }
func (f *CSVStateFeed) Close() error                           { return nil }

func groupRows(rows []*stateRow) ([]market.GameState, error) {
	var states []market.GameState

	for _, row := range rows {
		if row.GameID == "" || row.MarketID == "" {
			continue
		}

		ts, err := time.Parse(time.RFC3339, row.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", row.Timestamp, err)
		}

		m := market.Market{
			ID:     row.MarketID,
			Type:   row.MarketType,
			Team:   row.Team,
			Price:  row.Price,
			YesBid: row.YesBid,
			YesAsk: row.YesAsk,
			Result: market.Result(row.Result),
		}

		if n := len(states); n > 0 && states[n-1].GameID == row.GameID && states[n-1].Timestamp.Equal(ts) {
			states[n-1].Markets = append(states[n-1].Markets, m)
			continue
		}

		states = append(states, market.GameState{
			GameID:        row.GameID,
			Timestamp:     ts,
			HomeTeam:      row.HomeTeam,
			AwayTeam:      row.AwayTeam,
			ScoreHome:     row.ScoreHome,
			ScoreAway:     row.ScoreAway,
			ScoreDiff:     scoreDiff(row.ScoreHome, row.ScoreAway),
			Quarter:       row.Quarter,
			TimeRemaining: row.TimeRemaining,
			Markets:       []market.Market{m},
		})
	}

	return states, nil
}

func scoreDiff(home, away *int) int {
	if home == nil || away == nil {
		return 0
	}
	d := *home - *away
	if d < 0 {
		d = -d
	}
	return d
}
