package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, strategy, dataset, initial_cash, states, games, start, end,
		 net_pnl, gross_pnl, total_fees, max_drawdown, round_trips, hit_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Strategy, r.Dataset, r.InitialCash, r.States, r.Games,
		r.Start, r.End, r.NetPnL, r.GrossPnL, r.TotalFees, r.MaxDrawdown,
		r.RoundTrips, r.HitRate,
	)
	return err
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, timestamp, market_id, action, price, contracts, pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.Timestamp, t.MarketID, t.Action, t.Price, t.Contracts, t.PnL,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquityRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, time, equity) VALUES (?, ?, ?)`,
		e.RunID, e.Time, e.Equity,
	)
	return err
}

// GetRun returns a single run summary by id.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var r RunRecord

	row := j.db.QueryRow(`
		SELECT run_id, created, strategy, dataset, initial_cash, states, games, start, end,
		       net_pnl, gross_pnl, total_fees, max_drawdown, round_trips, hit_rate
		FROM runs WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID, &r.Created, &r.Strategy, &r.Dataset, &r.InitialCash,
		&r.States, &r.Games, &r.Start, &r.End,
		&r.NetPnL, &r.GrossPnL, &r.TotalFees, &r.MaxDrawdown,
		&r.RoundTrips, &r.HitRate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return r, nil
}

// ListRuns returns run summaries, most recent first.
func (j *SQLite) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, strategy, dataset, initial_cash, states, games, start, end,
		       net_pnl, gross_pnl, total_fees, max_drawdown, round_trips, hit_rate
		FROM runs ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.RunID, &r.Created, &r.Strategy, &r.Dataset, &r.InitialCash,
			&r.States, &r.Games, &r.Start, &r.End,
			&r.NetPnL, &r.GrossPnL, &r.TotalFees, &r.MaxDrawdown,
			&r.RoundTrips, &r.HitRate,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListTradesByRun returns a run's trade log in timestamp order.
func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, timestamp, market_id, action, price, contracts, pnl
		FROM trades WHERE run_id = ? ORDER BY timestamp ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(&t.RunID, &t.Timestamp, &t.MarketID, &t.Action, &t.Price, &t.Contracts, &t.PnL); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListEquityByRun returns a run's equity curve in time order.
func (j *SQLite) ListEquityByRun(runID string) ([]EquityRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, equity
		FROM equity WHERE run_id = ? ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquityRecord
	for rows.Next() {
		var e EquityRecord
		if err := rows.Scan(&e.RunID, &e.Time, &e.Equity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListTradesClosedBetween returns closing trades within [start, end).
func (j *SQLite) ListTradesClosedBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, timestamp, market_id, action, price, contracts, pnl
		FROM trades
		WHERE action IN ('close', 'auto_close') AND timestamp >= ? AND timestamp < ?
		ORDER BY timestamp ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(&t.RunID, &t.Timestamp, &t.MarketID, &t.Action, &t.Price, &t.Contracts, &t.PnL); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
