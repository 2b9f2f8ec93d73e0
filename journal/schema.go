package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	strategy TEXT NOT NULL,
	dataset TEXT NOT NULL,
	initial_cash REAL NOT NULL,
	states INTEGER NOT NULL,
	games INTEGER NOT NULL,
	start DATETIME NOT NULL,
	end DATETIME NOT NULL,
	net_pnl REAL NOT NULL,
	gross_pnl REAL NOT NULL,
	total_fees REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	round_trips INTEGER NOT NULL,
	hit_rate REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL,
	timestamp DATETIME NOT NULL,
	market_id TEXT NOT NULL,
	action TEXT NOT NULL,
	price REAL NOT NULL,
	contracts REAL NOT NULL,
	pnl REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	equity REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_equity_run ON equity(run_id, time);
`
