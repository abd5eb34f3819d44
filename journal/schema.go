package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	strategy TEXT NOT NULL,
	tickers TEXT NOT NULL,
	hold_max INTEGER NOT NULL,
	initial_capital REAL NOT NULL,
	final_value REAL,
	return_total_pct REAL,
	sharpe REAL,
	max_drawdown REAL,
	start_date DATETIME NOT NULL,
	end_date DATETIME NOT NULL,
	periods INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	ticker TEXT NOT NULL,
	side TEXT NOT NULL,
	time DATETIME NOT NULL,
	price REAL NOT NULL,
	quantity INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	cash REAL NOT NULL,
	equity REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);
CREATE INDEX IF NOT EXISTS idx_equity_run ON equity(run_id, time);
`
