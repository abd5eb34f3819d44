package journal

import (
	"database/sql"
	"math"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, strategy, tickers, hold_max, initial_capital, final_value,
		 return_total_pct, sharpe, max_drawdown, start_date, end_date, periods)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Strategy, r.TickerList(), r.HoldMax, r.InitialCapital,
		nullable(r.FinalValue), nullable(r.ReturnTotalPct), nullable(r.Sharpe),
		nullable(r.MaxDrawdown), r.Start, r.End, r.Periods,
	)
	return err
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, ticker, side, time, price, quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.RunID, t.Ticker, t.Side, t.Time, t.Price, t.Quantity,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, time, cash, equity)
		VALUES (?, ?, ?, ?)`,
		e.RunID, e.Time, e.Cash, e.Equity,
	)
	return err
}

// GetRun loads one run's summary row.
func (j *SQLiteJournal) GetRun(runID string) (RunRecord, error) {
	row := j.db.QueryRow(`
		SELECT run_id, strategy, tickers, hold_max, initial_capital,
		       final_value, return_total_pct, sharpe, max_drawdown,
		       start_date, end_date, periods
		FROM runs WHERE run_id = ?`, runID)

	var r RunRecord
	var tickers string
	var finalValue, returnPct, sharpe, drawdown sql.NullFloat64
	err := row.Scan(&r.RunID, &r.Strategy, &tickers, &r.HoldMax, &r.InitialCapital,
		&finalValue, &returnPct, &sharpe, &drawdown, &r.Start, &r.End, &r.Periods)
	if err != nil {
		return RunRecord{}, err
	}

	if tickers != "" {
		r.Tickers = strings.Split(tickers, ",")
	}
	r.FinalValue = fromNullable(finalValue)
	r.ReturnTotalPct = fromNullable(returnPct)
	r.Sharpe = fromNullable(sharpe)
	r.MaxDrawdown = fromNullable(drawdown)
	return r, nil
}

// ListRuns returns every stored run, newest first (ULIDs sort by time).
func (j *SQLiteJournal) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`SELECT run_id FROM runs ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var runID string
		if err := rows.Scan(&runID); err != nil {
			return nil, err
		}
		r, err := j.GetRun(runID)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListTrades returns a run's trades in execution order.
func (j *SQLiteJournal) ListTrades(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, run_id, ticker, side, time, price, quantity
		FROM trades WHERE run_id = ? ORDER BY trade_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(&t.TradeID, &t.RunID, &t.Ticker, &t.Side, &t.Time, &t.Price, &t.Quantity); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListEquity returns a run's daily equity snapshots in date order.
func (j *SQLiteJournal) ListEquity(runID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, cash, equity
		FROM equity WHERE run_id = ? ORDER BY time`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var e EquitySnapshot
		if err := rows.Scan(&e.RunID, &e.Time, &e.Cash, &e.Equity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// nullable maps an undefined metric to NULL so it never round-trips as 0.
func nullable(x float64) interface{} {
	if math.IsNaN(x) {
		return nil
	}
	return x
}

func fromNullable(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
