package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal appends runs, trades, and equity snapshots to three CSV files.
type CSVJournal struct {
	runs       *csv.Writer
	trades     *csv.Writer
	equity     *csv.Writer
	rf, tf, ef *os.File
}

func NewCSV(runsPath, tradesPath, equityPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	tf, err := os.Create(tradesPath)
	if err != nil {
		rf.Close()
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		rf.Close()
		tf.Close()
		return nil, err
	}

	rw := csv.NewWriter(rf)
	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := rw.Write([]string{"run_id", "strategy", "tickers", "hold_max", "initial_capital", "final_value", "return_total_pct", "sharpe", "max_drawdown", "start", "end", "periods"}); err != nil {
		return nil, err
	}
	if err := tw.Write([]string{"trade_id", "run_id", "ticker", "side", "time", "price", "quantity"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"run_id", "time", "cash", "equity"}); err != nil {
		return nil, err
	}

	rw.Flush()
	tw.Flush()
	ew.Flush()
	for _, w := range []*csv.Writer{rw, tw, ew} {
		if err := w.Error(); err != nil {
			return nil, err
		}
	}

	return &CSVJournal{runs: rw, trades: tw, equity: ew, rf: rf, tf: tf, ef: ef}, nil
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Strategy,
		r.TickerList(),
		strconv.Itoa(r.HoldMax),
		f(r.InitialCapital),
		f(r.FinalValue),
		f(r.ReturnTotalPct),
		f(r.Sharpe),
		f(r.MaxDrawdown),
		r.Start.Format(time.RFC3339),
		r.End.Format(time.RFC3339),
		strconv.Itoa(r.Periods),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		t.RunID,
		t.Ticker,
		t.Side,
		t.Time.Format(time.RFC3339),
		f(t.Price),
		strconv.Itoa(t.Quantity),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(e EquitySnapshot) error {
	err := j.equity.Write([]string{
		e.RunID,
		e.Time.Format(time.RFC3339),
		f(e.Cash),
		f(e.Equity),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	for _, w := range []*csv.Writer{j.runs, j.trades, j.equity} {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	for _, fh := range []*os.File{j.rf, j.tf, j.ef} {
		if err := fh.Close(); err != nil {
			return err
		}
	}
	return nil
}

// f formats a float for CSV; undefined metrics come out as "NaN" rather
// than a misleading zero.
func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
