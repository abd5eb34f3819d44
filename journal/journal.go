// Package journal persists backtest runs for later inspection.
package journal

import (
	"strings"
	"time"
)

// RunRecord is the summary row of one completed backtest.
type RunRecord struct {
	RunID          string
	Strategy       string
	Tickers        []string
	HoldMax        int
	InitialCapital float64
	FinalValue     float64
	ReturnTotalPct float64
	Sharpe         float64
	MaxDrawdown    float64
	Start          time.Time
	End            time.Time
	Periods        int
}

// TickerList joins the run's tickers for storage in a single column.
func (r RunRecord) TickerList() string {
	return strings.Join(r.Tickers, ",")
}

// TradeRecord is one executed transaction within a run.
type TradeRecord struct {
	TradeID  string
	RunID    string
	Ticker   string
	Side     string // buy, sell, forced_sell
	Time     time.Time
	Price    float64
	Quantity int
}

// EquitySnapshot is the end-of-day wallet state of a run.
type EquitySnapshot struct {
	RunID  string
	Time   time.Time
	Cash   float64
	Equity float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Noop discards everything. Used when journaling is disabled.
type Noop struct{}

func (Noop) RecordRun(RunRecord) error         { return nil }
func (Noop) RecordTrade(TradeRecord) error     { return nil }
func (Noop) RecordEquity(EquitySnapshot) error { return nil }
func (Noop) Close() error                      { return nil }
