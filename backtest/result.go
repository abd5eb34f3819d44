package backtest

import "time"

// Side labels how a position changed hands.
type Side string

const (
	SideBuy        Side = "buy"
	SideSell       Side = "sell"
	SideForcedSell Side = "forced_sell"
)

// Trade is one executed transaction. Buys and sells move exactly one unit;
// a forced sell may liquidate several matured lots at once.
type Trade struct {
	TradeID  string
	Ticker   string
	Side     Side
	Time     time.Time
	Price    float64
	Quantity int
}

// PositionState is a ticker's holding at the end of a day, valued at that
// day's close.
type PositionState struct {
	Quantity int
	Value    float64
}

// Result is the completed trajectory of one run. All series have one more
// point than the price table: index 0 is the pre-trading state holding only
// the initial capital.
type Result struct {
	RunID   string
	Dates   []time.Time
	Equity  []float64
	Cash    []float64
	Markets map[string][]PositionState
	Trades  []Trade
}

// FinalEquity returns the last point of the equity trajectory.
func (r *Result) FinalEquity() float64 {
	return r.Equity[len(r.Equity)-1]
}

// Days returns the number of simulated trading days.
func (r *Result) Days() int {
	return len(r.Dates)
}
