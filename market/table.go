// Package market holds the daily price data consumed by the backtester.
package market

import (
	"fmt"
	"sort"
	"time"
)

// Bar is one daily price bar for a single ticker. Positions are transacted
// at Open and valued at Close.
type Bar struct {
	Open  float64
	Close float64
}

// Table is an aligned table of daily bars: one shared, strictly increasing
// date index with one bar per ticker per date and no partial rows.
// Once built it is read-only; the engine never mutates it.
type Table struct {
	dates []time.Time
	bars  map[string][]Bar
}

// NewTable builds a Table from a date index and per-ticker bar series.
// Every ticker series must have exactly one bar per date, and the index must
// be strictly increasing.
func NewTable(dates []time.Time, bars map[string][]Bar) (*Table, error) {
	if len(dates) == 0 {
		return nil, fmt.Errorf("market: empty date index")
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("market: no tickers")
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return nil, fmt.Errorf("market: date index not strictly increasing at row %d (%s then %s)",
				i, dates[i-1].Format("2006-01-02"), dates[i].Format("2006-01-02"))
		}
	}
	for ticker, series := range bars {
		if len(series) != len(dates) {
			return nil, fmt.Errorf("market: ticker %s has %d bars, want %d", ticker, len(series), len(dates))
		}
	}
	return &Table{dates: dates, bars: bars}, nil
}

// Len returns the number of trading days in the table.
func (t *Table) Len() int { return len(t.dates) }

// Dates returns the shared date index.
func (t *Table) Dates() []time.Time { return t.dates }

// Date returns the date of row i.
func (t *Table) Date(i int) time.Time { return t.dates[i] }

// Tickers returns the table's tickers in sorted order.
func (t *Table) Tickers() []string {
	out := make([]string, 0, len(t.bars))
	for ticker := range t.bars {
		out = append(out, ticker)
	}
	sort.Strings(out)
	return out
}

// HasTicker reports whether the table carries a series for ticker.
func (t *Table) HasTicker(ticker string) bool {
	_, ok := t.bars[ticker]
	return ok
}

// Bar returns the bar for ticker at row i.
func (t *Table) Bar(ticker string, i int) Bar {
	return t.bars[ticker][i]
}

// Closes returns the close series for ticker, aligned to Dates.
func (t *Table) Closes(ticker string) []float64 {
	series, ok := t.bars[ticker]
	if !ok {
		return nil
	}
	out := make([]float64, len(series))
	for i, b := range series {
		out[i] = b.Close
	}
	return out
}

// Opens returns the open series for ticker, aligned to Dates.
func (t *Table) Opens(ticker string) []float64 {
	series, ok := t.bars[ticker]
	if !ok {
		return nil
	}
	out := make([]float64, len(series))
	for i, b := range series {
		out[i] = b.Open
	}
	return out
}
