// Package strategies maps price history to daily trading signals.
package strategies

import (
	"fmt"
	"strings"

	"github.com/ColinLaurent/MarketPrediction/market"
)

// Signal is the daily decision for one ticker.
type Signal int8

const (
	Sell Signal = -1
	Hold Signal = 0
	Buy  Signal = +1
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "hold"
	}
}

// SignalTable holds one signal per ticker per day, aligned to the price
// table's date index. It is produced once per run and read-only afterwards.
type SignalTable map[string][]Signal

// Strategy produces a signal table from a price table. Implementations must
// derive the signal for day T only from data through day T-1: indicators are
// computed on closes lagged by one day, so that changing day T's close never
// changes day T's signal.
type Strategy interface {
	Name() string
	GenerateSignals(table *market.Table, tickers []string) (SignalTable, error)
}

// Params carries every tunable any built-in strategy accepts. Unused fields
// are ignored; zero values fall back to the strategy's defaults.
type Params struct {
	ShortWindow int     `json:"short_window" yaml:"short_window"`
	LongWindow  int     `json:"long_window" yaml:"long_window"`
	Threshold   float64 `json:"threshold" yaml:"threshold"`
	Period      int     `json:"period" yaml:"period"`
	Low         float64 `json:"low" yaml:"low"`
	High        float64 `json:"high" yaml:"high"`
}

// ByName constructs one of the built-in strategies. The variant set is
// closed; an unknown name is a configuration error reported immediately,
// never deferred to run or metrics time.
func ByName(name string, p Params) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trend", "trend-following":
		return NewTrendFollowing(p.ShortWindow, p.LongWindow)

	case "ma-threshold", "moving-average":
		return NewMovingAverage(p.ShortWindow, p.LongWindow, p.Threshold)

	case "rsi":
		return NewRSI(p.Period, p.Low, p.High)

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: trend, ma-threshold, rsi)", name)
	}
}

// checkTickers verifies every requested ticker has a series in the table.
func checkTickers(table *market.Table, tickers []string) error {
	if table == nil || table.Len() == 0 {
		return fmt.Errorf("strategies: empty price table")
	}
	if len(tickers) == 0 {
		return fmt.Errorf("strategies: no tickers")
	}
	for _, ticker := range tickers {
		if !table.HasTicker(ticker) {
			return fmt.Errorf("strategies: ticker %s not in price table", ticker)
		}
	}
	return nil
}
