package strategies

import (
	"fmt"

	"github.com/ColinLaurent/MarketPrediction/indicators"
	"github.com/ColinLaurent/MarketPrediction/market"
)

// MovingAverage is a mean-reversion band strategy around the long moving
// average: it buys when the short average dips below threshold*long and
// sells when it rises above (2-threshold)*long. Averages are computed over
// closes lagged by one day.
type MovingAverage struct {
	ShortWindow int
	LongWindow  int
	Threshold   float64
}

// NewMovingAverage builds the band strategy. Zero values fall back to
// 5/30/0.9; the threshold must sit strictly inside (0,1).
func NewMovingAverage(short, long int, threshold float64) (*MovingAverage, error) {
	if short == 0 {
		short = 5
	}
	if long == 0 {
		long = 30
	}
	if threshold == 0 {
		threshold = 0.9
	}
	if short < 1 || long < 1 {
		return nil, fmt.Errorf("ma-threshold: windows must be positive (short=%d long=%d)", short, long)
	}
	if short >= long {
		return nil, fmt.Errorf("ma-threshold: short window %d must be below long window %d", short, long)
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("ma-threshold: threshold must be in (0,1), got %g", threshold)
	}
	return &MovingAverage{ShortWindow: short, LongWindow: long, Threshold: threshold}, nil
}

func (s *MovingAverage) Name() string {
	return fmt.Sprintf("ma-threshold(%d,%d,%g)", s.ShortWindow, s.LongWindow, s.Threshold)
}

func (s *MovingAverage) GenerateSignals(table *market.Table, tickers []string) (SignalTable, error) {
	if err := checkTickers(table, tickers); err != nil {
		return nil, err
	}

	out := make(SignalTable, len(tickers))
	for _, ticker := range tickers {
		lagged := indicators.Lag(table.Closes(ticker))
		short := indicators.SMA(lagged, s.ShortWindow)
		long := indicators.SMA(lagged, s.LongWindow)

		signals := make([]Signal, table.Len())
		for t := 1; t < len(signals); t++ {
			lower := s.Threshold * long[t]
			upper := (2 - s.Threshold) * long[t]
			prevLower := s.Threshold * long[t-1]
			prevUpper := (2 - s.Threshold) * long[t-1]

			// Entry on the downward crossing of the lower band, exit on
			// the upward crossing of the upper one.
			switch {
			case short[t] < lower && short[t-1] >= prevLower:
				signals[t] = Buy
			case short[t] > upper && short[t-1] <= prevUpper:
				signals[t] = Sell
			}
		}
		out[ticker] = signals
	}
	return out, nil
}
