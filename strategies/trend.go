package strategies

import (
	"fmt"

	"github.com/ColinLaurent/MarketPrediction/indicators"
	"github.com/ColinLaurent/MarketPrediction/market"
)

// TrendFollowing buys when the short moving average crosses above the long
// one and sells on the symmetric downward cross. Both averages are computed
// over closes lagged by one day.
type TrendFollowing struct {
	ShortWindow int
	LongWindow  int
}

// NewTrendFollowing builds a trend-following strategy. Zero windows fall
// back to 5/20.
func NewTrendFollowing(short, long int) (*TrendFollowing, error) {
	if short == 0 {
		short = 5
	}
	if long == 0 {
		long = 20
	}
	if short < 1 || long < 1 {
		return nil, fmt.Errorf("trend: windows must be positive (short=%d long=%d)", short, long)
	}
	if short >= long {
		return nil, fmt.Errorf("trend: short window %d must be below long window %d", short, long)
	}
	return &TrendFollowing{ShortWindow: short, LongWindow: long}, nil
}

func (s *TrendFollowing) Name() string {
	return fmt.Sprintf("trend(%d,%d)", s.ShortWindow, s.LongWindow)
}

func (s *TrendFollowing) GenerateSignals(table *market.Table, tickers []string) (SignalTable, error) {
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
			// NaN comparisons are false, so days without full history
			// stay Hold without an explicit check.
			switch {
			case short[t] > long[t] && short[t-1] <= long[t-1]:
				signals[t] = Buy
			case short[t] < long[t] && short[t-1] >= long[t-1]:
				signals[t] = Sell
			}
		}
		out[ticker] = signals
	}
	return out, nil
}
