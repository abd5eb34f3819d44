package strategies

import (
	"fmt"

	"github.com/ColinLaurent/MarketPrediction/indicators"
	"github.com/ColinLaurent/MarketPrediction/market"
)

// RSI enters when the lagged Relative Strength Index crosses down through
// the oversold level and exits when it crosses up through the overbought
// level. An undefined RSI (zero average loss, or not enough history) never
// produces a signal.
type RSI struct {
	Period int
	Low    float64
	High   float64
}

// NewRSI builds an RSI strategy. Zero values fall back to 14/30/70.
func NewRSI(period int, low, high float64) (*RSI, error) {
	if period == 0 {
		period = 14
	}
	if low == 0 && high == 0 {
		low, high = 30, 70
	}
	if period < 1 {
		return nil, fmt.Errorf("rsi: period must be positive, got %d", period)
	}
	if low < 0 || high > 100 || low >= high {
		return nil, fmt.Errorf("rsi: need 0 <= low < high <= 100, got low=%g high=%g", low, high)
	}
	return &RSI{Period: period, Low: low, High: high}, nil
}

func (s *RSI) Name() string {
	return fmt.Sprintf("rsi(%d,%g,%g)", s.Period, s.Low, s.High)
}

func (s *RSI) GenerateSignals(table *market.Table, tickers []string) (SignalTable, error) {
	if err := checkTickers(table, tickers); err != nil {
		return nil, err
	}

	out := make(SignalTable, len(tickers))
	for _, ticker := range tickers {
		rsi := indicators.Lag(indicators.RSI(table.Closes(ticker), s.Period))

		signals := make([]Signal, table.Len())
		for t := 1; t < len(signals); t++ {
			switch {
			case rsi[t] < s.Low && rsi[t-1] >= s.Low:
				signals[t] = Buy
			case rsi[t] > s.High && rsi[t-1] <= s.High:
				signals[t] = Sell
			}
		}
		out[ticker] = signals
	}
	return out, nil
}
