package strategies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinLaurent/MarketPrediction/market"
)

// newTestTable builds a table whose opens equal its closes; signal
// generation only ever reads closes.
func newTestTable(t *testing.T, closes map[string][]float64) *market.Table {
	t.Helper()

	n := 0
	for _, series := range closes {
		n = len(series)
		break
	}

	dates := make([]time.Time, n)
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = base.AddDate(0, 0, i)
	}

	bars := make(map[string][]market.Bar, len(closes))
	for ticker, series := range closes {
		bs := make([]market.Bar, len(series))
		for i, c := range series {
			bs[i] = market.Bar{Open: c, Close: c}
		}
		bars[ticker] = bs
	}

	table, err := market.NewTable(dates, bars)
	require.NoError(t, err)
	return table
}

func TestByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "trend", want: "trend(5,20)"},
		{name: "Trend-Following", want: "trend(5,20)"},
		{name: "ma-threshold", want: "ma-threshold(5,30,0.9)"},
		{name: "rsi", want: "rsi(14,30,70)"},
		{name: "momentum", wantErr: true},
		{name: "", wantErr: true},
	}
	for _, tc := range tests {
		strat, err := ByName(tc.name, Params{})
		if tc.wantErr {
			assert.Error(t, err, tc.name)
			continue
		}
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, strat.Name())
	}
}

func TestByNameRejectsBadParams(t *testing.T) {
	t.Parallel()

	_, err := ByName("trend", Params{ShortWindow: 20, LongWindow: 5})
	assert.Error(t, err)

	_, err = ByName("ma-threshold", Params{Threshold: 1.5})
	assert.Error(t, err)

	_, err = ByName("rsi", Params{Low: 70, High: 30})
	assert.Error(t, err)
}

func TestTrendFollowingCrosses(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, map[string][]float64{
		"ACME": {10, 10, 10, 10, 20, 20, 5, 5, 5},
	})

	strat, err := NewTrendFollowing(2, 3)
	require.NoError(t, err)

	signals, err := strat.GenerateSignals(table, []string{"ACME"})
	require.NoError(t, err)

	want := []Signal{Hold, Hold, Hold, Hold, Hold, Buy, Hold, Sell, Hold}
	assert.Equal(t, want, signals["ACME"])
}

func TestTrendFollowingUnknownTicker(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, map[string][]float64{"ACME": {1, 2, 3}})
	strat, err := NewTrendFollowing(2, 3)
	require.NoError(t, err)

	_, err = strat.GenerateSignals(table, []string{"MISSING"})
	assert.Error(t, err)
}

func TestMovingAverageBand(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, map[string][]float64{
		"ACME": {100, 100, 100, 100, 100, 70, 70, 150, 150},
	})

	strat, err := NewMovingAverage(2, 3, 0.9)
	require.NoError(t, err)

	signals, err := strat.GenerateSignals(table, []string{"ACME"})
	require.NoError(t, err)

	// The short average crosses below 0.9*long on day 7 (entry on the dip)
	// and above 1.1*long on day 8 (exit on the rally).
	want := []Signal{Hold, Hold, Hold, Hold, Hold, Hold, Hold, Buy, Sell}
	assert.Equal(t, want, signals["ACME"])
}

func TestRSISignals(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, map[string][]float64{
		"ACME": {100, 101, 102, 101, 90, 80, 95, 94.9, 94},
	})

	strat, err := NewRSI(2, 30, 70)
	require.NoError(t, err)

	signals, err := strat.GenerateSignals(table, []string{"ACME"})
	require.NoError(t, err)

	want := []Signal{Hold, Hold, Hold, Hold, Hold, Buy, Hold, Hold, Sell}
	assert.Equal(t, want, signals["ACME"])
}

func TestRSIFlatSeriesAllHold(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, map[string][]float64{
		"ACME": {50, 50, 50, 50, 50, 50, 50, 50, 50, 50},
	})

	strat, err := NewRSI(3, 30, 70)
	require.NoError(t, err)

	signals, err := strat.GenerateSignals(table, []string{"ACME"})
	require.NoError(t, err)

	for i, sig := range signals["ACME"] {
		assert.Equal(t, Hold, sig, "day %d", i)
	}
}

// Changing the final day's close must not change any signal: every
// indicator is lagged by one day, so day T's close is never an input to day
// T's decision.
func TestLookaheadSafety(t *testing.T) {
	t.Parallel()

	base := []float64{10, 10, 10, 10, 20, 20, 5, 5, 5}
	bumped := append(append([]float64{}, base[:len(base)-1]...), 999.0)

	strats := []Strategy{
		mustStrategy(t, "trend", Params{ShortWindow: 2, LongWindow: 3}),
		mustStrategy(t, "ma-threshold", Params{ShortWindow: 2, LongWindow: 3, Threshold: 0.9}),
		mustStrategy(t, "rsi", Params{Period: 2, Low: 30, High: 70}),
	}

	for _, strat := range strats {
		a, err := strat.GenerateSignals(newTestTable(t, map[string][]float64{"ACME": base}), []string{"ACME"})
		require.NoError(t, err)
		b, err := strat.GenerateSignals(newTestTable(t, map[string][]float64{"ACME": bumped}), []string{"ACME"})
		require.NoError(t, err)

		assert.Equal(t, a["ACME"], b["ACME"], strat.Name())
	}
}

func mustStrategy(t *testing.T, name string, p Params) Strategy {
	t.Helper()
	strat, err := ByName(name, p)
	require.NoError(t, err)
	return strat
}

func TestSignalString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "buy", Buy.String())
	assert.Equal(t, "hold", Hold.String())
	assert.Equal(t, "sell", Sell.String())
}
