package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinLaurent/MarketPrediction/config"
	"github.com/ColinLaurent/MarketPrediction/market"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	days := 30
	dates := make([]time.Time, days)
	bars := make([]market.Bar, days)
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		dates[i] = base.AddDate(0, 0, i)
		px := 100 + float64(i%7)
		bars[i] = market.Bar{Open: px, Close: px + 0.5}
	}

	table, err := market.NewTable(dates, map[string][]market.Bar{"AAPL": bars})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Data.Tickers = []string{"AAPL"}

	return NewServer(table, cfg, zerolog.Nop())
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthAndHome(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "MarketPrediction")
}

func TestQuickBacktest(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/backtest?ticker=AAPL", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp BacktestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, []string{"AAPL"}, resp.Tickers)
	assert.Equal(t, 30, resp.Report.NumPeriods)
}

func TestRunBacktestWithSeries(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/backtest", BacktestRequest{
		Ticker:         "AAPL",
		InitialCapital: 5000,
		HoldMax:        5,
		Strategy:       &StrategyParams{Name: "trend"},
		IncludeSeries:  true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp BacktestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "trend(5,20)", resp.Strategy)
	assert.Equal(t, 5, resp.HoldMax)
	assert.Len(t, resp.Equity, 30)
	assert.Len(t, resp.StrategyReturns, 29)
	assert.Len(t, resp.MarketReturns["AAPL"], 29)
	assert.Len(t, resp.Dates, 30)
}

func TestRunBacktestErrors(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	// Malformed body.
	req := httptest.NewRequest(http.MethodPost, "/backtest", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown strategy name.
	rec = doRequest(t, s, http.MethodPost, "/backtest", BacktestRequest{
		Ticker:   "AAPL",
		Strategy: &StrategyParams{Name: "astrology"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_STRATEGY")

	// Ticker absent from the price table.
	rec = doRequest(t, s, http.MethodPost, "/backtest", BacktestRequest{Ticker: "NOPE"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CONFIG")

	// Negative hold_max fails engine validation.
	rec = doRequest(t, s, http.MethodPost, "/backtest", BacktestRequest{
		Ticker:  "AAPL",
		HoldMax: -2,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
