package api

import (
	"math"
	"time"

	"github.com/ColinLaurent/MarketPrediction/metrics"
	"github.com/ColinLaurent/MarketPrediction/strategies"
)

// BacktestRequest is the body of POST /backtest. Zero-valued fields fall
// back to the server's configured defaults.
type BacktestRequest struct {
	Tickers        []string        `json:"tickers"`
	Ticker         string          `json:"ticker,omitempty"` // single-ticker shorthand
	InitialCapital float64         `json:"initial_capital"`
	HoldMax        int             `json:"hold_max"`
	Strategy       *StrategyParams `json:"strategy,omitempty"`
	IncludeSeries  bool            `json:"include_series,omitempty"`
}

// StrategyParams selects a strategy for one request.
type StrategyParams struct {
	Name              string `json:"name"`
	strategies.Params        // short_window, long_window, threshold, period, low, high
}

// ReportResponse mirrors metrics.Report with undefined values rendered as
// null instead of tripping the JSON encoder on NaN.
type ReportResponse struct {
	FinalValue     *float64 `json:"final_value"`
	ReturnTotalPct *float64 `json:"return_total_pct"`
	Sharpe         *float64 `json:"sharpe"`
	MaxDrawdown    *float64 `json:"max_drawdown"`
	NumPeriods     int      `json:"num_periods"`
}

func newReportResponse(r metrics.Report) ReportResponse {
	return ReportResponse{
		FinalValue:     jsonFloat(r.FinalValue),
		ReturnTotalPct: jsonFloat(r.ReturnTotalPct),
		Sharpe:         jsonFloat(r.Sharpe),
		MaxDrawdown:    jsonFloat(r.MaxDrawdown),
		NumPeriods:     r.NumPeriods,
	}
}

// BacktestResponse is the body of a successful backtest request.
type BacktestResponse struct {
	RunID    string         `json:"run_id"`
	Strategy string         `json:"strategy"`
	Tickers  []string       `json:"tickers"`
	HoldMax  int            `json:"hold_max"`
	Report   ReportResponse `json:"report"`

	// Series are only populated when include_series is set.
	Dates           []string             `json:"dates,omitempty"`
	Equity          []float64            `json:"equity,omitempty"`
	StrategyReturns []float64            `json:"strategy_returns,omitempty"`
	MarketReturns   map[string][]float64 `json:"market_returns,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// jsonFloat maps NaN to nil so it serializes as null.
func jsonFloat(x float64) *float64 {
	if math.IsNaN(x) {
		return nil
	}
	return &x
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format("2006-01-02")
	}
	return out
}
