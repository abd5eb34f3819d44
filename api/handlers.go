package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ColinLaurent/MarketPrediction/backtest"
	"github.com/ColinLaurent/MarketPrediction/metrics"
	"github.com/ColinLaurent/MarketPrediction/strategies"
)

// quickBacktest handles GET /backtest?ticker=AAPL: one ticker, server
// defaults for everything else.
func (s *Server) quickBacktest(c *gin.Context) {
	ticker := c.DefaultQuery("ticker", s.cfg.Data.Tickers[0])

	s.execute(c, BacktestRequest{Tickers: []string{ticker}})
}

// runBacktest handles POST /backtest.
func (s *Server) runBacktest(c *gin.Context) {
	var req BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", err.Error()))
		return
	}
	s.execute(c, req)
}

func (s *Server) execute(c *gin.Context, req BacktestRequest) {
	tickers := req.Tickers
	if len(tickers) == 0 && req.Ticker != "" {
		tickers = []string{req.Ticker}
	}
	if len(tickers) == 0 {
		tickers = s.cfg.Data.Tickers
	}

	capital := req.InitialCapital
	if capital == 0 {
		capital = s.cfg.Backtest.InitialCapital
	}
	holdMax := req.HoldMax
	if holdMax == 0 {
		holdMax = s.cfg.Backtest.HoldMax
	}

	var (
		strat strategies.Strategy
		err   error
	)
	if req.Strategy != nil {
		strat, err = strategies.ByName(req.Strategy.Name, req.Strategy.Params)
	} else {
		strat, err = s.cfg.BuildStrategy()
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_STRATEGY", err.Error()))
		return
	}

	eng, err := backtest.NewEngine(s.table, backtest.Config{
		Tickers:        tickers,
		Strategy:       strat,
		HoldMax:        holdMax,
		InitialCapital: capital,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_CONFIG", err.Error()))
		return
	}

	res, err := eng.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("RUN_FAILED", err.Error()))
		return
	}

	report := metrics.BasicReport(res.Equity, res.Dates)
	resp := BacktestResponse{
		RunID:    res.RunID,
		Strategy: strat.Name(),
		Tickers:  tickers,
		HoldMax:  holdMax,
		Report:   newReportResponse(report),
	}

	if req.IncludeSeries {
		aligned := metrics.Align(res.Equity, res.Dates)
		resp.Dates = formatDates(res.Dates)
		resp.Equity = aligned
		resp.StrategyReturns = metrics.LogReturns(aligned)
		resp.MarketReturns = make(map[string][]float64, len(tickers))
		for _, ticker := range tickers {
			resp.MarketReturns[ticker] = metrics.LogReturns(s.table.Closes(ticker))
		}
	}

	s.log.Info().
		Str("run_id", res.RunID).
		Str("strategy", strat.Name()).
		Strs("tickers", tickers).
		Int("trades", len(res.Trades)).
		Msg("backtest complete")

	c.JSON(http.StatusOK, resp)
}
