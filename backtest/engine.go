package backtest

import (
	"context"
	"fmt"

	"github.com/ColinLaurent/MarketPrediction/journal"
	"github.com/ColinLaurent/MarketPrediction/market"
	"github.com/ColinLaurent/MarketPrediction/pkg/id"
	"github.com/ColinLaurent/MarketPrediction/strategies"
)

// Config are the run parameters of one backtest.
type Config struct {
	Tickers        []string
	Strategy       strategies.Strategy
	HoldMax        int             // forced-liquidation age in days
	InitialCapital float64         // starting cash
	Journal        journal.Journal // optional; nil disables journaling
}

// Engine runs one backtest. It owns the run's Ledger and Wallet, so
// independent engines may run concurrently; a started run must not be
// mutated from outside.
type Engine struct {
	table *market.Table
	cfg   Config
}

// NewEngine validates the configuration against the price table and returns
// a ready engine. Configuration problems fail here, before any simulation.
func NewEngine(table *market.Table, cfg Config) (*Engine, error) {
	if table == nil || table.Len() == 0 {
		return nil, fmt.Errorf("backtest: empty price table")
	}
	if len(cfg.Tickers) == 0 {
		return nil, fmt.Errorf("backtest: no tickers")
	}
	for _, ticker := range cfg.Tickers {
		if !table.HasTicker(ticker) {
			return nil, fmt.Errorf("backtest: ticker %s not in price table", ticker)
		}
	}
	if cfg.Strategy == nil {
		return nil, fmt.Errorf("backtest: strategy is required")
	}
	if cfg.HoldMax <= 0 {
		return nil, fmt.Errorf("backtest: hold_max must be positive, got %d", cfg.HoldMax)
	}
	if cfg.InitialCapital <= 0 {
		return nil, fmt.Errorf("backtest: initial capital must be positive, got %g", cfg.InitialCapital)
	}
	if cfg.Journal == nil {
		cfg.Journal = journal.Noop{}
	}
	return &Engine{table: table, cfg: cfg}, nil
}

// Run executes the day-by-day loop and returns the completed trajectory.
// Days are processed strictly in order; each day's decisions depend on the
// ledger and wallet state accumulated over every prior day.
//
// Per day, per ticker: forced liquidation of matured lots at the open, the
// day's signal at the open (sell or buy, never both), then mark-to-market
// at the close. Open lots at the end of the data are not liquidated; they
// contribute mark-to-market value to the final equity point.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	signals, err := e.cfg.Strategy.GenerateSignals(e.table, e.cfg.Tickers)
	if err != nil {
		return nil, fmt.Errorf("generate signals: %w", err)
	}

	ledger := NewLedger()
	wallet := NewWallet(e.cfg.InitialCapital, ledger)

	days := e.table.Len()
	res := &Result{
		RunID:   id.New(),
		Dates:   e.table.Dates(),
		Equity:  make([]float64, 0, days+1),
		Cash:    make([]float64, 0, days+1),
		Markets: make(map[string][]PositionState, len(e.cfg.Tickers)),
	}

	// Day 0: nothing held yet, all value is cash.
	res.Equity = append(res.Equity, e.cfg.InitialCapital)
	res.Cash = append(res.Cash, e.cfg.InitialCapital)
	for _, ticker := range e.cfg.Tickers {
		res.Markets[ticker] = append(res.Markets[ticker], PositionState{})
	}

	for i := 0; i < days; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		date := e.table.Date(i)

		for _, ticker := range e.cfg.Tickers {
			bar := e.table.Bar(ticker, i)

			if freed := wallet.ForceClose(ticker, e.cfg.HoldMax, bar.Open); freed > 0 {
				if err := e.record(res, Trade{
					Ticker: ticker, Side: SideForcedSell,
					Time: date, Price: bar.Open, Quantity: freed,
				}); err != nil {
					return nil, err
				}
			}

			switch signals[ticker][i] {
			case strategies.Sell:
				if wallet.TrySell(ticker, bar.Open) {
					if err := e.record(res, Trade{
						Ticker: ticker, Side: SideSell,
						Time: date, Price: bar.Open, Quantity: 1,
					}); err != nil {
						return nil, err
					}
				}
			case strategies.Buy:
				if wallet.TryBuy(ticker, date, bar.Open) {
					if err := e.record(res, Trade{
						Ticker: ticker, Side: SideBuy,
						Time: date, Price: bar.Open, Quantity: 1,
					}); err != nil {
						return nil, err
					}
				}
			}

			wallet.MarkToMarket(ticker, bar.Close)
		}

		res.Equity = append(res.Equity, wallet.TotalEquity())
		res.Cash = append(res.Cash, wallet.Cash())
		for _, ticker := range e.cfg.Tickers {
			res.Markets[ticker] = append(res.Markets[ticker], PositionState{
				Quantity: wallet.Quantity(ticker),
				Value:    wallet.MarketValue(ticker),
			})
		}
		if err := e.cfg.Journal.RecordEquity(journal.EquitySnapshot{
			RunID:  res.RunID,
			Time:   date,
			Cash:   wallet.Cash(),
			Equity: wallet.TotalEquity(),
		}); err != nil {
			return nil, fmt.Errorf("journal equity: %w", err)
		}

		ledger.AdvanceDay()
	}

	return res, nil
}

// record appends a trade to the result and mirrors it into the journal.
func (e *Engine) record(res *Result, t Trade) error {
	t.TradeID = id.New()
	res.Trades = append(res.Trades, t)
	if err := e.cfg.Journal.RecordTrade(journal.TradeRecord{
		TradeID:  t.TradeID,
		RunID:    res.RunID,
		Ticker:   t.Ticker,
		Side:     string(t.Side),
		Time:     t.Time,
		Price:    t.Price,
		Quantity: t.Quantity,
	}); err != nil {
		return fmt.Errorf("journal trade: %w", err)
	}
	return nil
}
