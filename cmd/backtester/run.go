package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ColinLaurent/MarketPrediction/backtest"
	"github.com/ColinLaurent/MarketPrediction/journal"
	"github.com/ColinLaurent/MarketPrediction/market"
	"github.com/ColinLaurent/MarketPrediction/metrics"
)

var runFlags struct {
	dataPath string
	tickers  []string
	strategy string
	holdMax  int
	capital  float64
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest and print the summary report",
	RunE:  runBacktest,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.dataPath, "data", "", "Price dataset (.csv, .csv.xz or .zip)")
	runCmd.Flags().StringSliceVar(&runFlags.tickers, "tickers", nil, "Tickers to trade (default: config)")
	runCmd.Flags().StringVar(&runFlags.strategy, "strategy", "", "Strategy name: trend, ma-threshold, rsi (default: config)")
	runCmd.Flags().IntVar(&runFlags.holdMax, "hold-max", 0, "Max holding days before forced liquidation (default: config)")
	runCmd.Flags().Float64Var(&runFlags.capital, "capital", 0, "Initial capital (default: config)")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags override the file config.
	if runFlags.dataPath != "" {
		cfg.Data.Path = runFlags.dataPath
	}
	if len(runFlags.tickers) > 0 {
		cfg.Data.Tickers = runFlags.tickers
	}
	if runFlags.strategy != "" {
		cfg.Strategy.Name = runFlags.strategy
	}
	if runFlags.holdMax > 0 {
		cfg.Backtest.HoldMax = runFlags.holdMax
	}
	if runFlags.capital > 0 {
		cfg.Backtest.InitialCapital = runFlags.capital
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	table, err := market.Load(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("load prices: %w", err)
	}
	log.Info().Str("path", cfg.Data.Path).Int("days", table.Len()).
		Strs("tickers", cfg.Data.Tickers).Msg("dataset loaded")

	strat, err := cfg.BuildStrategy()
	if err != nil {
		return err
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	eng, err := backtest.NewEngine(table, backtest.Config{
		Tickers:        cfg.Data.Tickers,
		Strategy:       strat,
		HoldMax:        cfg.Backtest.HoldMax,
		InitialCapital: cfg.Backtest.InitialCapital,
		Journal:        j,
	})
	if err != nil {
		return err
	}

	res, err := eng.Run(cmd.Context())
	if err != nil {
		return err
	}

	report := metrics.BasicReport(res.Equity, res.Dates)

	if err := j.RecordRun(journal.RunRecord{
		RunID:          res.RunID,
		Strategy:       strat.Name(),
		Tickers:        cfg.Data.Tickers,
		HoldMax:        cfg.Backtest.HoldMax,
		InitialCapital: cfg.Backtest.InitialCapital,
		FinalValue:     report.FinalValue,
		ReturnTotalPct: report.ReturnTotalPct,
		Sharpe:         report.Sharpe,
		MaxDrawdown:    report.MaxDrawdown,
		Start:          res.Dates[0],
		End:            res.Dates[len(res.Dates)-1],
		Periods:        report.NumPeriods,
	}); err != nil {
		return fmt.Errorf("journal run: %w", err)
	}

	printReport(res.RunID, strat.Name(), cfg.Data.Tickers, report, len(res.Trades))
	return nil
}

func printReport(runID, strategy string, tickers []string, r metrics.Report, trades int) {
	fmt.Printf("Run:           %s\n", runID)
	fmt.Printf("Strategy:      %s\n", strategy)
	fmt.Printf("Tickers:       %s\n", strings.Join(tickers, ", "))
	fmt.Printf("Periods:       %d\n", r.NumPeriods)
	fmt.Printf("Trades:        %d\n", trades)
	fmt.Printf("Final value:   %.2f\n", r.FinalValue)
	fmt.Printf("Total return:  %s\n", pct(r.ReturnTotalPct))
	fmt.Printf("Sharpe:        %s\n", num(r.Sharpe))
	fmt.Printf("Max drawdown:  %s\n", pct(r.MaxDrawdown))
}

func num(x float64) string {
	if math.IsNaN(x) {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", x)
}

func pct(x float64) string {
	if math.IsNaN(x) {
		return "undefined"
	}
	return fmt.Sprintf("%.2f%%", x*100)
}
