package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ColinLaurent/MarketPrediction/journal"
	"github.com/ColinLaurent/MarketPrediction/metrics"
)

var reportFlags struct {
	dbPath string
	runID  string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show stored runs from a SQLite journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportFlags.dbPath == "" {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Journal.Type != "sqlite" || cfg.Journal.DBPath == "" {
				return fmt.Errorf("report needs a SQLite journal; pass --db or configure journal.type: sqlite")
			}
			reportFlags.dbPath = cfg.Journal.DBPath
		}

		j, err := journal.NewSQLite(reportFlags.dbPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()

		if reportFlags.runID != "" {
			return printRun(j, reportFlags.runID)
		}
		return listRuns(j)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFlags.dbPath, "db", "", "SQLite journal path (default: config)")
	reportCmd.Flags().StringVar(&reportFlags.runID, "run", "", "Run ID to show in detail (default: list all)")
}

func listRuns(j *journal.SQLiteJournal) error {
	runs, err := j.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %-22s %-16s hold=%-3d final=%.2f return=%s\n",
			r.RunID, r.Strategy, r.TickerList(), r.HoldMax, r.FinalValue, pct(r.ReturnTotalPct))
	}
	return nil
}

func printRun(j *journal.SQLiteJournal, runID string) error {
	r, err := j.GetRun(runID)
	if err != nil {
		return fmt.Errorf("run %s: %w", runID, err)
	}

	trades, err := j.ListTrades(runID)
	if err != nil {
		return err
	}

	printReport(r.RunID, r.Strategy, r.Tickers, metrics.Report{
		FinalValue:     r.FinalValue,
		ReturnTotalPct: r.ReturnTotalPct,
		Sharpe:         r.Sharpe,
		MaxDrawdown:    r.MaxDrawdown,
		NumPeriods:     r.Periods,
	}, len(trades))
	if len(trades) > 0 {
		fmt.Println("\nTrades:")
		for _, t := range trades {
			fmt.Printf("  %s  %-12s %-6s qty=%d @ %.2f\n",
				t.Time.Format("2006-01-02"), t.Side, t.Ticker, t.Quantity, t.Price)
		}
	}
	return nil
}
