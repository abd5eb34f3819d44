package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ColinLaurent/MarketPrediction/api"
	"github.com/ColinLaurent/MarketPrediction/market"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve backtests over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		table, err := market.Load(cfg.Data.Path)
		if err != nil {
			return fmt.Errorf("load prices: %w", err)
		}
		log.Info().Str("path", cfg.Data.Path).Int("days", table.Len()).Msg("dataset loaded")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := api.NewServer(table, cfg, log.Logger)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: config)")
}
