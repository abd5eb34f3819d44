// Package api exposes backtest runs over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/ColinLaurent/MarketPrediction/config"
	"github.com/ColinLaurent/MarketPrediction/market"
)

// Server serves backtest runs over a fully materialized price table. The
// table is read-only, so concurrent requests each run their own engine with
// no shared mutable state.
type Server struct {
	table  *market.Table
	cfg    *config.Config
	log    zerolog.Logger
	router *gin.Engine
}

func NewServer(table *market.Table, cfg *config.Config, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{table: table, cfg: cfg, log: log, router: router}

	router.Use(s.requestLog())
	router.GET("/", s.home)
	router.GET("/health", s.health)
	router.GET("/backtest", s.quickBacktest)
	router.POST("/backtest", s.runBacktest)

	return s
}

// Handler returns the router wrapped with CORS.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	s.log.Info().Str("addr", s.cfg.Server.Addr).Msg("api listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "MarketPrediction API"})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
