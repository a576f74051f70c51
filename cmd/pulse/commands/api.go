package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickerpulse/backend/internal/api"
	"github.com/tickerpulse/backend/internal/api/handlers"
	"github.com/tickerpulse/backend/internal/watchlist"
	"github.com/tickerpulse/backend/pkg/config"
	"github.com/tickerpulse/backend/pkg/database"
	"github.com/tickerpulse/backend/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Start the HTTP API server.

Endpoints:
  GET    /health                  - Health check
  GET    /metrics                 - Prometheus metrics
  GET    /api/report/{ticker}     - Full analyst report
  GET    /api/scan/movers         - Top gainers scan
  GET    /api/scan/squeeze        - Squeeze candidates scan
  GET    /api/watchlist           - List watched tickers
  POST   /api/watchlist           - Add a ticker
  DELETE /api/watchlist/{ticker}  - Remove a ticker
  GET    /api/stream/{ticker}     - WebSocket quote stream

Example:
  go run ./cmd/pulse api
  go run ./cmd/pulse api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	svc := buildServices(cfg, log)

	h := api.Handlers{
		Report: handlers.NewReportHandler(svc.assembler, log),
		Scan:   handlers.NewScanHandler(svc.scanner, log),
		Stream: handlers.NewStreamHandler(svc.finnhub, log),
	}

	// The watchlist store is optional; without DATABASE_URL the server
	// runs with those routes disabled.
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		repo := watchlist.NewRepository(db.Pool)
		if err := repo.Schema(cmd.Context()); err != nil {
			return fmt.Errorf("ensure watchlist schema: %w", err)
		}
		h.Watchlist = handlers.NewWatchlistHandler(repo, log)

		log.Info("Connected to database, watchlist enabled")
	} else {
		log.Warn("DATABASE_URL not set, watchlist routes disabled")
	}

	router := api.NewRouter(h, log, cfg.MetricsEnabled)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
