package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tickerpulse/backend/internal/scheduler"
	"github.com/tickerpulse/backend/internal/scheduler/jobs"
	"github.com/tickerpulse/backend/internal/watchlist"
	"github.com/tickerpulse/backend/pkg/config"
	"github.com/tickerpulse/backend/pkg/database"
	"github.com/tickerpulse/backend/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Start the background job scheduler",
	Long: `Start the cron scheduler.

Jobs:
  market_scan        - both market scans every 30 minutes during trading hours
  watchlist_reports  - report refresh for watched tickers after the close

Example:
  go run ./cmd/pulse scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	svc := buildServices(cfg, log)

	sched := scheduler.New(log)

	if err := sched.AddJob(jobs.NewMarketScanJob(svc.scanner, log)); err != nil {
		return fmt.Errorf("add market scan job: %w", err)
	}

	// The watchlist refresh only makes sense with a database.
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

		if err := sched.AddJob(jobs.NewWatchlistReportJob(repo, svc.assembler, log)); err != nil {
			return fmt.Errorf("add watchlist report job: %w", err)
		}
	} else {
		log.Warn("DATABASE_URL not set, watchlist report job disabled")
	}

	sched.Start()
	defer sched.Stop()

	fmt.Println("Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
