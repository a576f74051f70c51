package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickerpulse/backend/pkg/config"
	"github.com/tickerpulse/backend/pkg/logger"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [movers|squeeze]",
	Short: "Run a market scan",
	Long: `Run a market scan and print the result as JSON.

Example:
  go run ./cmd/pulse scan movers
  go run ./cmd/pulse scan squeeze`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"movers", "squeeze"},
	RunE:      runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	svc := buildServices(cfg, log)

	ctx, cancel := context.WithTimeout(cmd.Context(), 120*time.Second)
	defer cancel()

	var result interface{}
	switch args[0] {
	case "movers":
		result, err = svc.scanner.TopMovers(ctx)
	case "squeeze":
		result, err = svc.scanner.SqueezeCandidates(ctx)
	default:
		return fmt.Errorf("unknown scan %q, want movers or squeeze", args[0])
	}
	if err != nil {
		log.WithError(err).Warn("Scan degraded, serving partial result")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
