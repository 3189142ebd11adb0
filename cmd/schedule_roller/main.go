// Command schedule_roller advances the next payment date of every enabled
// subscription whose date has already passed.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/adapters/database/pgsql"
	"github.com/SscSPs/subscription_tracker/internal/core/services"
	"github.com/SscSPs/subscription_tracker/internal/platform/config"
	"github.com/SscSPs/subscription_tracker/internal/platform/metrics"
	"github.com/SscSPs/subscription_tracker/pkg/database"
	"github.com/spf13/cobra"
)

var (
	dryRun   bool
	once     bool
	interval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "schedule_roller",
	Short: "Roll expired subscription schedules forward",
	Long: `Finds enabled subscriptions whose next payment is at or before now and
advances each one by its cadence until the date lies in the future.`,
	Example: `  # Preview what would change
  schedule_roller --dry-run --once

  # Keep running, sweeping every 30 minutes
  schedule_roller --interval 30m`,
	SilenceUsage: true,
	RunE:         runRoller,
}

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without storing them")
	rootCmd.Flags().BoolVar(&once, "once", false, "Run a single sweep and exit")
	rootCmd.Flags().DurationVar(&interval, "interval", 0, "Time between sweeps (default ROLL_INTERVAL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRoller(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if interval <= 0 {
		interval = cfg.RollInterval
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return fmt.Errorf("initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool)
	svc := services.NewSubscriptionService(repos.SubscriptionRepo, repos.CategoryRepo,
		services.WithSubscriptionMetrics(metrics.New()),
	)

	sweep := func() error {
		rolled, err := svc.RollExpired(ctx, time.Now(), dryRun)
		if err != nil {
			return err
		}
		renderRolled(cmd.OutOrStdout(), rolled, dryRun)
		logger.Info("Sweep finished", slog.Int("rolled", len(rolled)), slog.Bool("dry_run", dryRun))
		return nil
	}

	if err := sweep(); err != nil {
		return fmt.Errorf("roll expired schedules: %w", err)
	}
	if once {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("Roller running", slog.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Roller stopped")
			return nil
		case <-ticker.C:
			if err := sweep(); err != nil {
				// keep the loop alive; the next tick retries
				logger.Error("Sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}
