package cmd

import (
	"context"
	"errors"
	"fmt"

	"stock-reconciler/core/archive"
	"stock-reconciler/core/config"
	"stock-reconciler/core/database"
	"stock-reconciler/core/logger"
	"stock-reconciler/core/runlock"
	"stock-reconciler/core/storage"
	"stock-reconciler/feature/exits"
	"stock-reconciler/feature/exits/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile exits command
	dryRunExits bool
	limitExits  int
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile abandoned stock reservations",
	Long: `Reconcile reverses stock reservations whose pending exit has expired.
Stock is restored to the warehouse rows and the stale records are removed.`,
}

// exitsReconcileCmd performs one reconciliation run on demand.
var exitsReconcileCmd = &cobra.Command{
	Use:   "exits",
	Short: "Reconcile expired pending exits (restore stock + delete records)",
	Long: `Reconcile expired pending exits.

Each eligible exit is processed in its own transaction: reserved quantities
are restored to the matching warehouse stock rows, then the exit and its
line items are deleted. One exit's failure never blocks the others.

Examples:
  # Run once, same behavior as the hourly schedule
  reconcile exits

  # Preview eligible exits without mutating anything
  reconcile exits --dry-run

  # Cap the run at 50 exits
  reconcile exits --limit 50`,
	RunE: runExitsReconcile,
}

func init() {
	// Add exits command to reconcile
	reconcileCmd.AddCommand(exitsReconcileCmd)

	// Add flags
	exitsReconcileCmd.Flags().BoolVar(&dryRunExits, "dry-run", false, "Report eligible exits without mutating")
	exitsReconcileCmd.Flags().IntVar(&limitExits, "limit", 0, "Cap the number of exits processed (0 = configured batch limit)")

	// Add reconcile to root
	RootCmd.AddCommand(reconcileCmd)
}

func runExitsReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting exit reconciliation")

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run lease: the on-demand run must not overlap a scheduled one
	lease, err := runlock.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize run lease: %w", err)
	}

	// Optional archive storage, same wiring as the server
	var archiver *archive.ObjectArchiver
	var fetcher exits.Fetcher
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return fmt.Errorf("failed to prepare archive bucket: %w", err)
		}
		archiver = archive.NewObjectArchiver(client, cfg.Storage.Bucket, cfg.Reconcile.ArchivePrefix)
		fetcher = archiver
	}

	batchLimit := cfg.Reconcile.BatchLimit
	if limitExits > 0 {
		batchLimit = limitExits
	}

	opts := []reconcile.Option{reconcile.WithBatchLimit(batchLimit)}
	if archiver != nil {
		opts = append(opts, reconcile.WithArchiver(archiver))
	}
	reconciler := reconcile.New(db, l, opts...)
	svc := exits.NewService(db, l, reconciler, lease, fetcher)

	report, err := svc.Reconcile(ctx, reconcile.Options{DryRun: dryRunExits})
	if errors.Is(err, exits.ErrRunInProgress) {
		l.Warn("Another reconciliation run is in progress, nothing to do")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reconciliation run failed: %w", err)
	}

	printRunReport(l, report)
	return nil
}

// printRunReport logs a formatted run summary.
func printRunReport(l *zap.Logger, report *reconcile.Report) {
	l.Info("Reconciliation report",
		zap.String("run_id", report.RunID),
		zap.String("outcome", report.Outcome()),
		zap.Bool("dry_run", report.DryRun),
		zap.Int("found", report.Found),
		zap.Int("processed", report.Processed),
		zap.Int("failed", report.Failed),
		zap.Int("items_restored", report.ItemsRestored),
		zap.Int("items_skipped", report.ItemsSkipped),
		zap.Int("quantity_restored", report.QuantityRestored),
	)

	// Show a sample of per-exit outcomes (max 5)
	maxShow := 5
	if len(report.Outcomes) < maxShow {
		maxShow = len(report.Outcomes)
	}
	for i := 0; i < maxShow; i++ {
		o := report.Outcomes[i]
		fields := []zap.Field{
			zap.Uint("exit_id", o.ExitID),
			zap.String("reference", o.Reference),
			zap.Int("items_restored", o.ItemsRestored),
			zap.Int("items_skipped", o.ItemsSkipped),
		}
		if o.Failed() {
			fields = append(fields, zap.String("error", o.Error))
			l.Warn("Exit outcome", fields...)
		} else {
			l.Info("Exit outcome", fields...)
		}
	}
	if len(report.Outcomes) > maxShow {
		l.Info("Additional outcomes not shown", zap.Int("count", len(report.Outcomes)-maxShow))
	}
}
