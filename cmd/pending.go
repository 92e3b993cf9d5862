package cmd

import (
	"context"
	"fmt"

	"stock-reconciler/core/config"
	"stock-reconciler/core/database"
	"stock-reconciler/core/logger"
	"stock-reconciler/core/runlock"
	"stock-reconciler/feature/exits"
	"stock-reconciler/feature/exits/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// pendingCmd lists pending exits and their expiry state.
var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List pending exits and their expiry state",
	RunE:  runPending,
}

func init() {
	RootCmd.AddCommand(pendingCmd)
}

func runPending(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	svc := exits.NewService(db, l, reconcile.New(db, l), runlock.NewMemoryLease(), nil)
	pending, err := svc.Pending(ctx)
	if err != nil {
		return err
	}

	l.Info("Pending exits", zap.Int("count", len(pending)))
	for _, e := range pending {
		fields := []zap.Field{
			zap.Uint("exit_id", e.ID),
			zap.String("reference", e.Reference),
			zap.Int("items", len(e.Items)),
		}
		if e.PendingExpiresAt != nil {
			fields = append(fields, zap.Time("expires_at", *e.PendingExpiresAt))
		}
		l.Info("Pending exit", fields...)
	}

	return nil
}
