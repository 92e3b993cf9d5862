package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-reconciler/core/archive"
	"stock-reconciler/core/config"
	"stock-reconciler/core/database"
	"stock-reconciler/core/loader"
	"stock-reconciler/core/logger"
	"stock-reconciler/core/metrics"
	"stock-reconciler/core/middleware/auth"
	"stock-reconciler/core/middleware/rayid"
	"stock-reconciler/core/runlock"
	"stock-reconciler/core/scheduler"
	"stock-reconciler/core/storage"

	"stock-reconciler/feature/exits"
	"stock-reconciler/feature/exits/models"
	"stock-reconciler/feature/exits/reconcile"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "stock-reconciler/docs/swagger"
)

// @title Stock Reconciler API
// @version 1.0
// @description Admin API for the stock exit reconciliation service.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation service",
	Long:  `Starts the HTTP admin server and the periodic reconciliation scheduler.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.EnsureSchema(db, models.All()...); err != nil {
			logg.Fatal("Failed to prepare schema", zap.Error(err))
		}

		// 4. Run lease (redis when configured, in-process otherwise)
		lease, err := runlock.New(cfg.Redis)
		if err != nil {
			logg.Fatal("Failed to initialize run lease", zap.Error(err))
		}

		// 5. Optional archive storage
		var archiver *archive.ObjectArchiver
		var fetcher exits.Fetcher
		if cfg.Storage.Enabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
				cancel()
				logg.Fatal("Failed to prepare archive bucket", zap.Error(err))
			}
			cancel()
			archiver = archive.NewObjectArchiver(client, cfg.Storage.Bucket, cfg.Reconcile.ArchivePrefix)
			fetcher = archiver
			logg.Info("Archive storage enabled", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 6. Build the reconciler and service
		m := metrics.New()
		opts := []reconcile.Option{
			reconcile.WithMetrics(m),
			reconcile.WithBatchLimit(cfg.Reconcile.BatchLimit),
		}
		if archiver != nil {
			opts = append(opts, reconcile.WithArchiver(archiver))
		}
		reconciler := reconcile.New(db, logg, opts...)
		svc := exits.NewService(db, logg, reconciler, lease, fetcher)

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Request logging with Zap + RayID
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public endpoints: docs and metrics
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

		// Auth protects everything below
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		mgr := loader.NewManager()
		mgr.Register(exits.NewFeature(svc))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Scheduler for automatic runs
		schedCtx, stopScheduler := context.WithCancel(context.Background())
		sched := scheduler.New(cfg.Reconcile.Interval(), logg)
		go sched.Run(schedCtx, "exits", func(ctx context.Context) error {
			_, err := svc.Reconcile(ctx, reconcile.Options{})
			if errors.Is(err, exits.ErrRunInProgress) {
				// An operator-triggered run is still going; the next tick retries.
				return nil
			}
			return err
		})

		// 10. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 11. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down...")
		stopScheduler()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
