package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"product-catalog/internal/config"
	"product-catalog/internal/database"
	"product-catalog/internal/logger"
	"product-catalog/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg *config.Config
	log *zap.Logger

	skipMigrations bool
)

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Product catalog API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		var err error
		log, err = logger.New(cfg.Server.Env, cfg.Server.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(db database.Service) error {
			return database.RunMigrations(cmd.Context(), db.DB(), cfg.Database.MigrationsDir, log)
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(db database.Service) error {
			return database.MigrationStatus(cmd.Context(), db.DB(), cfg.Database.MigrationsDir)
		})
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "start without applying pending migrations")

	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func withDatabase(ctx context.Context, fn func(db database.Service) error) error {
	db, err := database.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	done <- true
}

func serve(ctx context.Context) error {
	log.Info("Starting product catalog API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	dbService, err := database.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	health := dbService.Health(ctx)
	log.Info("Database health check", zap.Any("health", health))

	if !skipMigrations {
		if err := database.RunMigrations(ctx, dbService.DB(), cfg.Database.MigrationsDir, log); err != nil {
			dbService.Close()
			return err
		}
		log.Info("Database migrations completed successfully")
	}

	srv := server.NewServer(cfg, log, dbService)

	done := make(chan bool, 1)
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	<-done
	log.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Error("Command failed", zap.Error(err))
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
