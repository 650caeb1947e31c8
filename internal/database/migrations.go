package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const dialect = "postgres"

// RunMigrations applies every pending catalog migration found in migrationsDir
func RunMigrations(ctx context.Context, db *sql.DB, migrationsDir string, logger *zap.Logger) error {
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	before, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	logger.Info("Checking for pending migrations...",
		zap.String("dir", migrationsDir),
		zap.Int64("version", before),
	)

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	after, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	logger.Info("Migrations completed successfully",
		zap.Int64("from_version", before),
		zap.Int64("to_version", after),
	)
	return nil
}

// MigrationStatus prints the applied state of every migration
func MigrationStatus(ctx context.Context, db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.StatusContext(ctx, db, migrationsDir)
}
