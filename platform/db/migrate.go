// Package db provides database connection infrastructure.
// This is part of the platform layer and contains no business logic.
package db

import (
	"context"
	"database/sql"
	"strings"

	"product_service_backend/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver for goose
	"github.com/pressly/goose/v3"
)

// RunMigrations applies all pending goose migrations from the provided directory.
func RunMigrations(ctx context.Context, cfg config.DatabaseConfig, migrationsDir string) error {
	if strings.TrimSpace(migrationsDir) == "" {
		return nil
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	handle, err := sql.Open("pgx", cfg.GetDatabaseURL())
	if err != nil {
		return err
	}
	defer handle.Close()

	return goose.UpContext(ctx, handle, migrationsDir)
}
