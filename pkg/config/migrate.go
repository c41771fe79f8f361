package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JameNori/jamenori-dev-journal-sub000/migrations"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migration commands accepted by RunMigrations.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
	MigrateReset  = "reset"
)

func init() {
	goose.SetBaseFS(migrations.FS)
}

// RunMigrations applies command to the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB, command string, logger *zap.Logger) error {
	switch command {
	case MigrateUp, MigrateDown, MigrateStatus, MigrateReset:
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetLogger(zap.NewStdLog(logger.Named("goose")))

	if err := goose.RunContext(ctx, command, db, "."); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	logger.Info("migrations finished", zap.String("command", command))
	return nil
}

// Migrate brings the schema of an open pool up to date.
func (db *DB) Migrate(ctx context.Context) error {
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}
	return RunMigrations(ctx, sqlDB, MigrateUp, db.logger)
}
