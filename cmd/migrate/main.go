// Command migrate applies the embedded schema migrations.
//
//	migrate [up|down|status|reset]
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/JameNori/jamenori-dev-journal-sub000/pkg/config"
	"github.com/JameNori/jamenori-dev-journal-sub000/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

func main() {
	command := config.MigrateUp
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = run(cfg.Database.PostgresURL, command, log)
	if err != nil {
		log.Error("migration failed", zap.String("command", command), zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(dsn, command string, log *zap.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return config.RunMigrations(context.Background(), db, command, log)
}
