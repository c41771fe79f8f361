package config

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connection pool
type DB struct {
	Postgres *gorm.DB
	logger   *zap.Logger
}

// InitDB opens the PostgreSQL pool, applies the pool limits and verifies the connection.
func InitDB(ctx context.Context, cfg DBConfig, logger *zap.Logger) (*DB, error) {
	postgresDB, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{
		Logger:                 newGormLogger(logger),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	sqlDB, err := postgresDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	logger.Info("connected to PostgreSQL",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns))
	return &DB{Postgres: postgresDB, logger: logger}, nil
}

// PingContext verifies the pool can reach the database.
func (db *DB) PingContext(ctx context.Context) error {
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db == nil || db.Postgres == nil {
		return
	}
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		db.logger.Error("error getting sql.DB from gorm", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		db.logger.Error("error closing PostgreSQL connection", zap.Error(err))
		return
	}
	db.logger.Info("PostgreSQL connection closed")
}

// newGormLogger routes gorm's log output through zap. Slow queries and errors are
// logged; record-not-found is expected and stays quiet.
func newGormLogger(logger *zap.Logger) gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(logger.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
