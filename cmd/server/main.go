package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/router"
	"github.com/JameNori/jamenori-dev-journal-sub000/pkg/config"
	"github.com/JameNori/jamenori-dev-journal-sub000/pkg/firebase"
	"github.com/JameNori/jamenori-dev-journal-sub000/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
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

	err = run(cfg, log)
	if err != nil {
		log.Error("server exited", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run owns every resource it opens and releases them before returning.
func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.CloseDB()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Initialize Firebase
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.Firebase.CredentialsPath, cfg.Firebase.ProjectID, log)
	if err != nil {
		return fmt.Errorf("initialize firebase: %w", err)
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Setup global middleware
	config.SetupMiddleware(e, cfg.HTTP, log)

	// Setup routes and dependencies
	router.SetupRoutes(e, router.Deps{
		DB:                    db.Postgres,
		Health:                db,
		Verifier:              firebaseApp.NewVerifier(),
		Logger:                log,
		QueryTimeout:          cfg.Database.QueryTimeout,
		PostsPageSize:         cfg.Paging.PostsPageSize,
		NotificationsPageSize: cfg.Paging.NotificationsPageSize,
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
