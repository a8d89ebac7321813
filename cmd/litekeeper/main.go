// Package main provides the entry point for the litekeeper admin server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/litekeeper/litekeeper/internal/admin"
	"github.com/litekeeper/litekeeper/internal/config"
	"github.com/litekeeper/litekeeper/internal/logging"
	"github.com/litekeeper/litekeeper/internal/metrics"
	"github.com/litekeeper/litekeeper/internal/sqliteutil"
)

const version = "0.1.0"

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the application logic, separated from main for testability and
// consistent exit handling.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	logger, levelVar := logging.New(cfg.LogLevel)
	logger.Info("litekeeper starting",
		"version", version,
		"listen_addr", cfg.ListenAddr,
		"database_path", cfg.DatabasePath,
	)

	if err := metrics.Init(prometheus.DefaultRegisterer, version); err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}

	db, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	handler := admin.NewHandler(db, cfg.AdminTokenHash, levelVar, logger)

	apiServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler.NewRouter(cfg.MaxExecBodyBytes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.MetricsListenAddr,
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("admin API listening", "addr", cfg.ListenAddr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("admin API server: %w", err)
		}
	}()
	go func() {
		logger.Info("metrics listening", "addr", cfg.MetricsListenAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin API shutdown", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics shutdown", "error", err)
	}

	return nil
}

// openDatabase opens the configured database file, creating it when
// DATABASE_CREATE is set and the file is absent.
func openDatabase(cfg *config.Config, logger *slog.Logger) (*sqliteutil.DB, error) {
	db, err := sqliteutil.Open(cfg.DatabasePath, logger)
	if err == nil {
		return db, nil
	}

	if cfg.DatabaseCreate && errors.Is(err, sqliteutil.ErrNotFound) {
		logger.Info("database file not found, creating", "path", cfg.DatabasePath)
		db, err = sqliteutil.Create(cfg.DatabasePath, logger)
		if err != nil {
			return nil, fmt.Errorf("creating database: %w", err)
		}
		return db, nil
	}

	return nil, fmt.Errorf("opening database: %w", err)
}
