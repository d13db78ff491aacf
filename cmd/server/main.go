/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the SIPILPRO attendance and wage server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags and load configuration
  2. Set up structured logging for the environment
  3. Initialize SQLite store
  4. Build the wage engine, day cache and API handler
  5. Configure HTTP router, optionally start the payroll scheduler
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  YAML config file (default: read from environment)
  -db      SQLite database path, overrides storage_path
           Use ":memory:" for in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection

EXAMPLES:
  # Run with a config file
  ./server -config=./config/local.yaml

  # Run with in-memory database and defaults
  ./server -db=":memory:"

ENVIRONMENT:
  See config/config.go for every variable (ENV, STORAGE_PATH,
  HTTP_ADDRESS, ALLOCATION_MODE, SCHEDULER_ENABLED, ...).

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subkh4n/SIPILPRO-sub000/api"
	"github.com/subkh4n/SIPILPRO-sub000/config"
	"github.com/subkh4n/SIPILPRO-sub000/store/sqlite"
	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

func main() {
	// Flags
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "YAML config file")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	if *dbPath != "" {
		cfg.StoragePath = *dbPath
	}

	log := setupLogger(cfg.Env)
	log.Info("starting sipilpro",
		slog.String("env", cfg.Env),
		slog.String("allocation_mode", cfg.AllocationMode),
		slog.Bool("cache", !cfg.DisableCache))

	// Initialize store
	store, err := sqlite.New(cfg.StoragePath)
	if err != nil {
		log.Error("failed to initialize database", slog.String("path", cfg.StoragePath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	var cache *wage.DayCache
	if !cfg.DisableCache {
		cache = wage.NewDayCache()
	}

	// Initialize handler
	handler := api.NewHandler(store, wage.Engine{Reconcile: cfg.Reconcile()}, cache, log)
	handler.Payroll.Concurrency = cfg.AggregationWorkers

	router := api.NewRouter(handler, cfg.AllowedOrigins)

	scheduler := api.NewPayrollScheduler(handler.Payroll, log)
	scheduler.Enabled = cfg.Scheduler.Enabled
	scheduler.Interval = cfg.Scheduler.Interval
	scheduler.Start()

	server := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("server started", slog.String("address", cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}
