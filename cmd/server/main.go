/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the compensation engine HTTP server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, environment, flags)
  2. Create structured logger
  3. Initialize SQLite store
  4. Create API handler and router
  5. Start server with graceful shutdown

ENVIRONMENT:
  APP_PORT              HTTP server port (default: 8080)
  APP_ENV               development | production (default: development)
  LOG_LEVEL             debug | info | warn | error (default: info)
  DB_PATH               SQLite database path (default: nominix.db)
  CORS_ALLOWED_ORIGINS  Comma-separated origins
  DEFAULT_COMPANY_ID    Company used when a request names none
  VACATION_MAX_WORKING_DAYS  Upper bound on working_days per request (default: 365)

COMMAND-LINE FLAGS:
  -port    Overrides APP_PORT
  -db      Overrides DB_PATH. Use ":memory:" for an in-memory database
  -seed    Load national holidays on startup

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  ./server -db="./data/nominix.db"
  ./server -db=":memory:" -seed
  LOG_LEVEL=debug ./server -port=3000

SEE ALSO:
  - config/config.go: Environment configuration
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/T3Cread18/Nominix-sub001/api"
	"github.com/T3Cread18/Nominix-sub001/config"
	"github.com/T3Cread18/Nominix-sub001/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags
	port := flag.Int("port", cfg.App.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.Database.Path, "SQLite database path")
	seed := flag.Bool("seed", false, "Load national holidays on startup")
	flag.Parse()

	logger := api.NewLogger(os.Stdout, cfg.Level(), cfg.App.Env, cfg.IsProduction())
	slog.SetDefault(logger)

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer store.Close()

	if *seed {
		n, err := store.SeedNationalHolidays(context.Background())
		if err != nil {
			return fmt.Errorf("seed holidays: %w", err)
		}
		logger.Info("national holidays loaded", slog.Int("count", n))
	}

	handler := api.NewHandler(store, logger, cfg.DefaultCompanyID)
	handler.MaxVacationDays = cfg.Vacation.MaxWorkingDays
	router := api.NewRouter(handler, api.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		LogLevel:       cfg.Level(),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.Int("port", *port),
			slog.String("db", *dbPath),
			slog.String("env", cfg.App.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
