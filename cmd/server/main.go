/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration, then parse command-line flags
  2. Initialize SQLite store (roster + ledger)
  3. Load the calendar fixture
  4. Create API handler with dependencies
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port     HTTP server port (default from APP_PORT, else 8080)
  -db       SQLite database path (default from DB_PATH, else payroll.db)
            Use ":memory:" for an in-memory database
  -fixture  Calendar fixture JSON path (default from FIXTURE_PATH)
  -roster   Optional roster JSON; when set, replaces the stored roster
            at startup

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/payroll.db"

  # Run with in-memory database and a test fixture
  ./server -db=":memory:" -fixture="./testdata/calendars.json"

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - config/config.go: Environment configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fkcoding/payroll-engine/api"
	"github.com/fkcoding/payroll-engine/cache"
	"github.com/fkcoding/payroll-engine/calendar"
	"github.com/fkcoding/payroll-engine/config"
	"github.com/fkcoding/payroll-engine/payroll"
	"github.com/fkcoding/payroll-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment.
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	fixturePath := flag.String("fixture", cfg.FixturePath, "calendar fixture JSON path")
	rosterPath := flag.String("roster", "", "roster JSON to load at startup")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})).With(slog.String("app", "payroll-engine"))

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if *rosterPath != "" {
		if err := seedRoster(store, *rosterPath); err != nil {
			logger.Error("failed to load roster", "path", *rosterPath, "error", err)
			os.Exit(1)
		}
		logger.Info("roster loaded", "path", *rosterPath)
	}

	// Calendar source
	events, err := calendar.LoadFixture(*fixturePath)
	if err != nil {
		logger.Error("failed to load calendar fixture", "path", *fixturePath, "error", err)
		os.Exit(1)
	}

	// Initialize handler and router
	handler := api.NewHandler(store, events, cache.NewMemory(), store, logger)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "addr", fmt.Sprintf("http://localhost:%d", *port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

type rosterFile struct {
	Employees []payroll.Employee `json:"employees"`
	Clients   []payroll.Client   `json:"clients"`
}

// seedRoster replaces the stored roster with the contents of a JSON
// file. Client order in the file becomes roster order.
func seedRoster(store *sqlite.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var roster rosterFile
	if err := json.Unmarshal(data, &roster); err != nil {
		return fmt.Errorf("failed to parse roster file: %w", err)
	}
	return store.ReplaceRoster(context.Background(), roster.Employees, roster.Clients)
}
