/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the shift payroll server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env and PAYROLL_* environment (config.Load)
  2. Parse command-line flags (override environment)
  3. Build logger, SQLite store, settings and handler (app.Open)
  4. Start limit monitor and HTTP server
  5. Shut down gracefully on SIGINT/SIGTERM

COMMAND-LINE FLAGS:
  -port       HTTP server port (default: PAYROLL_PORT or 8080)
  -db         SQLite database path (default: PAYROLL_DB or payroll.db)
              Use ":memory:" for in-memory database
  -settings   Settings JSON (default: PAYROLL_SETTINGS)
  -log-level  debug|info|warn|error

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the monitor and close the database
  4. Exit

EXAMPLES:
  ./server -db="./data/payroll.db"
  ./server -db=":memory:" -port=3000
  PAYROLL_SETTINGS=settings.json ./server

SEE ALSO:
  - app/app.go: Wiring
  - api/server.go: Router configuration
  - config/config.go: Environment variables
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/warp/shift-payroll/app"
	"github.com/warp/shift-payroll/config"
	"github.com/warp/shift-payroll/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags
	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.SettingsPath, "settings", cfg.SettingsPath, "settings JSON file")
	flag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	flag.Parse()

	log := logging.Must(cfg.Log)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize", zap.Error(err))
	}
	defer a.Close()

	if err := a.Serve(ctx); err != nil {
		log.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
