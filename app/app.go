/*
app.go - Process wiring shared by the server and the CLI

PURPOSE:
  Builds the object graph from a config.Config: logger, SQLite store,
  settings, shift book and HTTP handler. Serve runs the HTTP server
  with the limit monitor until the context is cancelled.

STARTUP SEQUENCE:
  1. Start from built-in presets with limit and fiscal start from config
  2. Apply the PAYROLL_SETTINGS file on top
  3. Open SQLite store
  4. Build shift book and handler, seed workplaces

SEE ALSO:
  - cmd/server/main.go: Plain server binary
  - cmd/payroll/cmd: CLI commands
*/
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/warp/shift-payroll/api"
	"github.com/warp/shift-payroll/config"
	"github.com/warp/shift-payroll/factory"
	"github.com/warp/shift-payroll/shifts"
	"github.com/warp/shift-payroll/store/sqlite"
)

// ShutdownTimeout bounds how long Serve waits for in-flight requests.
const ShutdownTimeout = 30 * time.Second

// App is a fully wired process.
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Store    *sqlite.Store
	Settings *factory.Settings
	Book     *shifts.Book
	Handler  *api.Handler
}

// LoadSettings reads the settings file at path over base. An empty path
// returns base unchanged.
func LoadSettings(path string, base *factory.Settings) (*factory.Settings, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	s, err := factory.NewWorkplaceFactory().ParseSettings(data, base)
	if err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// BaseSettings is the built-in presets with the limit and fiscal start
// taken from cfg. A settings file may still override both.
func BaseSettings(cfg *config.Config) *factory.Settings {
	base := factory.DefaultSettings()
	base.IncomeLimit = cfg.IncomeLimit
	base.FiscalStart = cfg.FiscalStart
	return base
}

// Open wires everything. The caller must Close the result.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	settings, err := LoadSettings(cfg.SettingsPath, BaseSettings(cfg))
	if err != nil {
		return nil, err
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	book := shifts.NewBook(store,
		shifts.WithLogger(log.Named("shifts")),
		shifts.WithPatterns(settings.Patterns),
	)
	handler := api.NewHandler(book, store, settings, log.Named("api"))
	if err := handler.Seed(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("seed workplaces: %w", err)
	}

	log.Info("app ready",
		zap.String("db", cfg.DBPath),
		zap.Int("workplaces", len(settings.Workplaces)),
		zap.Int("patterns", len(settings.Patterns)),
		zap.Int64("income_limit", settings.IncomeLimit),
		zap.Time("fiscal_start", settings.FiscalStart),
	)

	return &App{
		Config:   cfg,
		Log:      log,
		Store:    store,
		Settings: settings,
		Book:     book,
		Handler:  handler,
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.Store.Close()
}

// Serve runs the HTTP server until ctx is done, then shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	monitor := api.NewLimitMonitor(a.Handler)
	monitor.Start()
	defer monitor.Stop()

	server := &http.Server{
		Addr:         ":" + a.Config.Port,
		Handler:      api.NewRouter(a.Handler, monitor),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.Log.Info("server starting", zap.String("addr", "http://localhost:"+a.Config.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	a.Log.Info("server stopped")
	return nil
}
