/*
Package config loads process configuration from the environment.

PURPOSE:
  Reads a .env file when present, then PAYROLL_* variables, into a Config
  used by both binaries. Command-line flags override these values.

VARIABLES:
  PAYROLL_PORT          HTTP port (8080)
  PAYROLL_DB            SQLite path (payroll.db)
  PAYROLL_SETTINGS      Settings JSON to seed workplaces from (optional)
  PAYROLL_LOG_LEVEL     debug|info|warn|error (info)
  PAYROLL_LOG_FORMAT    console|json (console)
  PAYROLL_LOG_OUTPUT    stderr|stdout|file path (stderr)
  PAYROLL_INCOME_LIMIT  Yearly income limit (1030000)
  PAYROLL_FISCAL_START  YYYY-MM-DD (January 1 of the current year)
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/shift-payroll/logging"
	"github.com/warp/shift-payroll/payroll"
)

type Config struct {
	Port         string
	DBPath       string
	SettingsPath string
	Log          logging.Config
	IncomeLimit  int64
	FiscalStart  time.Time
}

// Load reads .env (a missing file is fine) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv, time.Now())
}

// FromEnv builds a Config from getenv. now picks the default fiscal year.
func FromEnv(getenv func(string) string, now time.Time) (*Config, error) {
	cfg := &Config{
		Port:         valueOr(getenv("PAYROLL_PORT"), "8080"),
		DBPath:       valueOr(getenv("PAYROLL_DB"), "payroll.db"),
		SettingsPath: getenv("PAYROLL_SETTINGS"),
		Log:          logging.DefaultConfig(),
		IncomeLimit:  payroll.DefaultIncomeLimit,
		FiscalStart:  payroll.NewDate(now.Year(), time.January, 1),
	}
	cfg.Log.Level = valueOr(getenv("PAYROLL_LOG_LEVEL"), cfg.Log.Level)
	cfg.Log.Format = valueOr(getenv("PAYROLL_LOG_FORMAT"), cfg.Log.Format)
	cfg.Log.Output = valueOr(getenv("PAYROLL_LOG_OUTPUT"), cfg.Log.Output)

	if v := getenv("PAYROLL_PORT"); v != "" {
		if _, err := strconv.ParseUint(v, 10, 16); err != nil {
			return nil, &Error{Key: "PAYROLL_PORT", Value: v, Err: err}
		}
	}
	if v := getenv("PAYROLL_INCOME_LIMIT"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, &Error{Key: "PAYROLL_INCOME_LIMIT", Value: v, Err: err}
		}
		cfg.IncomeLimit = limit
	}
	if v := getenv("PAYROLL_FISCAL_START"); v != "" {
		start, err := payroll.ParseDate(v)
		if err != nil {
			return nil, &Error{Key: "PAYROLL_FISCAL_START", Value: v, Err: err}
		}
		cfg.FiscalStart = start
	}
	return cfg, nil
}

// Error reports an environment variable that could not be parsed.
type Error struct {
	Key   string
	Value string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
