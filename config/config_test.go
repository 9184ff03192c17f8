package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-payroll/payroll"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

var now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(nil), now)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "payroll.db", cfg.DBPath)
	assert.Empty(t, cfg.SettingsPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, payroll.DefaultIncomeLimit, cfg.IncomeLimit)
	assert.Equal(t, payroll.NewDate(2025, time.January, 1), cfg.FiscalStart)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"PAYROLL_PORT":         "9090",
		"PAYROLL_DB":           ":memory:",
		"PAYROLL_SETTINGS":     "settings.json",
		"PAYROLL_LOG_LEVEL":    "debug",
		"PAYROLL_LOG_FORMAT":   "json",
		"PAYROLL_INCOME_LIMIT": "1230000",
		"PAYROLL_FISCAL_START": "2025-04-01",
	}), now)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "settings.json", cfg.SettingsPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, int64(1230000), cfg.IncomeLimit)
	assert.Equal(t, payroll.NewDate(2025, time.April, 1), cfg.FiscalStart)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	for key, value := range map[string]string{
		"PAYROLL_PORT":         "http",
		"PAYROLL_INCOME_LIMIT": "a lot",
		"PAYROLL_FISCAL_START": "April",
	} {
		_, err := FromEnv(env(map[string]string{key: value}), now)
		require.Error(t, err, key)

		var cfgErr *Error
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, key, cfgErr.Key)
	}
}
