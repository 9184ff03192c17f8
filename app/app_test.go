package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/warp/shift-payroll/config"
	"github.com/warp/shift-payroll/payroll"
)

func testConfig(t *testing.T) *config.Config {
	cfg, err := config.FromEnv(func(k string) string {
		if k == "PAYROLL_DB" {
			return ":memory:"
		}
		return ""
	}, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return cfg
}

// =============================================================================
// SETTINGS
// =============================================================================

func TestLoadSettings_EmptyPathReturnsBase(t *testing.T) {
	cfg := testConfig(t)
	base := BaseSettings(cfg)

	s, err := LoadSettings("", base)
	require.NoError(t, err)
	assert.Same(t, base, s)
	assert.Equal(t, payroll.NewDate(2025, time.January, 1), s.FiscalStart)
}

func TestLoadSettings_FileOverridesBase(t *testing.T) {
	// GIVEN: A settings file with its own limit and one extra workplace
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"limit_income": 1500000,
		"fiscal_start": "2025-04-01",
		"workplace_settings": {"bar": {"default_wage": 1500}}
	}`), 0o600))

	// WHEN: Loading it over the presets
	s, err := LoadSettings(path, BaseSettings(testConfig(t)))
	require.NoError(t, err)

	// THEN: File values win, presets survive
	assert.Equal(t, int64(1500000), s.IncomeLimit)
	assert.Equal(t, payroll.NewDate(2025, time.April, 1), s.FiscalStart)
	assert.Contains(t, s.Workplaces, "bar")
	assert.Contains(t, s.Workplaces, "cafe")
}

func TestLoadSettings_Errors(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))
	_, err = LoadSettings(path, nil)
	assert.Error(t, err)
}

// =============================================================================
// WIRING
// =============================================================================

func TestOpen_SeedsWorkplaces(t *testing.T) {
	ctx := context.Background()
	a, err := Open(ctx, testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	stored, err := a.Book.Workplaces(ctx)
	require.NoError(t, err)
	for _, name := range a.Settings.Workplaces.Names() {
		assert.Contains(t, stored, name)
	}

	rec, err := a.Book.AddPattern(ctx, "cafe:18-close", payroll.NewDate(2025, time.June, 2))
	require.NoError(t, err)
	assert.Equal(t, "cafe", rec.Workplace)
	assert.Positive(t, rec.Pay)
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Port = "0"
	a, err := Open(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
