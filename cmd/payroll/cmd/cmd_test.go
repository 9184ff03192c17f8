package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns stdout. Flag values
// are reset first because cobra keeps them between executions.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PAYROLL_LOG_LEVEL", "error")
	t.Setenv("PAYROLL_FISCAL_START", "2025-01-01")

	resetFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// =============================================================================
// COMPUTE
// =============================================================================

func TestCompute_ExplicitShift(t *testing.T) {
	// GIVEN: An evening cafe shift that runs into the night window
	// WHEN: Computing it with an explicit wage
	stdout, err := run(t, "compute",
		"-w", "cafe", "-d", "2025-06-02", "--start", "18:00", "--end", "23:00", "--wage", "1310")

	// THEN: The breakdown is printed
	require.NoError(t, err)
	assert.Regexp(t, `Base pay\s+6550`, stdout)
	assert.Regexp(t, `Night bonus\s+355`, stdout)
	assert.Regexp(t, `Break\s+15 min`, stdout)
	assert.Regexp(t, `\nPay\s+6905`, stdout)
}

func TestCompute_Pattern(t *testing.T) {
	stdout, err := run(t, "compute", "-p", "cafe:18-close", "-d", "2025-06-02")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cafe")
	assert.Regexp(t, `Transport\s+640`, stdout)
}

func TestCompute_Errors(t *testing.T) {
	_, err := run(t, "compute", "-p", "nope", "-d", "2025-06-02")
	assert.Error(t, err)

	_, err = run(t, "compute", "-w", "cafe")
	assert.Error(t, err, "start and end are required without a pattern")

	_, err = run(t, "compute", "-w", "cafe", "--start", "25:00", "--end", "23:00")
	assert.Error(t, err)
}

// =============================================================================
// DATABASE COMMANDS
// =============================================================================

func TestAddListSummaryCheck(t *testing.T) {
	db := filepath.Join(t.TempDir(), "payroll.db")

	// GIVEN: Two logged shifts
	_, err := run(t, "--db", db, "add", "-p", "cafe:18-close", "-d", "2025-06-02")
	require.NoError(t, err)
	_, err = run(t, "--db", db, "add", "-w", "school", "-d", "2025-06-03", "--start", "18:00", "--end", "22:00")
	require.NoError(t, err)

	// WHEN: Listing them
	stdout, err := run(t, "--db", db, "list")
	require.NoError(t, err)

	// THEN: Both appear in insertion order
	assert.Contains(t, stdout, "2025-06-02")
	assert.Contains(t, stdout, "2025-06-03")
	assert.Less(t, bytes.Index([]byte(stdout), []byte("2025-06-02")), bytes.Index([]byte(stdout), []byte("2025-06-03")))

	stdout, err = run(t, "--db", db, "list", "-w", "school")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "2025-06-02")

	stdout, err = run(t, "--db", db, "summary")
	require.NoError(t, err)
	assert.Regexp(t, `Shifts\s+2`, stdout)
	assert.Contains(t, stdout, "2025-06")
	assert.Contains(t, stdout, "ok")

	stdout, err = run(t, "--db", db, "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No issues found.")
}

func TestSummary_CountsShiftsAfterTheFirstYear(t *testing.T) {
	db := filepath.Join(t.TempDir(), "payroll.db")

	// GIVEN: Fiscal start 2025-01-01, one shift before it and two after,
	// the last one more than a year later
	for _, date := range []string{"2024-12-30", "2025-06-02", "2026-02-02"} {
		_, err := run(t, "--db", db, "add", "-w", "school", "-d", date, "--start", "18:00", "--end", "22:00")
		require.NoError(t, err, date)
	}

	// WHEN: Summarizing with the default period
	stdout, err := run(t, "--db", db, "summary")
	require.NoError(t, err)

	// THEN: Everything from the fiscal start on counts
	assert.Regexp(t, `Shifts\s+2`, stdout)
	assert.Contains(t, stdout, "2026-02")
	assert.NotContains(t, stdout, "2024-12")
	assert.Contains(t, stdout, "[2025-01-01, open]")
}

func TestCheck_ReportsOverlap(t *testing.T) {
	db := filepath.Join(t.TempDir(), "payroll.db")
	_, err := run(t, "--db", db, "add", "-w", "cafe", "-d", "2025-06-02", "--start", "10:00", "--end", "14:00")
	require.NoError(t, err)
	_, err = run(t, "--db", db, "add", "-w", "cafe", "-d", "2025-06-02", "--start", "13:00", "--end", "16:00")
	require.NoError(t, err)

	stdout, err := run(t, "--db", db, "check")
	assert.Error(t, err)
	assert.Contains(t, stdout, "[overlap]")
}

func TestVersion(t *testing.T) {
	stdout, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "payroll version")
}
