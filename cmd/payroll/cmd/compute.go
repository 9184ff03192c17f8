// Package cmd - compute and add commands
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/warp/shift-payroll/app"
	"github.com/warp/shift-payroll/payroll"
)

var (
	computeFlags shiftFlags
	addFlags     shiftFlags
)

// computeCmd prices one shift without touching the database.
var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute the pay breakdown for one shift",
	Long: `Compute the pay for one shift using the workplace rules from the
settings (built-in presets unless --settings is given). Nothing is saved.

Examples:
  payroll compute -w cafe -d 2025-06-02 --start 18:00 --end 23:00
  payroll compute -p cafe:18-close -d 2025-06-02 --busy`,
	Args: cobra.NoArgs,
	RunE: runCompute,
}

// addCmd prices one shift and saves it to the shift log.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Compute one shift and save it to the log",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	computeFlags.bind(computeCmd)
	addFlags.bind(addCmd)
}

func runCompute(cmd *cobra.Command, args []string) error {
	settings, err := app.LoadSettings(cfg.SettingsPath, app.BaseSettings(cfg))
	if err != nil {
		return err
	}
	in, err := computeFlags.input(cmd, settings)
	if err != nil {
		return err
	}
	rec, err := payroll.ComputePay(in, settings.Workplaces.Lookup(in.Workplace))
	if err != nil {
		return err
	}
	return printRecord(out(cmd), rec)
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	in, err := addFlags.input(cmd, a.Settings)
	if err != nil {
		return err
	}
	rec, err := a.Book.Add(ctx, in)
	if err != nil {
		return err
	}
	return printRecord(out(cmd), rec)
}
