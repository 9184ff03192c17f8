// Package cmd provides the CLI commands for payroll.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/shift-payroll/app"
	"github.com/warp/shift-payroll/config"
	"github.com/warp/shift-payroll/logging"
)

var (
	dbPath       string
	settingsPath string
	verbose      bool

	cfg *config.Config
	log *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Compute and track pay for hourly part-time shifts",
	Long: `payroll computes the pay for a shift from its hours and the workplace
rules (padding, breaks, night and early-morning premiums, busy bonus),
keeps a shift log in SQLite and reports totals against a yearly income limit.

Examples:
  payroll compute --workplace cafe --date 2025-06-02 --start 18:00 --end 23:00
  payroll compute --pattern cafe:18-close --date 2025-06-02
  payroll add --pattern cafe:18-close --date 2025-06-02
  payroll summary --from 2025-01-01 --to 2025-12-31
  payroll serve --port 8080`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default PAYROLL_DB or payroll.db)")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "settings JSON file (default PAYROLL_SETTINGS)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if settingsPath != "" {
		c.SettingsPath = settingsPath
	}
	if verbose {
		c.Log.Level = "debug"
	}
	cfg = c

	l, err := logging.New(c.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		l = logging.Must(logging.DefaultConfig())
	}
	log = l
	return nil
}

// openApp wires the database-backed commands.
func openApp(ctx context.Context) (*app.App, error) {
	return app.Open(ctx, cfg, log)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(out(cmd), "payroll version "+Version)
	},
}

// Version is set at build time with -ldflags.
var Version = "0.1.0"
