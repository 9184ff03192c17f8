// Package main is the entry point for the payroll CLI.
package main

import (
	"os"

	"github.com/warp/shift-payroll/cmd/payroll/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
