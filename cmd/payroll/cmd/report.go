// Package cmd - list, check and summary commands
package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warp/shift-payroll/payroll"
)

var (
	fromDate  string
	toDate    string
	workplace string
	limit     int64
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged shifts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Scan the shift log for data problems",
	Long: `Scan the shift log for shifts with an empty time range, overlapping
shifts at the same workplace and zero or negative values.
Exits with an error when anything is found.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals and the income limit status",
	Long: `Show totals by workplace and by month for a period, and how much
income remains under the yearly limit. The period defaults to every
shift on or after PAYROLL_FISCAL_START, with no end date.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	for _, c := range []*cobra.Command{listCmd, summaryCmd} {
		c.Flags().StringVar(&fromDate, "from", "", "first day YYYY-MM-DD")
		c.Flags().StringVar(&toDate, "to", "", "last day YYYY-MM-DD")
	}
	listCmd.Flags().StringVarP(&workplace, "workplace", "w", "", "only this workplace")
	summaryCmd.Flags().Int64Var(&limit, "limit", 0, "income limit (default from settings)")
}

func period(def payroll.Period) (payroll.Period, error) {
	p := def
	if fromDate != "" {
		d, err := payroll.ParseDate(fromDate)
		if err != nil {
			return p, fmt.Errorf("--from: %w", err)
		}
		p.Start = d
	}
	if toDate != "" {
		d, err := payroll.ParseDate(toDate)
		if err != nil {
			return p, fmt.Errorf("--to: %w", err)
		}
		p.End = d
	}
	return p, nil
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	p, err := period(payroll.Period{})
	if err != nil {
		return err
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	recs, err := a.Book.List(ctx, payroll.ShiftFilter{Period: p, Workplace: workplace})
	if err != nil {
		return err
	}
	return printRecords(out(cmd), recs)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	issues, err := a.Book.Check(ctx)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Fprintln(out(cmd), "No issues found.")
		return nil
	}
	for _, issue := range issues {
		fmt.Fprintf(out(cmd), "[%s] %s\n", issue.Kind, issue.Message)
	}
	return fmt.Errorf("%d issue(s) found", len(issues))
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := period(payroll.Period{Start: a.Settings.FiscalStart})
	if err != nil {
		return err
	}
	opts := payroll.SummaryOptions{Period: p, IncomeLimit: a.Settings.IncomeLimit}
	if limit > 0 {
		opts.IncomeLimit = limit
	}
	sum, err := a.Book.Summary(ctx, opts)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Period\t%s\n", sum.Period)
	fmt.Fprintf(tw, "Shifts\t%d\n", sum.Shifts)
	fmt.Fprintf(tw, "Pay\t%d\n", sum.TotalPay)
	fmt.Fprintf(tw, "Busy bonus\t%d\n", sum.TotalBusyBonus)
	fmt.Fprintf(tw, "Transport\t%d\n", sum.TotalTransport)
	fmt.Fprintf(tw, "Income\t%d\n", sum.TotalIncome)
	fmt.Fprintf(tw, "Limit\t%d (%s, %d remaining)\n", sum.IncomeLimit, sum.LimitStatus, sum.Remaining)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "WORKPLACE\tPAY")
	for _, wt := range sum.ByWorkplace {
		fmt.Fprintf(tw, "%s\t%d\n", wt.Workplace, wt.Pay)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "MONTH\tPAY\tWORK H")
	for _, mt := range sum.ByMonth {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", mt.Month, mt.Pay, mt.WorkHours)
	}
	return tw.Flush()
}
