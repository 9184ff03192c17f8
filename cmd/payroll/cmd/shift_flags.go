package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/warp/shift-payroll/factory"
	"github.com/warp/shift-payroll/payroll"
)

// shiftFlags are the flags shared by compute and add.
type shiftFlags struct {
	pattern   string
	workplace string
	date      string
	start     string
	end       string
	wage      int64
	breakMin  int
	busy      bool
	transport int64
	memo      string
}

func (f *shiftFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.pattern, "pattern", "p", "", "shift preset name, e.g. cafe:18-close")
	fl.StringVarP(&f.workplace, "workplace", "w", "", "workplace name")
	fl.StringVarP(&f.date, "date", "d", "", "shift date YYYY-MM-DD (default today)")
	fl.StringVar(&f.start, "start", "", "start time HH:MM")
	fl.StringVar(&f.end, "end", "", "end time HH:MM on the same date")
	fl.Int64Var(&f.wage, "wage", 0, "hourly wage (default from workplace wage history)")
	fl.IntVar(&f.breakMin, "break", 0, "manual break minutes (overrides break tiers)")
	fl.BoolVar(&f.busy, "busy", false, "apply the busy bonus")
	fl.Int64Var(&f.transport, "transport", 0, "transport allowance")
	fl.StringVar(&f.memo, "memo", "", "free text note")
}

// input builds the ShiftInput. Explicit flags override the pattern.
func (f *shiftFlags) input(cmd *cobra.Command, settings *factory.Settings) (payroll.ShiftInput, error) {
	date := payroll.DateOf(time.Now())
	if f.date != "" {
		d, err := payroll.ParseDate(f.date)
		if err != nil {
			return payroll.ShiftInput{}, fmt.Errorf("--date: %w", err)
		}
		date = d
	}

	var in payroll.ShiftInput
	if f.pattern != "" {
		p, ok := settings.Patterns[f.pattern]
		if !ok {
			return payroll.ShiftInput{}, fmt.Errorf("unknown pattern %q", f.pattern)
		}
		in = p.Input(date)
	} else {
		if f.workplace == "" || f.start == "" || f.end == "" {
			return payroll.ShiftInput{}, fmt.Errorf("either --pattern or --workplace, --start and --end are required")
		}
		in = payroll.ShiftInput{Workplace: f.workplace, Date: date}
	}

	changed := cmd.Flags().Changed
	if changed("workplace") {
		in.Workplace = f.workplace
	}
	if changed("start") {
		c, err := payroll.ParseClock(f.start)
		if err != nil {
			return payroll.ShiftInput{}, fmt.Errorf("--start: %w", err)
		}
		in.Start = c
	}
	if changed("end") {
		c, err := payroll.ParseClock(f.end)
		if err != nil {
			return payroll.ShiftInput{}, fmt.Errorf("--end: %w", err)
		}
		in.End = c
	}
	if changed("wage") {
		w := f.wage
		in.Wage = &w
	}
	if changed("break") {
		in.ManualBreakMinutes = f.breakMin
	}
	if changed("transport") {
		in.Transport = f.transport
	}
	in.Busy = f.busy
	in.Memo = f.memo
	return in, nil
}

func printRecord(w io.Writer, r payroll.ShiftRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if r.ID != "" {
		fmt.Fprintf(tw, "ID\t%s\n", r.ID)
	}
	fmt.Fprintf(tw, "Workplace\t%s\n", r.Workplace)
	fmt.Fprintf(tw, "Date\t%s %s-%s\n", payroll.FormatDate(r.Date), r.Start, r.End)
	fmt.Fprintf(tw, "Wage\t%d/h\n", r.Wage)
	fmt.Fprintf(tw, "Padding\t+%d / +%d min\n", r.PreMinutes, r.PostMinutes)
	fmt.Fprintf(tw, "Total hours\t%.2f\n", r.TotalHoursRaw)
	fmt.Fprintf(tw, "Break\t%d min\n", r.BreakMinutes)
	fmt.Fprintf(tw, "Work hours\t%.2f\n", r.WorkHours)
	fmt.Fprintf(tw, "Night hours\t%.2f\n", r.NightHours)
	fmt.Fprintf(tw, "Early hours\t%.2f\n", r.EarlyHours)
	fmt.Fprintf(tw, "Base pay\t%d\n", r.BasePay)
	fmt.Fprintf(tw, "Night bonus\t%d\n", r.NightBonus)
	fmt.Fprintf(tw, "Early bonus\t%d\n", r.EarlyBonus)
	fmt.Fprintf(tw, "Busy bonus\t%d\n", r.BusyBonus)
	fmt.Fprintf(tw, "Pay\t%d\n", r.Pay)
	if r.Transport != 0 {
		fmt.Fprintf(tw, "Transport\t%d\n", r.Transport)
	}
	if r.Memo != "" {
		fmt.Fprintf(tw, "Memo\t%s\n", r.Memo)
	}
	return tw.Flush()
}

func printRecords(w io.Writer, recs []payroll.ShiftRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tWORKPLACE\tTIME\tWORK H\tPAY\tTRANSPORT")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s-%s\t%.2f\t%d\t%d\n",
			r.ID, payroll.FormatDate(r.Date), r.Workplace, r.Start, r.End, r.WorkHours, r.Pay, r.Transport)
	}
	return tw.Flush()
}
