/*
Package payroll provides the shift payroll computation engine.

PURPOSE:
  This package turns one logged work shift (workplace, date, start and end
  clock time, wage, flags) into a fully itemized pay breakdown, and scans a
  shift log for logical defects. Everything here is pure arithmetic over
  caller-owned values: no I/O, no shared state, no locking.

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftInput: What the caller logged for one shift
  - ShiftRecord: The input plus every derived hour and money figure
  - Clock: A wall-clock time of day ("18:30")

COMPONENTS:
  policy.go:     WorkplacePolicy, Workplaces table, baseline policy
  wage.go:       ResolveWage (dated wage history)
  window.go:     OverlapHours (recurring daily clock windows)
  breaks.go:     AutoBreakMinutes (tiered break deduction)
  calculator.go: ComputePay / Recompute
  check.go:      Check (consistency scan)
  summary.go:    Summarize (period totals, income limit)

USAGE:
  policy := workplaces.Lookup("cafe")
  rec, err := payroll.ComputePay(payroll.ShiftInput{
      Workplace: "cafe",
      Date:      payroll.NewDate(2025, time.May, 1),
      Start:     payroll.MustParseClock("18:00"),
      End:       payroll.MustParseClock("23:00"),
  }, policy)
  if errors.Is(err, payroll.ErrInvalidInterval) {
      // reject the shift
  }

SEE ALSO:
  - shifts/book.go: Stateful calling layer (storage, IDs, bulk edits)
  - factory/workplace.go: JSON settings to WorkplacePolicy
*/
package payroll

import "time"

// =============================================================================
// SHIFT INPUT - What the caller logged
// =============================================================================

// ShiftInput is one logged shift before any calculation.
type ShiftInput struct {
	Workplace string
	Date      time.Time
	Start     Clock
	End       Clock

	// Wage is the explicit hourly wage. Nil means "resolve from the
	// workplace wage history for Date".
	Wage *int64

	// ManualBreakMinutes overrides the automatic break tiers when positive.
	ManualBreakMinutes int

	Busy bool

	// Transport is a travel allowance carried alongside the shift.
	// It is never part of Pay.
	Transport int64
	Memo      string
}

// =============================================================================
// SHIFT RECORD - Input plus derived breakdown
// =============================================================================

// ShiftRecord is the itemized result of ComputePay. Hours are kept
// unrounded; money components are rounded to whole currency units.
type ShiftRecord struct {
	ID        string
	Workplace string
	Date      time.Time
	Start     string // "HH:MM", unpadded
	End       string // "HH:MM", unpadded
	Wage      int64

	ManualBreakMinutes int
	Busy               bool
	Transport          int64
	Memo               string

	PreMinutes    int
	PostMinutes   int
	TotalHoursRaw float64
	BreakMinutes  int
	WorkHours     float64
	NightHours    float64
	EarlyHours    float64

	BasePay    int64
	NightBonus int64
	EarlyBonus int64
	BusyBonus  int64
	Pay        int64
}

// ComponentSum adds the independently rounded pay components. It may differ
// from Pay by one unit because Pay is rounded from the unrounded total.
func (r ShiftRecord) ComponentSum() int64 {
	return r.BasePay + r.NightBonus + r.EarlyBonus + r.BusyBonus
}

// Income is pay plus transport allowance.
func (r ShiftRecord) Income() int64 { return r.Pay + r.Transport }
