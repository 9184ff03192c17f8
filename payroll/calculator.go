/*
calculator.go - Itemized pay for one shift

PURPOSE:
  ComputePay turns a ShiftInput and the workplace's policy into a
  ShiftRecord. Recompute re-prices an existing record after a bulk edit.

STEPS:
  1. Place start/end on the shift date, pad by PreMinutes/PostMinutes
  2. TotalHoursRaw = padded length; <= 0 is ErrInvalidInterval
  3. Break = manual break if positive, else AutoBreakMinutes
  4. WorkHours = max(0, TotalHoursRaw - break)
  5. NightHours over the padded interval (crosses iff start > end)
  6. EarlyHours over the padded interval (crosses iff start >= end)
  7. Wage = explicit wage, else ResolveWage(policy, date)
  8-11. Base, night premium, early bonus, busy bonus
  12. Pay = round(sum of unrounded components)

ROUNDING:
  Every component is rounded to a whole unit for display, but Pay is
  rounded from the unrounded total. The two can differ by one unit and
  that difference is kept. Rounding is half-to-even.

RECOMPUTE:
  Recompute runs steps 8-12 only, from the record's stored wage and
  hours. Editing wage, workplace or the busy flag never re-derives padding,
  breaks or window overlaps.
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComputePay prices one shift. It has no side effects: calling it twice
// with the same arguments yields identical records.
func ComputePay(in ShiftInput, policy WorkplacePolicy) (ShiftRecord, error) {
	payStart := in.Start.On(in.Date).Add(-time.Duration(policy.PreMinutes) * time.Minute)
	payEnd := in.End.On(in.Date).Add(time.Duration(policy.PostMinutes) * time.Minute)

	totalHours := payEnd.Sub(payStart).Hours()
	if totalHours <= 0 {
		return ShiftRecord{}, &IntervalError{Workplace: in.Workplace, PayStart: payStart, PayEnd: payEnd}
	}

	breakMinutes := in.ManualBreakMinutes
	if breakMinutes <= 0 {
		breakMinutes = AutoBreakMinutes(totalHours, policy.Tiers())
	}

	workHours := totalHours - float64(breakMinutes)/60
	if workHours < 0 {
		workHours = 0
	}

	wage := ResolveWage(policy, in.Date)
	if in.Wage != nil {
		wage = *in.Wage
	}

	rec := ShiftRecord{
		Workplace:          in.Workplace,
		Date:               DateOf(in.Date),
		Start:              in.Start.String(),
		End:                in.End.String(),
		Wage:               wage,
		ManualBreakMinutes: in.ManualBreakMinutes,
		Busy:               in.Busy,
		Transport:          in.Transport,
		Memo:               in.Memo,
		PreMinutes:         policy.PreMinutes,
		PostMinutes:        policy.PostMinutes,
		TotalHoursRaw:      totalHours,
		BreakMinutes:       breakMinutes,
		WorkHours:          workHours,
		NightHours:         policy.NightWindow().Hours(payStart, payEnd),
		EarlyHours:         policy.EarlyWindow().Hours(payStart, payEnd),
	}
	return price(rec, policy), nil
}

// Recompute overwrites every money field of rec from its stored wage and
// hours using policy's rates. ID and hours are left as they are.
func Recompute(rec ShiftRecord, policy WorkplacePolicy) ShiftRecord {
	return price(rec, policy)
}

func price(rec ShiftRecord, policy WorkplacePolicy) ShiftRecord {
	wage := decimal.NewFromInt(rec.Wage)
	work := decimal.NewFromFloat(rec.WorkHours)

	premium := decimal.Max(decimal.NewFromFloat(policy.NightRate).Sub(decimal.NewFromInt(1)), decimal.Zero)

	base := work.Mul(wage)
	night := decimal.NewFromFloat(rec.NightHours).Mul(wage).Mul(premium)
	early := decimal.NewFromFloat(rec.EarlyHours).Mul(decimal.NewFromFloat(policy.EarlyBonusPerHour))
	busy := decimal.Zero
	if rec.Busy {
		busy = work.Mul(decimal.NewFromFloat(policy.BusyBonusPerHour))
	}

	rec.BasePay = wholeUnits(base)
	rec.NightBonus = wholeUnits(night)
	rec.EarlyBonus = wholeUnits(early)
	rec.BusyBonus = wholeUnits(busy)
	rec.Pay = wholeUnits(base.Add(night).Add(early).Add(busy))
	return rec
}

func wholeUnits(d decimal.Decimal) int64 {
	return d.RoundBank(0).IntPart()
}
