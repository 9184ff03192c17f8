/*
summary.go - Period totals and the income limit check

PURPOSE:
  Summarize aggregates stored shifts from a start date: total pay, pay per
  workplace, pay and hours per month, transport and busy-bonus totals, and
  how much room is left under a yearly income limit.

LIMIT STATUS:
  Remaining = IncomeLimit - TotalPay (transport does not count)
  exceeded: Remaining < 0
  near:     Remaining < NearLimitMargin
  ok:       otherwise
*/
package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultIncomeLimit is the yearly income cap checked by Summarize.
const DefaultIncomeLimit int64 = 1030000

// NearLimitMargin is how close to the cap counts as "near".
const NearLimitMargin int64 = 100000

type LimitStatus string

const (
	LimitOK       LimitStatus = "ok"
	LimitNear     LimitStatus = "near"
	LimitExceeded LimitStatus = "exceeded"
)

type SummaryOptions struct {
	Period      Period
	IncomeLimit int64
}

type WorkplaceTotal struct {
	Workplace string
	Pay       int64
}

type MonthTotal struct {
	Month     string // YYYY-MM
	Pay       int64
	WorkHours float64 // rounded to 2 decimals
}

type Summary struct {
	Period         Period
	Shifts         int
	TotalPay       int64
	TotalTransport int64
	TotalBusyBonus int64
	TotalIncome    int64
	ByWorkplace    []WorkplaceTotal
	ByMonth        []MonthTotal

	IncomeLimit int64
	Remaining   int64
	LimitStatus LimitStatus
}

// Summarize aggregates the shifts that fall inside opts.Period.
func Summarize(shifts []ShiftRecord, opts SummaryOptions) Summary {
	sum := Summary{Period: opts.Period, IncomeLimit: opts.IncomeLimit}

	byWorkplace := make(map[string]int64)
	monthPay := make(map[string]int64)
	monthHours := make(map[string]decimal.Decimal)

	for _, s := range shifts {
		if !opts.Period.Contains(s.Date) {
			continue
		}
		sum.Shifts++
		sum.TotalPay += s.Pay
		sum.TotalTransport += s.Transport
		sum.TotalBusyBonus += s.BusyBonus
		byWorkplace[s.Workplace] += s.Pay

		m := MonthKey(s.Date)
		monthPay[m] += s.Pay
		monthHours[m] = monthHours[m].Add(decimal.NewFromFloat(s.WorkHours))
	}
	sum.TotalIncome = sum.TotalPay + sum.TotalTransport

	for wp, pay := range byWorkplace {
		sum.ByWorkplace = append(sum.ByWorkplace, WorkplaceTotal{Workplace: wp, Pay: pay})
	}
	sort.Slice(sum.ByWorkplace, func(i, j int) bool { return sum.ByWorkplace[i].Workplace < sum.ByWorkplace[j].Workplace })

	for m, pay := range monthPay {
		hours, _ := monthHours[m].Round(2).Float64()
		sum.ByMonth = append(sum.ByMonth, MonthTotal{Month: m, Pay: pay, WorkHours: hours})
	}
	sort.Slice(sum.ByMonth, func(i, j int) bool { return sum.ByMonth[i].Month < sum.ByMonth[j].Month })

	sum.Remaining = opts.IncomeLimit - sum.TotalPay
	switch {
	case sum.Remaining < 0:
		sum.LimitStatus = LimitExceeded
	case sum.Remaining < NearLimitMargin:
		sum.LimitStatus = LimitNear
	default:
		sum.LimitStatus = LimitOK
	}
	return sum
}
