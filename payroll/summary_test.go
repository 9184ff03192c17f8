package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/shift-payroll/payroll"
)

func paid(workplace string, month time.Month, day int, pay, transport int64, hours float64) payroll.ShiftRecord {
	return payroll.ShiftRecord{
		Workplace: workplace,
		Date:      payroll.NewDate(2025, month, day),
		Pay:       pay,
		Transport: transport,
		WorkHours: hours,
	}
}

func TestSummarize_TotalsAndBreakdowns(t *testing.T) {
	shifts := []payroll.ShiftRecord{
		paid("cafe", time.March, 31, 9999, 0, 3), // before period
		paid("cafe", time.April, 2, 6000, 640, 4.333),
		paid("school", time.April, 9, 5400, 0, 4),
		paid("cafe", time.May, 1, 7000, 640, 5.25),
	}

	sum := payroll.Summarize(shifts, payroll.SummaryOptions{
		Period:      payroll.Period{Start: payroll.NewDate(2025, time.April, 1)},
		IncomeLimit: payroll.DefaultIncomeLimit,
	})

	assert.Equal(t, 3, sum.Shifts)
	assert.Equal(t, int64(18400), sum.TotalPay)
	assert.Equal(t, int64(1280), sum.TotalTransport)
	assert.Equal(t, int64(19680), sum.TotalIncome)

	assert.Equal(t, []payroll.WorkplaceTotal{
		{Workplace: "cafe", Pay: 13000},
		{Workplace: "school", Pay: 5400},
	}, sum.ByWorkplace)

	assert.Equal(t, []payroll.MonthTotal{
		{Month: "2025-04", Pay: 11400, WorkHours: 8.33},
		{Month: "2025-05", Pay: 7000, WorkHours: 5.25},
	}, sum.ByMonth)

	assert.Equal(t, payroll.DefaultIncomeLimit-18400, sum.Remaining)
	assert.Equal(t, payroll.LimitOK, sum.LimitStatus)
}

func TestSummarize_LimitStatus(t *testing.T) {
	shifts := []payroll.ShiftRecord{paid("cafe", time.June, 1, 950000, 0, 1)}

	near := payroll.Summarize(shifts, payroll.SummaryOptions{IncomeLimit: 1030000})
	assert.Equal(t, payroll.LimitNear, near.LimitStatus)
	assert.Equal(t, int64(80000), near.Remaining)

	exceeded := payroll.Summarize(shifts, payroll.SummaryOptions{IncomeLimit: 900000})
	assert.Equal(t, payroll.LimitExceeded, exceeded.LimitStatus)

	// transport never counts towards the limit
	shifts[0].Transport = 500000
	ok := payroll.Summarize(shifts, payroll.SummaryOptions{IncomeLimit: 1100000})
	assert.Equal(t, payroll.LimitOK, ok.LimitStatus)
}
