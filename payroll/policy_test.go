package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-payroll/payroll"
)

func TestWorkplaces_LookupFallsBackToBaseline(t *testing.T) {
	wp := payroll.Workplaces{"cafe": cafePolicy()}

	assert.Equal(t, int64(1310), wp.Lookup("cafe").DefaultWage)

	p := wp.Lookup("unknown")
	assert.Equal(t, "unknown", p.Name)
	assert.Equal(t, payroll.DefaultWage, p.DefaultWage)
	assert.Equal(t, 22, p.NightStartHour)
	assert.Equal(t, 5, p.NightEndHour)
	assert.Equal(t, 1.0, p.NightRate)
	assert.Zero(t, p.EarlyBonusPerHour)
	assert.Empty(t, p.BreakRules)
	assert.True(t, p.NoWindows)
	assert.False(t, p.EarlyWindow().Crosses())

	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	assert.Zero(t, p.NightWindow().Hours(start, end))
	assert.Zero(t, p.EarlyWindow().Hours(start, end))

	assert.Equal(t, []string{"cafe"}, wp.Names())
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	p := payroll.Baseline("broken")
	p.NightStartHour = 24
	p.PreMinutes = -1
	p.WageHistory = []payroll.WageChange{
		{From: payroll.NewDate(2025, time.April, 1), Wage: 1000},
		{From: payroll.NewDate(2025, time.April, 1), Wage: 1100},
	}

	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrInvalidPolicy)

	var pe *payroll.PolicyError
	require.ErrorAs(t, err, &pe)
	assert.Len(t, pe.Problems, 3)
}

func TestValidate_NegativeBonus(t *testing.T) {
	p := payroll.Baseline("broken")
	p.BusyBonusPerHour = -0.5
	assert.ErrorIs(t, p.Validate(), payroll.ErrInvalidPolicy)
}

func TestParseClock(t *testing.T) {
	c, err := payroll.ParseClock("07:05")
	require.NoError(t, err)
	assert.Equal(t, payroll.NewClock(7, 5), c)
	assert.Equal(t, "07:05", c.String())

	_, err = payroll.ParseClock("7pm")
	assert.ErrorIs(t, err, payroll.ErrInvalidClock)
}

func TestShiftPattern_Input(t *testing.T) {
	w := int64(1310)
	p := payroll.ShiftPattern{
		Workplace:          "cafe",
		Start:              payroll.MustParseClock("18:00"),
		End:                payroll.MustParseClock("22:30"),
		Wage:               &w,
		ManualBreakMinutes: 15,
		Transport:          640,
	}
	in := p.Input(time.Date(2025, time.May, 1, 13, 0, 0, 0, time.UTC))

	assert.Equal(t, payroll.NewDate(2025, time.May, 1), in.Date)
	require.NotNil(t, in.Wage)
	assert.Equal(t, int64(1310), *in.Wage)

	w = 9999
	assert.Equal(t, int64(1310), *in.Wage, "input owns its wage")
}
