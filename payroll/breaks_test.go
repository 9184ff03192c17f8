package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/shift-payroll/payroll"
)

func TestAutoBreakMinutes_Tiers(t *testing.T) {
	rules := []payroll.BreakRule{
		{MinHours: 8, BreakMinutes: 60},
		{MinHours: 4, BreakMinutes: 15},
		{MinHours: 6, BreakMinutes: 45},
	}

	tests := []struct {
		hours float64
		want  int
	}{
		{3.9, 0},
		{4.0, 15},
		{6.5, 45},
		{8.0, 60},
		{12, 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, payroll.AutoBreakMinutes(tt.hours, rules), "hours=%v", tt.hours)
	}
}

func TestAutoBreakMinutes_NoRules(t *testing.T) {
	assert.Zero(t, payroll.AutoBreakMinutes(10, nil))
}

func TestAutoBreakMinutes_DoesNotReorderInput(t *testing.T) {
	rules := []payroll.BreakRule{{MinHours: 6, BreakMinutes: 45}, {MinHours: 4, BreakMinutes: 15}}
	payroll.AutoBreakMinutes(5, rules)
	assert.Equal(t, 6.0, rules[0].MinHours)
}

func TestTiers_DuplicateMinHoursLastWins(t *testing.T) {
	policy := payroll.WorkplacePolicy{BreakRules: []payroll.BreakRule{
		{MinHours: 6, BreakMinutes: 45},
		{MinHours: 4, BreakMinutes: 15},
		{MinHours: 6, BreakMinutes: 50},
	}}
	assert.Equal(t, []payroll.BreakRule{
		{MinHours: 4, BreakMinutes: 15},
		{MinHours: 6, BreakMinutes: 50},
	}, policy.Tiers())
}

func TestResolveWage(t *testing.T) {
	policy := payroll.WorkplacePolicy{
		DefaultWage: 1100,
		WageHistory: []payroll.WageChange{
			{From: payroll.NewDate(2025, time.April, 1), Wage: 1220},
			{From: payroll.NewDate(2024, time.January, 1), Wage: 1200},
		},
	}

	assert.Equal(t, int64(1220), payroll.ResolveWage(policy, payroll.NewDate(2025, time.May, 1)))
	assert.Equal(t, int64(1220), payroll.ResolveWage(policy, payroll.NewDate(2025, time.April, 1)), "effective on From")
	assert.Equal(t, int64(1200), payroll.ResolveWage(policy, payroll.NewDate(2025, time.March, 31)))
	assert.Equal(t, int64(1100), payroll.ResolveWage(policy, payroll.NewDate(2023, time.December, 31)))

	// history is left in caller order
	assert.Equal(t, int64(1220), policy.WageHistory[0].Wage)
}
