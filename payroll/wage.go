package payroll

import "time"

// ResolveWage returns the hourly wage effective on date: the wage history
// entry with the latest From not after date, or DefaultWage when no entry
// qualifies. History need not be sorted and is never modified.
func ResolveWage(policy WorkplacePolicy, date time.Time) int64 {
	day := DateOf(date)

	var (
		chosen WageChange
		found  bool
	)
	for _, wc := range policy.WageHistory {
		from := DateOf(wc.From)
		if from.After(day) {
			continue
		}
		if !found || from.After(DateOf(chosen.From)) {
			chosen, found = wc, true
		}
	}
	if found {
		return chosen.Wage
	}
	return policy.DefaultWage
}
