package payroll

import "sort"

// AutoBreakMinutes returns the break for a shift of totalHours: the
// BreakMinutes of the highest tier whose MinHours is reached, or 0.
// Rules may arrive in any order; among equal MinHours the later rule wins.
func AutoBreakMinutes(totalHours float64, rules []BreakRule) int {
	sorted := make([]BreakRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinHours < sorted[j].MinHours })

	minutes := 0
	for _, r := range sorted {
		if r.MinHours <= totalHours {
			minutes = r.BreakMinutes
		}
	}
	return minutes
}
