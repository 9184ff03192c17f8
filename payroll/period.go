package payroll

import "time"

// =============================================================================
// PERIOD - Date range for summaries
// =============================================================================

// Period is an inclusive range of calendar days. A zero End means
// "open ended".
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains returns true if date falls within [Start, End].
func (p Period) Contains(date time.Time) bool {
	day := DateOf(date)
	if !p.Start.IsZero() && day.Before(DateOf(p.Start)) {
		return false
	}
	if !p.End.IsZero() && day.After(DateOf(p.End)) {
		return false
	}
	return true
}

func (p Period) String() string {
	end := "open"
	if !p.End.IsZero() {
		end = FormatDate(p.End)
	}
	start := "open"
	if !p.Start.IsZero() {
		start = FormatDate(p.Start)
	}
	return "[" + start + ", " + end + "]"
}
