package payroll

import "time"

// ShiftPattern is a named preset for a shift that recurs with the same
// hours, e.g. "cafe:18-close".
type ShiftPattern struct {
	Name               string
	Workplace          string
	Start              Clock
	End                Clock
	Wage               *int64
	ManualBreakMinutes int
	Transport          int64
}

// Input builds the ShiftInput for this pattern on date.
func (p ShiftPattern) Input(date time.Time) ShiftInput {
	in := ShiftInput{
		Workplace:          p.Workplace,
		Date:               DateOf(date),
		Start:              p.Start,
		End:                p.End,
		ManualBreakMinutes: p.ManualBreakMinutes,
		Transport:          p.Transport,
	}
	if p.Wage != nil {
		w := *p.Wage
		in.Wage = &w
	}
	return in
}
