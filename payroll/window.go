/*
window.go - Hours of a work interval inside a recurring daily window

PURPOSE:
  Premiums are paid for the part of a shift that falls into a clock-time
  window repeated every day (night 22:00-05:00, early 05:00-08:00). The
  interval may span several calendar days.

ALGORITHM:
  Non-crossing window (start < end):
    For every calendar day d from the interval's start date to its end date,
    intersect the interval with [d start:00, d end:00].

  Crossing window (start >= end, e.g. 22-5):
    For every calendar day d in the same range, intersect the interval with
    [d start:00, d 23:59:59.999999] and with [d+1 00:00, d+1 end:00].
    The early-morning part of the interval's first day is never looked at,
    only the morning after each day in range.

  Intersection of [a1,a2] and [b1,b2] is max(0, min(a2,b2) - max(a1,b1)).
  Results are fractional hours and are not rounded here.
*/
package payroll

import "time"

// Window is a recurring daily clock-time window. The zero Window is
// empty: it never crosses and covers no time.
type Window struct {
	StartHour int
	EndHour   int

	// CrossWhenEqual treats StartHour == EndHour as a window crossing
	// midnight. Otherwise equal bounds form an empty same-day window.
	CrossWhenEqual bool
}

// Crosses reports whether the window spans midnight.
func (w Window) Crosses() bool {
	if w.CrossWhenEqual {
		return w.StartHour >= w.EndHour
	}
	return w.StartHour > w.EndHour
}

// Hours returns how many hours of [start, end] fall inside the window.
func (w Window) Hours(start, end time.Time) float64 {
	if w.Crosses() {
		return crossingHours(start, end, w.StartHour, w.EndHour)
	}
	return nonCrossingHours(start, end, w.StartHour, w.EndHour)
}

// OverlapHours returns the hours of [start, end] inside the daily window
// [windowStartHour, windowEndHour). A window whose start is not before its
// end is treated as crossing midnight.
func OverlapHours(start, end time.Time, windowStartHour, windowEndHour int) float64 {
	return Window{StartHour: windowStartHour, EndHour: windowEndHour, CrossWhenEqual: true}.Hours(start, end)
}

func nonCrossingHours(start, end time.Time, startHour, endHour int) float64 {
	total := 0.0
	last := dayIn(end, start.Location())
	for day := dayIn(start, start.Location()); !day.After(last); day = day.AddDate(0, 0, 1) {
		total += intersectionHours(start, end, atClock(day, startHour, 0, 0, 0), atClock(day, endHour, 0, 0, 0))
	}
	return total
}

func crossingHours(start, end time.Time, startHour, endHour int) float64 {
	total := 0.0
	last := dayIn(end, start.Location())
	for day := dayIn(start, start.Location()); !day.After(last); day = day.AddDate(0, 0, 1) {
		// evening half, up to the last microsecond of the day
		total += intersectionHours(start, end, atClock(day, startHour, 0, 0, 0), atClock(day, 23, 59, 59, 999999000))

		next := day.AddDate(0, 0, 1)
		total += intersectionHours(start, end, next, atClock(next, endHour, 0, 0, 0))
	}
	return total
}

// dayIn is midnight of t's calendar day as seen in loc.
func dayIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func atClock(day time.Time, hour, minute, sec, nsec int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, sec, nsec, day.Location())
}

func intersectionHours(aStart, aEnd, bStart, bEnd time.Time) float64 {
	lo := aStart
	if bStart.After(lo) {
		lo = bStart
	}
	hi := aEnd
	if bEnd.Before(hi) {
		hi = bEnd
	}
	if !hi.After(lo) {
		return 0
	}
	return hi.Sub(lo).Hours()
}
