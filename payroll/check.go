/*
check.go - Consistency scan over a shift log

PURPOSE:
  Check reports logical defects in stored shifts. Findings are advisory:
  Check never fails and never modifies its input.

CHECKS (in this order):
  1. Range:   end clock not after start clock on the record's date
              (raw, unpadded strings; unparseable strings are skipped)
  2. Overlap: same date and workplace, sorted by start, next start before
              previous end
  3. Values:  per record, wage <= 0, work hours < 0, pay < 0
*/
package payroll

import (
	"fmt"
	"sort"
	"time"
)

type IssueKind string

const (
	IssueInvalidRange    IssueKind = "invalid_range"
	IssueOverlap         IssueKind = "overlap"
	IssueNonPositiveWage IssueKind = "non_positive_wage"
	IssueNegativeHours   IssueKind = "negative_work_hours"
	IssueNegativePay     IssueKind = "negative_pay"
)

// Issue is one finding. Message is human readable and names the date,
// the workplace and the offending values.
type Issue struct {
	Kind      IssueKind
	Date      time.Time
	Workplace string
	ShiftIDs  []string
	Message   string
}

func (i Issue) String() string { return i.Message }

// Check scans shifts and returns every finding, or nil.
func Check(shifts []ShiftRecord) []Issue {
	var issues []Issue
	issues = append(issues, rangeIssues(shifts)...)
	issues = append(issues, overlapIssues(shifts)...)
	issues = append(issues, valueIssues(shifts)...)
	return issues
}

func rangeIssues(shifts []ShiftRecord) []Issue {
	var issues []Issue
	for _, s := range shifts {
		start, end, ok := clockSpan(s)
		if !ok || end.After(start) {
			continue
		}
		issues = append(issues, Issue{
			Kind:      IssueInvalidRange,
			Date:      DateOf(s.Date),
			Workplace: s.Workplace,
			ShiftIDs:  []string{s.ID},
			Message: fmt.Sprintf("%s %s: end time is not after start time (%s-%s)",
				FormatDate(s.Date), s.Workplace, s.Start, s.End),
		})
	}
	return issues
}

type groupKey struct {
	day       string
	workplace string
}

type span struct {
	start, end time.Time
	rec        ShiftRecord
}

func overlapIssues(shifts []ShiftRecord) []Issue {
	groups := make(map[groupKey][]span)
	for _, s := range shifts {
		start, end, ok := clockSpan(s)
		if !ok {
			continue
		}
		k := groupKey{day: FormatDate(s.Date), workplace: s.Workplace}
		groups[k] = append(groups[k], span{start: start, end: end, rec: s})
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		return keys[i].workplace < keys[j].workplace
	})

	var issues []Issue
	for _, k := range keys {
		spans := groups[k]
		sort.SliceStable(spans, func(i, j int) bool { return spans[i].start.Before(spans[j].start) })
		for i := 0; i+1 < len(spans); i++ {
			prev, next := spans[i], spans[i+1]
			if !next.start.Before(prev.end) {
				continue
			}
			issues = append(issues, Issue{
				Kind:      IssueOverlap,
				Date:      DateOf(prev.rec.Date),
				Workplace: k.workplace,
				ShiftIDs:  []string{prev.rec.ID, next.rec.ID},
				Message: fmt.Sprintf("%s %s: shifts %s-%s and %s-%s overlap",
					k.day, k.workplace, prev.rec.Start, prev.rec.End, next.rec.Start, next.rec.End),
			})
		}
	}
	return issues
}

func valueIssues(shifts []ShiftRecord) []Issue {
	var issues []Issue
	for _, s := range shifts {
		prefix := FormatDate(s.Date) + " " + s.Workplace
		add := func(kind IssueKind, msg string) {
			issues = append(issues, Issue{
				Kind:      kind,
				Date:      DateOf(s.Date),
				Workplace: s.Workplace,
				ShiftIDs:  []string{s.ID},
				Message:   prefix + ": " + msg,
			})
		}
		if s.Wage <= 0 {
			add(IssueNonPositiveWage, fmt.Sprintf("wage is not positive (%d)", s.Wage))
		}
		if s.WorkHours < 0 {
			add(IssueNegativeHours, fmt.Sprintf("work hours are negative (%.2f)", s.WorkHours))
		}
		if s.Pay < 0 {
			add(IssueNegativePay, fmt.Sprintf("pay is negative (%d)", s.Pay))
		}
	}
	return issues
}

// clockSpan places the raw start/end strings on the record's date.
func clockSpan(s ShiftRecord) (time.Time, time.Time, bool) {
	start, err := ParseClock(s.Start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := ParseClock(s.End)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start.On(s.Date), end.On(s.Date), true
}
