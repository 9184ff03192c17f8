/*
policy.go - Per-workplace payroll rules

PURPOSE:
  A WorkplacePolicy is the complete ruleset one employer applies to a shift:
  padding minutes, break tiers, night and early windows, premiums and the
  dated wage history. Policies are plain values; the caller owns the
  Workplaces table and passes the current one into every call.

KEY CONCEPTS:
  - Padding: PreMinutes/PostMinutes widen the shift before any other math
  - Break tiers: {MinHours, BreakMinutes}, highest qualifying tier wins
  - Night window: premium = wage x (NightRate - 1) per overlapping hour
  - Early window: flat EarlyBonusPerHour per overlapping hour
  - Busy bonus: flat BusyBonusPerHour per work hour on busy shifts

UNKNOWN WORKPLACES:
  Workplaces.Lookup never fails. A name with no policy gets Unconfigured():
  zero padding, no tiers, DefaultWage, and no night or early hours at all.
  Baseline() is the starting point for configured policies and carries
  the default 22-5 and 5-8 windows.

EXAMPLE:
  wp := payroll.Workplaces{
      "cafe": {
          Name:        "cafe",
          DefaultWage: 1310,
          PreMinutes:  10,
          PostMinutes: 5,
          BreakRules:  []payroll.BreakRule{{MinHours: 4, BreakMinutes: 15}},
          NightStartHour: 22, NightEndHour: 5, NightRate: 1.25,
          EarlyStartHour: 5, EarlyEndHour: 7, EarlyBonusPerHour: 160,
      },
  }
  policy := wp.Lookup("cafe")
*/
package payroll

import (
	"fmt"
	"sort"
	"time"
)

// DefaultWage applies to workplaces with no policy and no history.
const DefaultWage int64 = 1100

// Window defaults used when a stored policy omits them.
const (
	DefaultNightStartHour = 22
	DefaultNightEndHour   = 5
	DefaultEarlyStartHour = 5
	DefaultEarlyEndHour   = 8
)

// =============================================================================
// WORKPLACE POLICY
// =============================================================================

// WorkplacePolicy defines how shifts at one workplace are paid.
type WorkplacePolicy struct {
	Name string

	DefaultWage int64
	WageHistory []WageChange

	PreMinutes  int
	PostMinutes int

	BreakRules []BreakRule

	NightStartHour int
	NightEndHour   int
	NightRate      float64

	EarlyStartHour    int
	EarlyEndHour      int
	EarlyBonusPerHour float64

	BusyBonusPerHour float64

	// NoWindows disables the night and early windows. Set only for
	// workplaces nobody configured.
	NoWindows bool
}

// WageChange makes Wage effective from the calendar day From onwards.
type WageChange struct {
	From time.Time
	Wage int64
}

// BreakRule deducts BreakMinutes once total hours reach MinHours.
type BreakRule struct {
	MinHours     float64
	BreakMinutes int
}

// Baseline is a policy with every default filled in and no premiums.
func Baseline(name string) WorkplacePolicy {
	return WorkplacePolicy{
		Name:           name,
		DefaultWage:    DefaultWage,
		NightStartHour: DefaultNightStartHour,
		NightEndHour:   DefaultNightEndHour,
		NightRate:      1,
		EarlyStartHour: DefaultEarlyStartHour,
		EarlyEndHour:   DefaultEarlyEndHour,
	}
}

// Unconfigured is the policy for a workplace with no settings: Baseline
// pay with zero night and early hours.
func Unconfigured(name string) WorkplacePolicy {
	p := Baseline(name)
	p.NoWindows = true
	return p
}

// NightWindow crosses midnight only when start > end.
func (p WorkplacePolicy) NightWindow() Window {
	if p.NoWindows {
		return Window{}
	}
	return Window{StartHour: p.NightStartHour, EndHour: p.NightEndHour}
}

// EarlyWindow crosses midnight when start >= end. The equal case differs
// from NightWindow on purpose; see DESIGN.md.
func (p WorkplacePolicy) EarlyWindow() Window {
	if p.NoWindows {
		return Window{}
	}
	return Window{StartHour: p.EarlyStartHour, EndHour: p.EarlyEndHour, CrossWhenEqual: true}
}

// Tiers returns the break rules deduplicated by MinHours (last one wins)
// and sorted ascending. The policy's own slice is not modified.
func (p WorkplacePolicy) Tiers() []BreakRule {
	byHours := make(map[float64]int, len(p.BreakRules))
	for _, r := range p.BreakRules {
		byHours[r.MinHours] = r.BreakMinutes
	}
	tiers := make([]BreakRule, 0, len(byHours))
	for h, m := range byHours {
		tiers = append(tiers, BreakRule{MinHours: h, BreakMinutes: m})
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinHours < tiers[j].MinHours })
	return tiers
}

// Validate checks the invariants the calculator relies on. It reports
// every problem at once.
func (p WorkplacePolicy) Validate() error {
	var problems []string
	hours := []struct {
		field string
		v     int
	}{
		{"night_start", p.NightStartHour},
		{"night_end", p.NightEndHour},
		{"early_start", p.EarlyStartHour},
		{"early_end", p.EarlyEndHour},
	}
	for _, h := range hours {
		if h.v < 0 || h.v > 23 {
			problems = append(problems, fmt.Sprintf("%s must be in [0,23], got %d", h.field, h.v))
		}
	}
	if p.PreMinutes < 0 {
		problems = append(problems, fmt.Sprintf("pre_minutes must not be negative, got %d", p.PreMinutes))
	}
	if p.PostMinutes < 0 {
		problems = append(problems, fmt.Sprintf("post_minutes must not be negative, got %d", p.PostMinutes))
	}
	if p.EarlyBonusPerHour < 0 {
		problems = append(problems, fmt.Sprintf("early_bonus_per_hour must not be negative, got %g", p.EarlyBonusPerHour))
	}
	if p.BusyBonusPerHour < 0 {
		problems = append(problems, fmt.Sprintf("busy_bonus_per_hour must not be negative, got %g", p.BusyBonusPerHour))
	}
	if p.NightRate < 0 {
		problems = append(problems, fmt.Sprintf("night_rate must not be negative, got %g", p.NightRate))
	}
	seen := make(map[string]bool, len(p.WageHistory))
	for _, wc := range p.WageHistory {
		key := FormatDate(wc.From)
		if seen[key] {
			problems = append(problems, fmt.Sprintf("duplicate wage_history date %s", key))
		}
		seen[key] = true
	}
	for _, r := range p.BreakRules {
		if r.BreakMinutes < 0 {
			problems = append(problems, fmt.Sprintf("break_minutes must not be negative, got %d", r.BreakMinutes))
		}
	}
	if len(problems) > 0 {
		return &PolicyError{Workplace: p.Name, Problems: problems}
	}
	return nil
}

// =============================================================================
// WORKPLACES - Caller-owned policy table
// =============================================================================

// Workplaces maps workplace name to policy.
type Workplaces map[string]WorkplacePolicy

// Lookup returns the named policy, or Unconfigured(name) if there is none.
func (w Workplaces) Lookup(name string) WorkplacePolicy {
	if p, ok := w[name]; ok {
		if p.Name == "" {
			p.Name = name
		}
		return p
	}
	return Unconfigured(name)
}

// Names returns the configured workplace names, sorted.
func (w Workplaces) Names() []string {
	names := make([]string, 0, len(w))
	for n := range w {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
