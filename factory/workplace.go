/*
Package factory provides JSON to Go workplace policy conversion.

PURPOSE:
  Converts the JSON settings file (workplace rules, shift patterns, income
  limit, fiscal start) into payroll types and back. Workplace rules can be
  edited without code changes and stored as JSON in the database.

JSON SCHEMA (one workplace):
  {
    "default_wage": 1310,
    "wage_history": [
      {"from": "2024-01-01", "wage": 1200},
      {"from": "2025-04-01", "wage": 1310}
    ],
    "pre_minutes": 10,
    "post_minutes": 5,
    "break_rules": [
      {"min_hours": 4, "break_minutes": 15},
      {"min_hours": 6, "break_minutes": 45}
    ],
    "night_start": 22,
    "night_end": 5,
    "night_rate": 1.25,
    "early_start": 5,
    "early_end": 7,
    "early_bonus_per_hour": 160,
    "busy_bonus_per_hour": 200
  }

DEFAULTS FOR ABSENT FIELDS:
  default_wage 1100, night 22-5 at rate 1.0, early 5-8, everything else 0.
  Older settings files that predate a field keep working.

USAGE:
  f := factory.NewWorkplaceFactory()
  policy, err := f.ParseWorkplace("cafe", jsonString)

SEE ALSO:
  - payroll/policy.go: WorkplacePolicy definition
  - factory/settings.go: Whole settings file
  - factory/presets.go: Demo workplaces and patterns
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/shift-payroll/payroll"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// WorkplaceJSON is the JSON representation of a workplace policy.
// Pointer fields distinguish "absent" from zero.
type WorkplaceJSON struct {
	Name              string           `json:"name,omitempty"`
	DefaultWage       *int64           `json:"default_wage,omitempty"`
	WageHistory       []WageChangeJSON `json:"wage_history,omitempty"`
	PreMinutes        int              `json:"pre_minutes"`
	PostMinutes       int              `json:"post_minutes"`
	BreakRules        []BreakRuleJSON  `json:"break_rules"`
	NightStart        *int             `json:"night_start,omitempty"`
	NightEnd          *int             `json:"night_end,omitempty"`
	NightRate         *float64         `json:"night_rate,omitempty"`
	EarlyStart        *int             `json:"early_start,omitempty"`
	EarlyEnd          *int             `json:"early_end,omitempty"`
	EarlyBonusPerHour float64          `json:"early_bonus_per_hour"`
	BusyBonusPerHour  float64          `json:"busy_bonus_per_hour"`
}

// WageChangeJSON is one wage history entry.
type WageChangeJSON struct {
	From string `json:"from"` // YYYY-MM-DD
	Wage int64  `json:"wage"`
}

// BreakRuleJSON is one break tier.
type BreakRuleJSON struct {
	MinHours     float64 `json:"min_hours"`
	BreakMinutes int     `json:"break_minutes"`
}

// =============================================================================
// WORKPLACE FACTORY
// =============================================================================

// WorkplaceFactory converts JSON workplace settings to policies.
type WorkplaceFactory struct{}

func NewWorkplaceFactory() *WorkplaceFactory {
	return &WorkplaceFactory{}
}

// ParseWorkplace parses one workplace JSON object. name wins over any
// "name" key inside the JSON.
func (f *WorkplaceFactory) ParseWorkplace(name, jsonStr string) (payroll.WorkplacePolicy, error) {
	var wj WorkplaceJSON
	if err := json.Unmarshal([]byte(jsonStr), &wj); err != nil {
		return payroll.WorkplacePolicy{}, fmt.Errorf("failed to parse workplace JSON: %w", err)
	}
	if name == "" {
		name = wj.Name
	}
	return f.FromJSON(name, wj)
}

// FromJSON converts WorkplaceJSON to a validated WorkplacePolicy.
func (f *WorkplaceFactory) FromJSON(name string, wj WorkplaceJSON) (payroll.WorkplacePolicy, error) {
	policy := payroll.Baseline(name)
	policy.PreMinutes = wj.PreMinutes
	policy.PostMinutes = wj.PostMinutes
	policy.EarlyBonusPerHour = wj.EarlyBonusPerHour
	policy.BusyBonusPerHour = wj.BusyBonusPerHour

	if wj.DefaultWage != nil {
		policy.DefaultWage = *wj.DefaultWage
	}
	if wj.NightStart != nil {
		policy.NightStartHour = *wj.NightStart
	}
	if wj.NightEnd != nil {
		policy.NightEndHour = *wj.NightEnd
	}
	if wj.NightRate != nil {
		policy.NightRate = *wj.NightRate
	}
	if wj.EarlyStart != nil {
		policy.EarlyStartHour = *wj.EarlyStart
	}
	if wj.EarlyEnd != nil {
		policy.EarlyEndHour = *wj.EarlyEnd
	}

	for _, wc := range wj.WageHistory {
		from, err := payroll.ParseDate(wc.From)
		if err != nil {
			return payroll.WorkplacePolicy{}, fmt.Errorf("workplace %q wage_history: %w", name, err)
		}
		policy.WageHistory = append(policy.WageHistory, payroll.WageChange{From: from, Wage: wc.Wage})
	}
	for _, br := range wj.BreakRules {
		policy.BreakRules = append(policy.BreakRules, payroll.BreakRule{
			MinHours:     br.MinHours,
			BreakMinutes: br.BreakMinutes,
		})
	}

	if err := policy.Validate(); err != nil {
		return payroll.WorkplacePolicy{}, err
	}
	return policy, nil
}

// ToJSON converts a policy to WorkplaceJSON with every field present.
func (f *WorkplaceFactory) ToJSON(policy payroll.WorkplacePolicy) WorkplaceJSON {
	defaultWage := policy.DefaultWage
	nightStart, nightEnd, nightRate := policy.NightStartHour, policy.NightEndHour, policy.NightRate
	earlyStart, earlyEnd := policy.EarlyStartHour, policy.EarlyEndHour

	wj := WorkplaceJSON{
		Name:              policy.Name,
		DefaultWage:       &defaultWage,
		PreMinutes:        policy.PreMinutes,
		PostMinutes:       policy.PostMinutes,
		BreakRules:        []BreakRuleJSON{},
		NightStart:        &nightStart,
		NightEnd:          &nightEnd,
		NightRate:         &nightRate,
		EarlyStart:        &earlyStart,
		EarlyEnd:          &earlyEnd,
		EarlyBonusPerHour: policy.EarlyBonusPerHour,
		BusyBonusPerHour:  policy.BusyBonusPerHour,
	}
	for _, wc := range policy.WageHistory {
		wj.WageHistory = append(wj.WageHistory, WageChangeJSON{From: payroll.FormatDate(wc.From), Wage: wc.Wage})
	}
	for _, br := range policy.BreakRules {
		wj.BreakRules = append(wj.BreakRules, BreakRuleJSON{MinHours: br.MinHours, BreakMinutes: br.BreakMinutes})
	}
	return wj
}

// Marshal returns the policy as indented JSON, the form stored in the
// workplaces table.
func (f *WorkplaceFactory) Marshal(policy payroll.WorkplacePolicy) (string, error) {
	b, err := json.MarshalIndent(f.ToJSON(policy), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode workplace %q: %w", policy.Name, err)
	}
	return string(b), nil
}
