package factory

import "github.com/warp/shift-payroll/payroll"

// =============================================================================
// DEMO PRESETS
// =============================================================================

// DefaultWorkplacesJSON returns the demo workplace table the server seeds
// an empty database with.
func DefaultWorkplacesJSON() string {
	return defaultSettingsJSON
}

// DefaultSettings parses the demo settings. It panics on error since the
// input is a constant.
func DefaultSettings() *Settings {
	s, err := NewWorkplaceFactory().ParseSettings([]byte(defaultSettingsJSON), nil)
	if err != nil {
		panic("factory: invalid demo settings: " + err.Error())
	}
	return s
}

// DefaultPatterns returns the demo shift patterns.
func DefaultPatterns() map[string]payroll.ShiftPattern {
	return DefaultSettings().Patterns
}

const defaultSettingsJSON = `{
  "limit_income": 1030000,
  "workplace_settings": {
    "cafe": {
      "default_wage": 1310,
      "wage_history": [
        {"from": "2024-12-12", "wage": 1200},
        {"from": "2025-04-01", "wage": 1220},
        {"from": "2025-10-01", "wage": 1310}
      ],
      "pre_minutes": 10,
      "post_minutes": 5,
      "break_rules": [
        {"min_hours": 4, "break_minutes": 15},
        {"min_hours": 6, "break_minutes": 45},
        {"min_hours": 8, "break_minutes": 60}
      ],
      "night_start": 22,
      "night_end": 1,
      "night_rate": 1.25,
      "early_start": 5,
      "early_end": 7,
      "early_bonus_per_hour": 160,
      "busy_bonus_per_hour": 200
    },
    "school": {
      "default_wage": 1350,
      "wage_history": [
        {"from": "2024-04-24", "wage": 1200},
        {"from": "2025-04-01", "wage": 1350}
      ],
      "pre_minutes": 0,
      "post_minutes": 0,
      "break_rules": [
        {"min_hours": 6, "break_minutes": 45}
      ],
      "night_start": 23,
      "night_end": 1,
      "night_rate": 1,
      "early_start": 5,
      "early_end": 6,
      "early_bonus_per_hour": 0,
      "busy_bonus_per_hour": 0
    },
    "restaurant": {
      "default_wage": 1100,
      "wage_history": [{"from": "2024-01-01", "wage": 1100}],
      "break_rules": [
        {"min_hours": 5, "break_minutes": 30},
        {"min_hours": 8, "break_minutes": 60}
      ],
      "night_start": 22,
      "night_end": 5,
      "night_rate": 1.25,
      "early_start": 5,
      "early_end": 8
    },
    "retail": {
      "default_wage": 1100,
      "wage_history": [{"from": "2024-01-01", "wage": 1100}],
      "break_rules": [],
      "night_rate": 1.25
    }
  },
  "shift_patterns": {
    "cafe:15-close": {"workplace": "cafe", "start": "15:00", "end": "22:30", "wage": 1310, "manual_break_min": 45, "transport": 640},
    "cafe:18-close": {"workplace": "cafe", "start": "18:00", "end": "22:30", "wage": 1310, "manual_break_min": 15, "transport": 640},
    "school:evening": {"workplace": "school", "start": "18:00", "end": "22:00", "wage": 1350, "manual_break_min": 0, "transport": 0}
  }
}`
