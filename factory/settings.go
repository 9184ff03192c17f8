package factory

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/warp/shift-payroll/payroll"
)

// =============================================================================
// SETTINGS FILE
// =============================================================================

// SettingsJSON is the whole settings file.
type SettingsJSON struct {
	LimitIncome   *int64                   `json:"limit_income,omitempty"`
	FiscalStart   string                   `json:"fiscal_start,omitempty"` // YYYY-MM-DD
	Workplaces    map[string]WorkplaceJSON `json:"workplace_settings,omitempty"`
	ShiftPatterns map[string]PatternJSON   `json:"shift_patterns,omitempty"`
}

// PatternJSON is one shift pattern preset.
type PatternJSON struct {
	Workplace      string `json:"workplace"`
	Start          string `json:"start"` // HH:MM
	End            string `json:"end"`   // HH:MM
	Wage           *int64 `json:"wage"`
	ManualBreakMin int    `json:"manual_break_min"`
	Transport      int64  `json:"transport"`
}

// Settings is the parsed settings file.
type Settings struct {
	IncomeLimit int64
	FiscalStart time.Time // zero when the file doesn't set one
	Workplaces  payroll.Workplaces
	Patterns    map[string]payroll.ShiftPattern
}

// ParseSettings parses a settings file. Workplaces and patterns it names
// replace entries of the same name in base; the rest of base is kept.
// base may be nil.
func (f *WorkplaceFactory) ParseSettings(data []byte, base *Settings) (*Settings, error) {
	var sj SettingsJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return nil, fmt.Errorf("failed to parse settings JSON: %w", err)
	}

	out := &Settings{
		IncomeLimit: payroll.DefaultIncomeLimit,
		Workplaces:  make(payroll.Workplaces),
		Patterns:    make(map[string]payroll.ShiftPattern),
	}
	if base != nil {
		out.IncomeLimit = base.IncomeLimit
		out.FiscalStart = base.FiscalStart
		for k, v := range base.Workplaces {
			out.Workplaces[k] = v
		}
		for k, v := range base.Patterns {
			out.Patterns[k] = v
		}
	}

	if sj.LimitIncome != nil {
		out.IncomeLimit = *sj.LimitIncome
	}
	if sj.FiscalStart != "" {
		fs, err := payroll.ParseDate(sj.FiscalStart)
		if err != nil {
			return nil, fmt.Errorf("fiscal_start: %w", err)
		}
		out.FiscalStart = fs
	}

	for _, name := range sortedKeys(sj.Workplaces) {
		policy, err := f.FromJSON(name, sj.Workplaces[name])
		if err != nil {
			return nil, err
		}
		out.Workplaces[name] = policy
	}
	for _, name := range sortedKeys(sj.ShiftPatterns) {
		pattern, err := parsePattern(name, sj.ShiftPatterns[name])
		if err != nil {
			return nil, err
		}
		out.Patterns[name] = pattern
	}
	return out, nil
}

// SettingsToJSON is the inverse of ParseSettings.
func (f *WorkplaceFactory) SettingsToJSON(s *Settings) SettingsJSON {
	limit := s.IncomeLimit
	sj := SettingsJSON{
		LimitIncome:   &limit,
		Workplaces:    make(map[string]WorkplaceJSON, len(s.Workplaces)),
		ShiftPatterns: make(map[string]PatternJSON, len(s.Patterns)),
	}
	if !s.FiscalStart.IsZero() {
		sj.FiscalStart = payroll.FormatDate(s.FiscalStart)
	}
	for name, p := range s.Workplaces {
		wj := f.ToJSON(p)
		wj.Name = ""
		sj.Workplaces[name] = wj
	}
	for name, p := range s.Patterns {
		sj.ShiftPatterns[name] = PatternJSON{
			Workplace:      p.Workplace,
			Start:          p.Start.String(),
			End:            p.End.String(),
			Wage:           p.Wage,
			ManualBreakMin: p.ManualBreakMinutes,
			Transport:      p.Transport,
		}
	}
	return sj
}

func parsePattern(name string, pj PatternJSON) (payroll.ShiftPattern, error) {
	p := payroll.ShiftPattern{
		Name:               name,
		Workplace:          pj.Workplace,
		Wage:               pj.Wage,
		ManualBreakMinutes: pj.ManualBreakMin,
		Transport:          pj.Transport,
	}
	// an empty clock string means midnight, as older files wrote it
	if pj.Start != "" {
		c, err := payroll.ParseClock(pj.Start)
		if err != nil {
			return payroll.ShiftPattern{}, fmt.Errorf("shift pattern %q start: %w", name, err)
		}
		p.Start = c
	}
	if pj.End != "" {
		c, err := payroll.ParseClock(pj.End)
		if err != nil {
			return payroll.ShiftPattern{}, fmt.Errorf("shift pattern %q end: %w", name, err)
		}
		p.End = c
	}
	return p, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
