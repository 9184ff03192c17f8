/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:
	Provides pre-built shift logs that populate the database with realistic
	data for demos. Each scenario resets the database, reseeds the
	configured workplaces and adds shifts through the shift book, so every
	record is priced exactly as a user-entered one would be.

AVAILABLE SCENARIOS:

	typical-month: A month of cafe and school shifts, presets included
	data-issues:   Overlaps, an empty range and a zero wage for /api/check
	near-limit:    Enough cafe shifts from the fiscal start to come near
	               the income limit

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "typical-month"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to loadScenario

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: ResetDatabase
  - factory/presets.go: Demo workplaces and patterns
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/warp/shift-payroll/payroll"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "typical-month",
		Name:        "Typical Month",
		Description: "Cafe closing shifts, school evenings and one early busy shift",
	},
	{
		ID:          "data-issues",
		Name:        "Data Issues",
		Description: "Overlapping shifts, an empty range and a zero wage",
	},
	{
		ID:          "near-limit",
		Name:        "Near Income Limit",
		Description: "160 cafe closing shifts from the fiscal start",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	known := false
	for _, s := range scenarios {
		known = known || s.ID == req.ScenarioID
	}
	if !known {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	n, err := h.loadScenario(r.Context(), req.ScenarioID)
	if err != nil {
		h.fail(w, fmt.Sprintf("Failed to load scenario %s", req.ScenarioID), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "loaded", "scenario": req.ScenarioID, "shifts": n})
}

func (h *Handler) loadScenario(ctx context.Context, id string) (int, error) {
	if err := h.reset(ctx); err != nil {
		return 0, err
	}

	var inputs []payroll.ShiftInput
	switch id {
	case "typical-month":
		inputs = h.typicalMonthShifts()
	case "data-issues":
		inputs = dataIssueShifts()
	case "near-limit":
		inputs = h.nearLimitShifts()
	}

	for _, in := range inputs {
		if _, err := h.Book.Add(ctx, in); err != nil {
			return 0, fmt.Errorf("%s %s: %w", payroll.FormatDate(in.Date), in.Workplace, err)
		}
	}

	h.mu.Lock()
	h.currentScenario = id
	h.mu.Unlock()
	h.Log.Info("scenario loaded", zap.String("scenario", id), zap.Int("shifts", len(inputs)))
	return len(inputs), nil
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) pattern(name string, date time.Time) payroll.ShiftInput {
	if p, ok := h.Book.Patterns()[name]; ok {
		return p.Input(date)
	}
	// without presets, fall back to the same hours at baseline rates
	return payroll.ShiftInput{
		Workplace: "cafe",
		Date:      date,
		Start:     payroll.NewClock(18, 0),
		End:       payroll.NewClock(22, 30),
	}
}

func (h *Handler) typicalMonthShifts() []payroll.ShiftInput {
	var out []payroll.ShiftInput
	for day := 1; day <= 28; day++ {
		date := payroll.NewDate(2025, time.May, day)
		switch date.Weekday() {
		case time.Monday, time.Wednesday:
			out = append(out, h.pattern("cafe:18-close", date))
		case time.Tuesday:
			out = append(out, h.pattern("school:evening", date))
		case time.Saturday:
			out = append(out, h.pattern("cafe:15-close", date))
		}
	}
	out = append(out, payroll.ShiftInput{
		Workplace: "cafe",
		Date:      payroll.NewDate(2025, time.May, 4),
		Start:     payroll.NewClock(5, 30),
		End:       payroll.NewClock(11, 0),
		Busy:      true,
		Transport: 640,
		Memo:      "holiday opening",
	})
	return out
}

func dataIssueShifts() []payroll.ShiftInput {
	day := payroll.NewDate(2025, time.May, 10)
	zero := int64(0)
	return []payroll.ShiftInput{
		{Workplace: "school", Date: day, Start: payroll.NewClock(18, 0), End: payroll.NewClock(22, 0)},
		{Workplace: "school", Date: day, Start: payroll.NewClock(21, 0), End: payroll.NewClock(23, 0)},
		// padding makes this priceable, but the clock range is empty
		{Workplace: "cafe", Date: day, Start: payroll.NewClock(12, 0), End: payroll.NewClock(12, 0)},
		{Workplace: "retail", Date: day.AddDate(0, 0, 1), Start: payroll.NewClock(9, 0), End: payroll.NewClock(13, 0), Wage: &zero},
	}
}

func (h *Handler) nearLimitShifts() []payroll.ShiftInput {
	start := h.Settings.FiscalStart
	if start.IsZero() {
		start = payroll.NewDate(time.Now().Year(), time.January, 1)
	}
	out := make([]payroll.ShiftInput, 0, 160)
	for i := 0; i < 160; i++ {
		out = append(out, h.pattern("cafe:18-close", start.AddDate(0, 0, i)))
	}
	return out
}
