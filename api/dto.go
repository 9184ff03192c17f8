/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the payroll domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Shifts:     ShiftRequest, ShiftDTO, DuplicateRequest, BulkEditRequest
  Reports:    IssueDTO, SummaryDTO
  Workplaces: factory.WorkplaceJSON (same schema as the settings file)
  Scenarios:  ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/workplace.go: WorkplaceJSON type
*/
package api

import (
	"fmt"

	"github.com/warp/shift-payroll/payroll"
	"github.com/warp/shift-payroll/shifts"
)

// =============================================================================
// SHIFTS
// =============================================================================

// ShiftRequest is the body of POST /api/shifts and /api/shifts/preview.
// With Pattern set only Date is required; the other fields are ignored.
type ShiftRequest struct {
	Pattern        string `json:"pattern,omitempty"`
	Workplace      string `json:"workplace"`
	Date           string `json:"date"`  // YYYY-MM-DD
	Start          string `json:"start"` // HH:MM
	End            string `json:"end"`   // HH:MM
	Wage           *int64 `json:"wage,omitempty"`
	ManualBreakMin int    `json:"manual_break_min"`
	Busy           bool   `json:"busy"`
	Transport      int64  `json:"transport"`
	Memo           string `json:"memo"`
}

// toInput converts the request. Pattern requests are resolved by the handler.
func (r ShiftRequest) toInput() (payroll.ShiftInput, error) {
	if r.Workplace == "" {
		return payroll.ShiftInput{}, fmt.Errorf("workplace is required")
	}
	date, err := payroll.ParseDate(r.Date)
	if err != nil {
		return payroll.ShiftInput{}, err
	}
	start, err := payroll.ParseClock(r.Start)
	if err != nil {
		return payroll.ShiftInput{}, err
	}
	end, err := payroll.ParseClock(r.End)
	if err != nil {
		return payroll.ShiftInput{}, err
	}
	return payroll.ShiftInput{
		Workplace:          r.Workplace,
		Date:               date,
		Start:              start,
		End:                end,
		Wage:               r.Wage,
		ManualBreakMinutes: r.ManualBreakMin,
		Busy:               r.Busy,
		Transport:          r.Transport,
		Memo:               r.Memo,
	}, nil
}

// ShiftDTO represents a stored or previewed shift record.
type ShiftDTO struct {
	ID             string  `json:"id,omitempty"`
	Workplace      string  `json:"workplace"`
	Date           string  `json:"date"`
	Start          string  `json:"start"`
	End            string  `json:"end"`
	Wage           int64   `json:"wage"`
	ManualBreakMin int     `json:"manual_break_min"`
	Busy           bool    `json:"busy"`
	Transport      int64   `json:"transport"`
	Memo           string  `json:"memo"`
	PreMinutes     int     `json:"pre_minutes"`
	PostMinutes    int     `json:"post_minutes"`
	TotalHoursRaw  float64 `json:"total_hours_raw"`
	BreakMinutes   int     `json:"break_minutes"`
	WorkHours      float64 `json:"work_hours"`
	NightHours     float64 `json:"night_hours"`
	EarlyHours     float64 `json:"early_hours"`
	BasePay        int64   `json:"base_pay"`
	NightBonus     int64   `json:"night_bonus"`
	EarlyBonus     int64   `json:"early_bonus"`
	BusyBonus      int64   `json:"busy_bonus"`
	Pay            int64   `json:"pay"`
}

// DuplicateRequest is the body of POST /api/shifts/{id}/duplicate.
type DuplicateRequest struct {
	Date string `json:"date"`
}

// BulkEditRequest is the body of POST /api/shifts/bulk.
type BulkEditRequest struct {
	IDs       []string `json:"ids"`
	Workplace *string  `json:"workplace,omitempty"`
	Wage      *int64   `json:"wage,omitempty"`
	Memo      *string  `json:"memo,omitempty"`
	Busy      *bool    `json:"busy,omitempty"`
}

func (r BulkEditRequest) edit() shifts.Edit {
	return shifts.Edit{Workplace: r.Workplace, Wage: r.Wage, Memo: r.Memo, Busy: r.Busy}
}

// BulkDeleteRequest is the body of POST /api/shifts/bulk/delete.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// PatternDTO represents a shift preset.
type PatternDTO struct {
	Name           string `json:"name"`
	Workplace      string `json:"workplace"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Wage           *int64 `json:"wage"`
	ManualBreakMin int    `json:"manual_break_min"`
	Transport      int64  `json:"transport"`
}

// =============================================================================
// REPORTS
// =============================================================================

// IssueDTO is one consistency finding.
type IssueDTO struct {
	Kind      string   `json:"kind"`
	Date      string   `json:"date"`
	Workplace string   `json:"workplace"`
	ShiftIDs  []string `json:"shift_ids"`
	Message   string   `json:"message"`
}

// SummaryDTO is the response of GET /api/summary.
type SummaryDTO struct {
	From           string              `json:"from,omitempty"`
	To             string              `json:"to,omitempty"`
	Shifts         int                 `json:"shifts"`
	TotalPay       int64               `json:"total_pay"`
	TotalTransport int64               `json:"total_transport"`
	TotalBusyBonus int64               `json:"total_busy_bonus"`
	TotalIncome    int64               `json:"total_income"`
	ByWorkplace    []WorkplaceTotalDTO `json:"by_workplace"`
	ByMonth        []MonthTotalDTO     `json:"by_month"`
	IncomeLimit    int64               `json:"income_limit"`
	Remaining      int64               `json:"remaining"`
	LimitStatus    string              `json:"limit_status"`
}

type WorkplaceTotalDTO struct {
	Workplace string `json:"workplace"`
	Pay       int64  `json:"pay"`
}

type MonthTotalDTO struct {
	Month     string  `json:"month"`
	Pay       int64   `json:"pay"`
	WorkHours float64 `json:"work_hours"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a demo data set.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toShiftDTO(r payroll.ShiftRecord) ShiftDTO {
	return ShiftDTO{
		ID:             r.ID,
		Workplace:      r.Workplace,
		Date:           payroll.FormatDate(r.Date),
		Start:          r.Start,
		End:            r.End,
		Wage:           r.Wage,
		ManualBreakMin: r.ManualBreakMinutes,
		Busy:           r.Busy,
		Transport:      r.Transport,
		Memo:           r.Memo,
		PreMinutes:     r.PreMinutes,
		PostMinutes:    r.PostMinutes,
		TotalHoursRaw:  r.TotalHoursRaw,
		BreakMinutes:   r.BreakMinutes,
		WorkHours:      r.WorkHours,
		NightHours:     r.NightHours,
		EarlyHours:     r.EarlyHours,
		BasePay:        r.BasePay,
		NightBonus:     r.NightBonus,
		EarlyBonus:     r.EarlyBonus,
		BusyBonus:      r.BusyBonus,
		Pay:            r.Pay,
	}
}

func toShiftDTOs(recs []payroll.ShiftRecord) []ShiftDTO {
	out := make([]ShiftDTO, len(recs))
	for i, r := range recs {
		out[i] = toShiftDTO(r)
	}
	return out
}

func toIssueDTOs(issues []payroll.Issue) []IssueDTO {
	out := make([]IssueDTO, len(issues))
	for i, is := range issues {
		out[i] = IssueDTO{
			Kind:      string(is.Kind),
			Date:      payroll.FormatDate(is.Date),
			Workplace: is.Workplace,
			ShiftIDs:  is.ShiftIDs,
			Message:   is.Message,
		}
	}
	return out
}

func toSummaryDTO(s payroll.Summary) SummaryDTO {
	dto := SummaryDTO{
		Shifts:         s.Shifts,
		TotalPay:       s.TotalPay,
		TotalTransport: s.TotalTransport,
		TotalBusyBonus: s.TotalBusyBonus,
		TotalIncome:    s.TotalIncome,
		ByWorkplace:    make([]WorkplaceTotalDTO, len(s.ByWorkplace)),
		ByMonth:        make([]MonthTotalDTO, len(s.ByMonth)),
		IncomeLimit:    s.IncomeLimit,
		Remaining:      s.Remaining,
		LimitStatus:    string(s.LimitStatus),
	}
	if !s.Period.Start.IsZero() {
		dto.From = payroll.FormatDate(s.Period.Start)
	}
	if !s.Period.End.IsZero() {
		dto.To = payroll.FormatDate(s.Period.End)
	}
	for i, w := range s.ByWorkplace {
		dto.ByWorkplace[i] = WorkplaceTotalDTO{Workplace: w.Workplace, Pay: w.Pay}
	}
	for i, m := range s.ByMonth {
		dto.ByMonth[i] = MonthTotalDTO{Month: m.Month, Pay: m.Pay, WorkHours: m.WorkHours}
	}
	return dto
}

func toPatternDTO(p payroll.ShiftPattern) PatternDTO {
	return PatternDTO{
		Name:           p.Name,
		Workplace:      p.Workplace,
		Start:          p.Start.String(),
		End:            p.End.String(),
		Wage:           p.Wage,
		ManualBreakMin: p.ManualBreakMinutes,
		Transport:      p.Transport,
	}
}
