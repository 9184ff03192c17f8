/*
handlers.go - HTTP API handlers for the shift payroll service

PURPOSE:
  Exposes the shift book via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to shifts.Book.

ENDPOINTS:
  Workplaces:
    GET    /api/workplaces               List workplace policies
    POST   /api/workplaces               Create policy from JSON
    GET    /api/workplaces/{name}        Get one policy
    PUT    /api/workplaces/{name}        Replace a policy
    DELETE /api/workplaces/{name}        Delete a policy

  Shifts:
    POST   /api/shifts/preview           Compute without saving
    POST   /api/shifts                   Compute and save
    GET    /api/shifts                   List (?from=&to=&workplace=)
    GET    /api/shifts/{id}              Get one shift
    DELETE /api/shifts/{id}              Delete a shift
    POST   /api/shifts/{id}/duplicate    Copy to another date
    POST   /api/shifts/bulk              Bulk edit and re-price
    POST   /api/shifts/bulk/delete       Delete many shifts at once
    GET    /api/patterns                 Shift presets

  Reports:
    GET    /api/check                    Consistency scan
    GET    /api/summary                  Totals (?from=&to=&limit=)

  Dev:
    POST   /api/reset                    Clear data, reseed workplaces
    GET    /api/health                   Liveness

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input, invalid interval, invalid policy
  - 404: Shift, workplace or pattern not found
  - 500: Internal errors (logged)

SECURITY NOTE:
  No authentication. The service is meant for a single local user.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo data loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/shift-payroll/factory"
	"github.com/warp/shift-payroll/payroll"
	"github.com/warp/shift-payroll/shifts"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Resetter is implemented by stores that can be wiped.
type Resetter interface {
	Reset(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Book             *shifts.Book
	Store            Resetter
	WorkplaceFactory *factory.WorkplaceFactory
	Settings         *factory.Settings
	Log              *zap.Logger

	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a handler. settings supplies the income limit, the
// fiscal start and the workplaces reseeded by reset.
func NewHandler(book *shifts.Book, store Resetter, settings *factory.Settings, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Book:             book,
		Store:            store,
		WorkplaceFactory: factory.NewWorkplaceFactory(),
		Settings:         settings,
		Log:              log,
	}
}

// Seed saves every settings workplace that is not stored yet.
func (h *Handler) Seed(ctx context.Context) error {
	stored, err := h.Book.Workplaces(ctx)
	if err != nil {
		return err
	}
	for _, name := range h.Settings.Workplaces.Names() {
		if _, ok := stored[name]; ok {
			continue
		}
		if err := h.Book.SaveWorkplace(ctx, h.Settings.Workplaces[name]); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// WORKPLACE HANDLERS
// =============================================================================

// ListWorkplaces returns all stored policies, sorted by name.
func (h *Handler) ListWorkplaces(w http.ResponseWriter, r *http.Request) {
	all, err := h.Book.Workplaces(r.Context())
	if err != nil {
		h.fail(w, "Failed to list workplaces", err)
		return
	}
	out := make([]factory.WorkplaceJSON, 0, len(all))
	for _, name := range all.Names() {
		out = append(out, h.WorkplaceFactory.ToJSON(all[name]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetWorkplace(w http.ResponseWriter, r *http.Request) {
	policy, err := h.Book.Workplace(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, "Failed to get workplace", err)
		return
	}
	writeJSON(w, http.StatusOK, h.WorkplaceFactory.ToJSON(policy))
}

// CreateWorkplace stores a policy; the name comes from the body.
func (h *Handler) CreateWorkplace(w http.ResponseWriter, r *http.Request) {
	var wj factory.WorkplaceJSON
	if err := json.NewDecoder(r.Body).Decode(&wj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if wj.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}
	h.saveWorkplace(w, r, wj.Name, wj, http.StatusCreated)
}

// UpdateWorkplace replaces the policy named in the URL.
func (h *Handler) UpdateWorkplace(w http.ResponseWriter, r *http.Request) {
	var wj factory.WorkplaceJSON
	if err := json.NewDecoder(r.Body).Decode(&wj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.saveWorkplace(w, r, chi.URLParam(r, "name"), wj, http.StatusOK)
}

func (h *Handler) saveWorkplace(w http.ResponseWriter, r *http.Request, name string, wj factory.WorkplaceJSON, status int) {
	policy, err := h.WorkplaceFactory.FromJSON(name, wj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid workplace", err)
		return
	}
	if err := h.Book.SaveWorkplace(r.Context(), policy); err != nil {
		h.fail(w, "Failed to save workplace", err)
		return
	}
	writeJSON(w, status, h.WorkplaceFactory.ToJSON(policy))
}

func (h *Handler) DeleteWorkplace(w http.ResponseWriter, r *http.Request) {
	if err := h.Book.DeleteWorkplace(r.Context(), chi.URLParam(r, "name")); err != nil {
		h.fail(w, "Failed to delete workplace", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// PreviewShift computes a shift without saving it.
func (h *Handler) PreviewShift(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeShift(w, r)
	if !ok {
		return
	}
	rec, err := h.Book.Preview(r.Context(), in)
	if err != nil {
		h.fail(w, "Failed to compute shift", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(rec))
}

// CreateShift computes and saves a shift.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeShift(w, r)
	if !ok {
		return
	}
	rec, err := h.Book.Add(r.Context(), in)
	if err != nil {
		h.fail(w, "Failed to add shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(rec))
}

// ListShifts returns stored shifts in the order they were added.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r, payroll.Period{})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	recs, err := h.Book.List(r.Context(), payroll.ShiftFilter{
		Period:    period,
		Workplace: r.URL.Query().Get("workplace"),
	})
	if err != nil {
		h.fail(w, "Failed to list shifts", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTOs(recs))
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Book.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "Failed to get shift", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(rec))
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.Book.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, "Failed to delete shift", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateShift copies a shift to the date in the body.
func (h *Handler) DuplicateShift(w http.ResponseWriter, r *http.Request) {
	var req DuplicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := payroll.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	rec, err := h.Book.Duplicate(r.Context(), chi.URLParam(r, "id"), date)
	if err != nil {
		h.fail(w, "Failed to duplicate shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(rec))
}

// BulkEdit applies one edit to many shifts.
func (h *Handler) BulkEdit(w http.ResponseWriter, r *http.Request) {
	var req BulkEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids is required", nil)
		return
	}
	recs, err := h.Book.BulkEdit(r.Context(), req.IDs, req.edit())
	if err != nil {
		h.fail(w, "Failed to edit shifts", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTOs(recs))
}

// BulkDelete removes many shifts in one transaction.
func (h *Handler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids is required", nil)
		return
	}
	n, err := h.Book.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		h.fail(w, "Failed to delete shifts", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

// ListPatterns returns the shift presets sorted by name.
func (h *Handler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	patterns := h.Book.Patterns()
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]PatternDTO, 0, len(names))
	for _, name := range names {
		out = append(out, toPatternDTO(patterns[name]))
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// Check returns every consistency finding, or an empty list.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	issues, err := h.Book.Check(r.Context())
	if err != nil {
		h.fail(w, "Failed to check shifts", err)
		return
	}
	writeJSON(w, http.StatusOK, toIssueDTOs(issues))
}

// Summary totals shifts from ?from= (default: fiscal start) and checks
// them against ?limit= (default: configured income limit).
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r, payroll.Period{Start: h.Settings.FiscalStart})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	limit := h.Settings.IncomeLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.ParseInt(v, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
	}

	sum, err := h.Book.Summary(r.Context(), payroll.SummaryOptions{Period: period, IncomeLimit: limit})
	if err != nil {
		h.fail(w, "Failed to summarize shifts", err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(sum))
}

// =============================================================================
// DEV HANDLERS
// =============================================================================

// ResetDatabase clears all data and reseeds the configured workplaces.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.reset(r.Context()); err != nil {
		h.fail(w, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) reset(ctx context.Context) error {
	if err := h.Store.Reset(ctx); err != nil {
		return err
	}
	h.mu.Lock()
	h.currentScenario = ""
	h.mu.Unlock()
	h.Log.Warn("database reset")
	return h.Seed(ctx)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// decodeShift reads a ShiftRequest and resolves patterns. It writes the
// error response itself and reports whether decoding succeeded.
func (h *Handler) decodeShift(w http.ResponseWriter, r *http.Request) (payroll.ShiftInput, bool) {
	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return payroll.ShiftInput{}, false
	}

	if req.Pattern != "" {
		p, ok := h.Book.Patterns()[req.Pattern]
		if !ok {
			writeError(w, http.StatusNotFound, "Unknown shift pattern", shifts.ErrPatternNotFound)
			return payroll.ShiftInput{}, false
		}
		date, err := payroll.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return payroll.ShiftInput{}, false
		}
		in := p.Input(date)
		in.Busy = req.Busy
		in.Memo = req.Memo
		return in, true
	}

	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return payroll.ShiftInput{}, false
	}
	return in, true
}

func parsePeriod(r *http.Request, def payroll.Period) (payroll.Period, error) {
	p := def
	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		from, err := payroll.ParseDate(v)
		if err != nil {
			return payroll.Period{}, err
		}
		p.Start = from
	}
	if v := q.Get("to"); v != "" {
		to, err := payroll.ParseDate(v)
		if err != nil {
			return payroll.Period{}, err
		}
		p.End = to
	}
	return p, nil
}

// fail maps domain errors to HTTP status codes.
func (h *Handler) fail(w http.ResponseWriter, message string, err error) {
	switch {
	case payroll.IsNotFound(err), errors.Is(err, shifts.ErrPatternNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case payroll.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.Log.Error(message, zap.Error(err))
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
