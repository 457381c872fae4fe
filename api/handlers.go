/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the payroll engine via REST. Handles HTTP request/response and
  JSON serialization, and delegates all computation to the payroll
  package. Collaborators (roster store, event source, report cache,
  ledger) are injected, so handlers stay thin and testable.

ENDPOINTS:
  Payroll:
    POST /api/payroll/calculate       Run one payroll calculation
    GET  /api/payroll/{id}            Fetch a cached report
    POST /api/payroll/{id}/sync       Upsert a cached report to the ledger
    GET  /api/payroll/{id}/check-sync Probe ledger before syncing
    GET  /api/payroll/periods         Common period presets
    GET  /api/payroll/default-period  Default two-week window

  Roster:
    GET  /api/employees               List employees
    GET  /api/employees/{id}          Employee details
    GET  /api/employees/{id}/clients  Employee's client price list

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Unparseable request (bad JSON, bad timestamps)
  - 404: Unknown employee or report ID
  - 409: Sync refused because the report failed validation
  - 500: Collaborator failures
  An inverted or empty period is NOT an error: it yields an empty
  report, because calendar windows come from noisy operator input.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fkcoding/payroll-engine/cache"
	"github.com/fkcoding/payroll-engine/calendar"
	"github.com/fkcoding/payroll-engine/payroll"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Roster  payroll.RosterStore
	Events  calendar.EventSource
	Cache   *cache.Memory
	Ledger  payroll.ReportLedger
	Matcher payroll.Matcher
	Logger  *slog.Logger
}

// NewHandler wires a handler with the default matcher configuration.
func NewHandler(roster payroll.RosterStore, events calendar.EventSource, reportCache *cache.Memory, ledger payroll.ReportLedger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Roster:  roster,
		Events:  events,
		Cache:   reportCache,
		Ledger:  ledger,
		Matcher: payroll.NewMatcher(payroll.DefaultSupervisionKeywords...),
		Logger:  logger,
	}
}

// supervisionFor derives the supervision billing config from the
// employee record. Supervision pays out fully to the employee.
func supervisionFor(employee payroll.Employee) *payroll.SupervisionConfig {
	if !employee.SupervisionPrice.IsPositive() {
		return nil
	}
	return &payroll.SupervisionConfig{
		Enabled:       true,
		Price:         employee.SupervisionPrice,
		EmployeeShare: employee.SupervisionPrice,
		CompanyShare:  decimal.Zero,
		Keywords:      payroll.DefaultSupervisionKeywords,
	}
}

// =============================================================================
// PAYROLL ENDPOINTS
// =============================================================================

// CalculatePayroll runs one payroll calculation and caches the result.
// POST /api/payroll/calculate
func (h *Handler) CalculatePayroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date", err)
		return
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date", err)
		return
	}

	employee, err := h.Roster.GetEmployee(ctx, payroll.EmployeeID(req.EmployeeID))
	if errors.Is(err, payroll.ErrEmployeeNotFound) {
		writeError(w, http.StatusNotFound, "Employee not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}

	clients, err := h.Roster.ClientsForEmployee(ctx, employee.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load clients", err)
		return
	}

	events, err := h.Events.EventsForPeriod(ctx, employee.CalendarID, startDate, endDate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch calendar events", err)
		return
	}

	clientNames := make([]string, len(clients))
	for i, c := range clients {
		clientNames[i] = c.Name
	}

	groups, stats := h.Matcher.GroupByClient(events, clientNames, h.Logger)
	period := payroll.Period{Start: startDate, End: endDate}
	report := payroll.Aggregate(employee, clients, groups, period, supervisionFor(employee))
	validation := payroll.Validate(report)

	h.Logger.Info("payroll calculated",
		"employee", employee.ID,
		"entries", len(report.Entries),
		"sessions", report.TotalSessions,
		"matched", stats.Matched,
		"unmatched", stats.Unmatched,
		"valid", validation.Valid)

	synced := false
	if req.Sync && validation.Valid {
		if _, err := h.Ledger.Upsert(ctx, report); err != nil {
			h.Logger.Error("ledger sync failed", "employee", employee.ID, "error", err)
		} else {
			synced = true
		}
	}

	id := h.Cache.Store(report)
	writeJSON(w, http.StatusOK, CalculateResponse{
		ID:      id,
		Payroll: toPayrollDTO(report, groups, stats, validation, synced),
	})
}

// GetPayroll returns a cached report.
// GET /api/payroll/{id}
func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	cached, ok := h.Cache.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Payroll report not found", nil)
		return
	}

	// Validation is pure; recomputing beats caching a second copy.
	validation := payroll.Validate(cached.Report)
	writeJSON(w, http.StatusOK, CalculateResponse{
		ID:      cached.ID,
		Payroll: toPayrollDTO(cached.Report, nil, payroll.MatchStats{}, validation, false),
	})
}

// SyncPayroll upserts a cached report to the ledger.
// POST /api/payroll/{id}/sync
func (h *Handler) SyncPayroll(w http.ResponseWriter, r *http.Request) {
	cached, ok := h.Cache.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Payroll report not found", nil)
		return
	}

	if validation := payroll.Validate(cached.Report); !validation.Valid {
		writeError(w, http.StatusConflict,
			"Report failed validation, sync refused",
			errors.New(validation.ErrorType+": "+validation.ErrorDetails))
		return
	}

	result, err := h.Ledger.Upsert(r.Context(), cached.Report)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Ledger sync failed", err)
		return
	}

	writeJSON(w, http.StatusOK, SyncResponse{
		Status:     "success",
		Mode:       string(result.Mode),
		Employee:   cached.Report.Employee.Name,
		DetailRows: result.DetailRows,
	})
}

// CheckSync reports whether a ledger row already exists for the cached
// report's employee+period, for confirmation dialogs.
// GET /api/payroll/{id}/check-sync
func (h *Handler) CheckSync(w http.ResponseWriter, r *http.Request) {
	cached, ok := h.Cache.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Payroll report not found", nil)
		return
	}

	report := cached.Report
	existing, err := h.Ledger.Find(r.Context(), report.Employee.ID, report.PeriodStart, report.PeriodEnd)
	if errors.Is(err, payroll.ErrReportNotFound) {
		writeJSON(w, http.StatusOK, CheckSyncResponse{
			Exists:   false,
			Action:   "insert",
			Employee: report.Employee.Name,
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Ledger probe failed", err)
		return
	}

	writeJSON(w, http.StatusOK, CheckSyncResponse{
		Exists:     true,
		Action:     "update",
		Employee:   report.Employee.Name,
		DetailRows: len(existing.Entries),
	})
}

// ListPeriods returns the common billing window presets.
// GET /api/payroll/periods
func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := startOfMonth.AddDate(0, -1, 0)
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Monday-based week
	}
	startOfWeek := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(weekday - 1))

	periods := []PeriodDTO{
		{
			Name:      "Current Month",
			StartDate: startOfMonth.Format(time.RFC3339),
			EndDate:   startOfMonth.AddDate(0, 1, 0).Format(time.RFC3339),
		},
		{
			Name:      "Previous Month",
			StartDate: prevMonthStart.Format(time.RFC3339),
			EndDate:   startOfMonth.Format(time.RFC3339),
		},
		{
			Name:      "Last 30 Days",
			StartDate: now.AddDate(0, 0, -30).Format(time.RFC3339),
			EndDate:   now.Format(time.RFC3339),
		},
		{
			Name:      "Current Week",
			StartDate: startOfWeek.Format(time.RFC3339),
			EndDate:   startOfWeek.AddDate(0, 0, 7).Format(time.RFC3339),
		},
	}
	writeJSON(w, http.StatusOK, periods)
}

// DefaultPeriod returns the default two-week window.
// GET /api/payroll/default-period
func (h *Handler) DefaultPeriod(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, http.StatusOK, PeriodDTO{
		Name:      "Last Two Weeks",
		StartDate: now.AddDate(0, 0, -14).Format(time.RFC3339),
		EndDate:   now.Format(time.RFC3339),
	})
}

// =============================================================================
// ROSTER ENDPOINTS
// =============================================================================

// ListEmployees returns all employees.
// GET /api/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Roster.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Roster.GetEmployee(r.Context(), payroll.EmployeeID(chi.URLParam(r, "id")))
	if errors.Is(err, payroll.ErrEmployeeNotFound) {
		writeError(w, http.StatusNotFound, "Employee not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(employee))
}

// ListClients returns an employee's client price list in roster order.
// GET /api/employees/{id}/clients
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	id := payroll.EmployeeID(chi.URLParam(r, "id"))
	if _, err := h.Roster.GetEmployee(r.Context(), id); errors.Is(err, payroll.ErrEmployeeNotFound) {
		writeError(w, http.StatusNotFound, "Employee not found", err)
		return
	}

	clients, err := h.Roster.ClientsForEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list clients", err)
		return
	}

	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = toClientDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

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
