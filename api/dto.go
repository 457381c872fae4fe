/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the engine's domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY:
  Monetary fields are decimal.Decimal and marshal as JSON strings
  ("47.50"), so split arithmetic is never re-rounded by a JSON float.

TIMESTAMPS:
  All timestamps cross the API as RFC 3339 strings. Display formatting
  (dd/MM/yyyy and friends) belongs to the frontend, not this service.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/fkcoding/payroll-engine/payroll"
	"github.com/shopspring/decimal"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CalculateRequest asks for one payroll run.
type CalculateRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"` // RFC 3339
	EndDate    string `json:"end_date"`   // RFC 3339
	Sync       bool   `json:"sync"`       // also upsert to the ledger
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	CalendarID string `json:"calendar_id"`
}

// ClientDTO represents one roster client.
type ClientDTO struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	EmployeeShare decimal.Decimal `json:"employee_share"`
	CompanyShare  decimal.Decimal `json:"company_share"`
}

// SummaryDTO carries the report-level totals.
type SummaryDTO struct {
	TotalSessions    int             `json:"total_sessions"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	EmployeeEarnings decimal.Decimal `json:"employee_earnings"`
	CompanyEarnings  decimal.Decimal `json:"company_earnings"`
}

// EventDetailDTO is one billed (or pending) event inside a breakdown.
type EventDetailDTO struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Status  string `json:"status"` // completed | cancelled | pending_payment
	ColorID string `json:"color_id,omitempty"`
}

// ClientBreakdownDTO is one client line of the report.
type ClientBreakdownDTO struct {
	ClientName       string           `json:"client_name"`
	Price            decimal.Decimal  `json:"price_per_session"`
	EmployeeShare    decimal.Decimal  `json:"employee_share_per_session"`
	CompanyShare     decimal.Decimal  `json:"company_share_per_session"`
	Sessions         int              `json:"sessions"`
	TotalRevenue     decimal.Decimal  `json:"total_revenue"`
	EmployeeEarnings decimal.Decimal  `json:"employee_earnings"`
	CompanyEarnings  decimal.Decimal  `json:"company_earnings"`
	Events           []EventDetailDTO `json:"events,omitempty"`
}

// MatchStatsDTO surfaces grouping statistics for operator visibility.
type MatchStatsDTO struct {
	Matched        int      `json:"matched"`
	Unmatched      int      `json:"unmatched"`
	Cancelled      int      `json:"cancelled"`
	PendingPayment int      `json:"pending_payment"`
	Ambiguous      []string `json:"ambiguous_titles,omitempty"`
}

// PayrollDTO is the full payroll report as returned to clients.
type PayrollDTO struct {
	Employee    EmployeeDTO              `json:"employee"`
	PeriodStart string                   `json:"period_start"`
	PeriodEnd   string                   `json:"period_end"`
	Summary     SummaryDTO               `json:"summary"`
	Breakdown   []ClientBreakdownDTO     `json:"client_breakdown"`
	MatchStats  MatchStatsDTO            `json:"match_stats"`
	Validation  payroll.ValidationResult `json:"validation"`
	GeneratedAt string                   `json:"generated_at"`
	Synced      bool                     `json:"synced"`
}

// CalculateResponse wraps a cached payroll with its opaque cache ID.
type CalculateResponse struct {
	ID      string     `json:"id"`
	Payroll PayrollDTO `json:"payroll"`
}

// SyncResponse reports one ledger upsert.
type SyncResponse struct {
	Status     string `json:"status"`
	Mode       string `json:"mode"` // inserted | updated
	Employee   string `json:"employee_name"`
	DetailRows int    `json:"detail_rows"`
}

// CheckSyncResponse answers an existence probe before a sync.
type CheckSyncResponse struct {
	Exists     bool   `json:"exists"`
	Action     string `json:"action"` // insert | update
	Employee   string `json:"employee_name"`
	DetailRows int    `json:"existing_detail_rows"`
}

// PeriodDTO is one predefined billing window.
type PeriodDTO struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEmployeeDTO(e payroll.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:         string(e.ID),
		Name:       e.Name,
		Email:      e.Email,
		CalendarID: e.CalendarID,
	}
}

func toClientDTO(c payroll.Client) ClientDTO {
	return ClientDTO{
		Name:          c.Name,
		Price:         c.Price,
		EmployeeShare: c.EmployeeShare,
		CompanyShare:  c.CompanyShare,
	}
}

func eventStatus(e payroll.CalendarEvent) string {
	switch {
	case e.Cancelled && e.PendingPayment:
		return "pending_payment"
	case e.Cancelled:
		return "cancelled"
	default:
		return "completed"
	}
}

// toPayrollDTO flattens a report plus its grouping context into the
// response shape. clientEvents may be nil for reports rebuilt from the
// cache without event detail.
func toPayrollDTO(report payroll.PayrollReport, clientEvents map[string][]payroll.CalendarEvent, stats payroll.MatchStats, validation payroll.ValidationResult, synced bool) PayrollDTO {
	period := payroll.Period{Start: report.PeriodStart, End: report.PeriodEnd}

	breakdown := make([]ClientBreakdownDTO, 0, len(report.Entries))
	for _, entry := range report.Entries {
		dto := ClientBreakdownDTO{
			ClientName:       entry.ClientName,
			Price:            entry.Price,
			EmployeeShare:    entry.EmployeeShare,
			CompanyShare:     entry.CompanyShare,
			Sessions:         entry.Sessions,
			TotalRevenue:     entry.TotalRevenue,
			EmployeeEarnings: entry.EmployeeEarnings,
			CompanyEarnings:  entry.CompanyEarnings,
		}
		for _, event := range clientEvents[entry.ClientName] {
			if !period.Contains(event.StartTime) {
				continue
			}
			dto.Events = append(dto.Events, EventDetailDTO{
				Start:   event.StartTime.Format(time.RFC3339),
				End:     event.EndTime.Format(time.RFC3339),
				Status:  eventStatus(event),
				ColorID: event.ColorID,
			})
		}
		breakdown = append(breakdown, dto)
	}

	statsDTO := MatchStatsDTO{
		Matched:        stats.Matched,
		Unmatched:      stats.Unmatched,
		Cancelled:      stats.Cancelled,
		PendingPayment: stats.PendingPayment,
	}
	for _, a := range stats.Ambiguities {
		statsDTO.Ambiguous = append(statsDTO.Ambiguous, a.Title)
	}

	return PayrollDTO{
		Employee:    toEmployeeDTO(report.Employee),
		PeriodStart: report.PeriodStart.Format(time.RFC3339),
		PeriodEnd:   report.PeriodEnd.Format(time.RFC3339),
		Summary: SummaryDTO{
			TotalSessions:    report.TotalSessions,
			TotalRevenue:     report.TotalRevenue,
			EmployeeEarnings: report.TotalEmployeeEarnings,
			CompanyEarnings:  report.TotalCompanyEarnings,
		},
		Breakdown:   breakdown,
		MatchStats:  statsDTO,
		Validation:  validation,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Synced:      synced,
	}
}
