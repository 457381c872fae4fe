/*
Package payroll provides the core payroll reconciliation engine.

PURPOSE:
  This package contains the algorithms that turn a month of free-text
  calendar events into a per-employee payroll report: matching event
  titles against a client roster, filtering sessions by period and
  cancellation status, pricing sessions with per-client revenue splits,
  and validating the resulting totals.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: Calendar owner whose sessions are being billed
  - Client: Roster entry carrying the per-session price split
  - CalendarEvent: One already-fetched calendar entry (transient)
  - PayrollEntry/PayrollReport: The computed output
  - SupervisionConfig: Pseudo-client billing for supervision sessions

DESIGN PRINCIPLES:
  1. Purity: The engine does no I/O. It receives in-memory rosters and
     events and returns values; collaborators handle fetching and export.
  2. Precision: Uses decimal.Decimal for all money to avoid
     floating-point errors in split arithmetic.
  3. Noise tolerance: Calendar data is messy. Unknown clients, blank
     titles, and missing color tags are skipped, never raised as errors.

SEE ALSO:
  - match.go: Title-to-client matching heuristics
  - aggregate.go: Report assembly
  - validate.go: Totals and sign checks
  - store.go: Collaborator interfaces (roster, ledger)
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// EMPLOYEE - Calendar owner being paid
// =============================================================================

type EmployeeID string

// Employee is a practitioner whose calendar is reconciled into payroll.
// Loaded wholesale from the roster source; immutable during a run.
type Employee struct {
	ID               EmployeeID
	Name             string
	Email            string
	CalendarID       string
	SheetName        string
	SupervisionPrice decimal.Decimal
}

// =============================================================================
// CLIENT - Roster entry with price split
// =============================================================================

// Client carries the per-session rates for one client of one employee.
// EmployeeShare + CompanyShare need not equal Price; that is a business
// arrangement, not an invariant the engine enforces.
type Client struct {
	ID            int64
	Name          string
	Price         decimal.Decimal
	EmployeeShare decimal.Decimal
	CompanyShare  decimal.Decimal
	EmployeeID    EmployeeID
}

// =============================================================================
// CALENDAR EVENT - One fetched calendar entry
// =============================================================================

// CalendarEvent is a calendar entry after deserialization by the event
// source. Cancelled and PendingPayment are derived via Classify and must
// never be set from raw API fields directly.
type CalendarEvent struct {
	ID             string
	Title          string
	StartTime      time.Time
	EndTime        time.Time
	ColorID        string
	Cancelled      bool
	PendingPayment bool
	Attendees      []string
}

// =============================================================================
// PERIOD - Billing window
// =============================================================================

// Period is the billing window for one payroll run. Bounds are exclusive
// on both ends: an event starting exactly at Start or End is not billed.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls strictly inside the period.
// An inverted period contains nothing.
func (p Period) Contains(t time.Time) bool {
	return t.After(p.Start) && t.Before(p.End)
}

// =============================================================================
// SUPERVISION - Pseudo-client billing category
// =============================================================================

// SupervisionLabel is the client name used for supervision entries.
const SupervisionLabel = "Εποπτεία (Supervision)"

// DefaultSupervisionKeywords are the title markers that short-circuit
// client matching and route an event to the supervision group.
var DefaultSupervisionKeywords = []string{"Εποπτεία", "Supervision"}

// SupervisionConfig prices supervision sessions. Supervision is billed
// like a client but with its own rates, and the pending-payment rule
// does not apply to it: cancelled supervision is never billed.
type SupervisionConfig struct {
	Enabled       bool
	Price         decimal.Decimal
	EmployeeShare decimal.Decimal
	CompanyShare  decimal.Decimal
	Keywords      []string
}

// =============================================================================
// PAYROLL OUTPUT
// =============================================================================

// PayrollEntry is one client line of a report.
// TotalRevenue = Sessions * Price, and likewise for the two shares,
// exact under decimal arithmetic.
type PayrollEntry struct {
	ClientName       string
	Price            decimal.Decimal
	EmployeeShare    decimal.Decimal
	CompanyShare     decimal.Decimal
	Sessions         int
	TotalRevenue     decimal.Decimal
	EmployeeEarnings decimal.Decimal
	CompanyEarnings  decimal.Decimal
}

// PayrollReport is the immutable result of one aggregation run.
type PayrollReport struct {
	Employee              Employee
	PeriodStart           time.Time
	PeriodEnd             time.Time
	Entries               []PayrollEntry
	TotalSessions         int
	TotalRevenue          decimal.Decimal
	TotalEmployeeEarnings decimal.Decimal
	TotalCompanyEarnings  decimal.Decimal
	GeneratedAt           time.Time
}

// MustDecimal parses s or returns zero. For fixtures and tests.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
