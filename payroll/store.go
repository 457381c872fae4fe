/*
store.go - Collaborator interfaces for roster and ledger persistence

PURPOSE:
  The engine itself does no I/O. These interfaces define the contracts
  with the collaborators that do: the roster source handing in clean
  Employee/Client records, and the ledger that receives finished reports
  with upsert semantics. Concrete implementations live in store/sqlite;
  tests use in-memory fakes.

UPSERT CONTRACT:
  The ledger keys reports by (employee, period start, period end). A
  second sync of the same employee+period replaces the previous summary
  row and its detail rows; it never duplicates them. Replacement is
  atomic per report.
*/
package payroll

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrEmployeeNotFound is returned when a referenced employee does
	// not exist in the roster.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrReportNotFound is returned when no ledger row exists for an
	// employee+period.
	ErrReportNotFound = errors.New("payroll report not found")
)

// RosterStore supplies employees and their client price lists.
// The roster is loaded wholesale by an external import and treated as
// immutable during a payroll run.
type RosterStore interface {
	ListEmployees(ctx context.Context) ([]Employee, error)

	// GetEmployee returns ErrEmployeeNotFound for unknown IDs.
	GetEmployee(ctx context.Context, id EmployeeID) (Employee, error)

	// ClientsForEmployee returns the client list in roster order.
	// An employee with no clients yields an empty slice, not an error.
	ClientsForEmployee(ctx context.Context, id EmployeeID) ([]Client, error)

	// ReplaceRoster atomically swaps the full roster contents.
	ReplaceRoster(ctx context.Context, employees []Employee, clients []Client) error
}

// SyncMode reports what an upsert did.
type SyncMode string

const (
	SyncInserted SyncMode = "inserted"
	SyncUpdated  SyncMode = "updated"
)

// SyncResult summarizes one ledger upsert.
type SyncResult struct {
	Mode       SyncMode
	DetailRows int
}

// ReportLedger persists finished payroll reports with upsert semantics.
type ReportLedger interface {
	// Upsert writes one summary row plus one detail row per entry,
	// replacing any previous rows for the same employee+period.
	Upsert(ctx context.Context, report PayrollReport) (SyncResult, error)

	// Find returns the stored report for an employee+period, or
	// ErrReportNotFound.
	Find(ctx context.Context, employeeID EmployeeID, periodStart, periodEnd time.Time) (PayrollReport, error)
}
