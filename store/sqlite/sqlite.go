/*
Package sqlite provides the SQLite-backed roster store and payroll ledger.

PURPOSE:
  Implements the engine's two persistence interfaces:
  payroll.RosterStore:  employees and their client price lists, loaded
                        wholesale by an external import
  payroll.ReportLedger: finished payroll reports archived with upsert
                        semantics, one summary row + N detail rows per
                        report, keyed (employee, period start, period end)

UPSERT ENFORCEMENT:
  A UNIQUE index on (employee_id, period_start, period_end) guarantees
  at most one archived report per employee+period. Re-syncing replaces
  the summary and detail rows inside one transaction; partial replaces
  cannot be observed.

DECIMAL STORAGE:
  Monetary values are stored as TEXT in decimal string form and parsed
  back with shopspring/decimal, never as REAL, so split arithmetic
  survives the round trip exactly.

WAL MODE:
  Opened with WAL for better concurrency: readers don't block, single
  writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - payroll/store.go: Interface definitions
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fkcoding/payroll-engine/payroll"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// Store implements payroll.RosterStore and payroll.ReportLedger.
type Store struct {
	db *sql.DB
}

// New creates a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		calendar_id TEXT NOT NULL,
		sheet_name TEXT NOT NULL DEFAULT '',
		supervision_price TEXT NOT NULL DEFAULT '0'
	);

	CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		price TEXT NOT NULL,
		employee_share TEXT NOT NULL,
		company_share TEXT NOT NULL,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		position INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_clients_employee ON clients(employee_id, position);

	CREATE TABLE IF NOT EXISTS payroll_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		total_sessions INTEGER NOT NULL,
		total_revenue TEXT NOT NULL,
		total_employee_earnings TEXT NOT NULL,
		total_company_earnings TEXT NOT NULL,
		generated_at TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_reports_employee_period
		ON payroll_reports(employee_id, period_start, period_end);

	CREATE TABLE IF NOT EXISTS payroll_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id INTEGER NOT NULL REFERENCES payroll_reports(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		client_name TEXT NOT NULL,
		price TEXT NOT NULL,
		employee_share TEXT NOT NULL,
		company_share TEXT NOT NULL,
		sessions INTEGER NOT NULL,
		total_revenue TEXT NOT NULL,
		employee_earnings TEXT NOT NULL,
		company_earnings TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_report ON payroll_entries(report_id, position);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ROSTER STORE
// =============================================================================

// ListEmployees returns all employees.
func (s *Store) ListEmployees(ctx context.Context) ([]payroll.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, calendar_id, sheet_name, supervision_price
		 FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []payroll.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// GetEmployee returns one employee by ID.
func (s *Store) GetEmployee(ctx context.Context, id payroll.EmployeeID) (payroll.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, calendar_id, sheet_name, supervision_price
		 FROM employees WHERE id = ?`, string(id))

	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return payroll.Employee{}, payroll.ErrEmployeeNotFound
	}
	if err != nil {
		return payroll.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// ClientsForEmployee returns the employee's clients in roster order.
func (s *Store) ClientsForEmployee(ctx context.Context, id payroll.EmployeeID) ([]payroll.Client, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, price, employee_share, company_share, employee_id
		 FROM clients WHERE employee_id = ? ORDER BY position`, string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []payroll.Client
	for rows.Next() {
		var c payroll.Client
		var price, employeeShare, companyShare, employeeID string
		if err := rows.Scan(&c.ID, &c.Name, &price, &employeeShare, &companyShare, &employeeID); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		c.Price = mustScanDecimal(price)
		c.EmployeeShare = mustScanDecimal(employeeShare)
		c.CompanyShare = mustScanDecimal(companyShare)
		c.EmployeeID = payroll.EmployeeID(employeeID)
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// ReplaceRoster atomically swaps the full roster contents.
// Client positions follow slice order, preserving roster iteration
// order for matching and aggregation.
func (s *Store) ReplaceRoster(ctx context.Context, employees []payroll.Employee, clients []payroll.Client) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin roster replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clients`); err != nil {
		return fmt.Errorf("failed to clear clients: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM employees`); err != nil {
		return fmt.Errorf("failed to clear employees: %w", err)
	}

	for _, e := range employees {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO employees (id, name, email, calendar_id, sheet_name, supervision_price)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			string(e.ID), e.Name, e.Email, e.CalendarID, e.SheetName, e.SupervisionPrice.String())
		if err != nil {
			return fmt.Errorf("failed to insert employee %s: %w", e.ID, err)
		}
	}

	for i, c := range clients {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO clients (name, price, employee_share, company_share, employee_id, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			c.Name, c.Price.String(), c.EmployeeShare.String(), c.CompanyShare.String(),
			string(c.EmployeeID), i)
		if err != nil {
			return fmt.Errorf("failed to insert client %s: %w", c.Name, err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// REPORT LEDGER
// =============================================================================

// Upsert archives the report, replacing any previous report for the
// same employee+period. The replace is atomic.
func (s *Store) Upsert(ctx context.Context, report payroll.PayrollReport) (payroll.SyncResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return payroll.SyncResult{}, fmt.Errorf("failed to begin upsert: %w", err)
	}
	defer tx.Rollback()

	periodStart := formatTime(report.PeriodStart)
	periodEnd := formatTime(report.PeriodEnd)

	mode := payroll.SyncInserted
	var existingID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM payroll_reports
		 WHERE employee_id = ? AND period_start = ? AND period_end = ?`,
		string(report.Employee.ID), periodStart, periodEnd).Scan(&existingID)
	switch {
	case err == nil:
		mode = payroll.SyncUpdated
		if _, err := tx.ExecContext(ctx, `DELETE FROM payroll_entries WHERE report_id = ?`, existingID); err != nil {
			return payroll.SyncResult{}, fmt.Errorf("failed to clear detail rows: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM payroll_reports WHERE id = ?`, existingID); err != nil {
			return payroll.SyncResult{}, fmt.Errorf("failed to clear summary row: %w", err)
		}
	case err != sql.ErrNoRows:
		return payroll.SyncResult{}, fmt.Errorf("failed to probe existing report: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO payroll_reports
		 (employee_id, employee_name, period_start, period_end, total_sessions,
		  total_revenue, total_employee_earnings, total_company_earnings, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(report.Employee.ID), report.Employee.Name, periodStart, periodEnd,
		report.TotalSessions, report.TotalRevenue.String(),
		report.TotalEmployeeEarnings.String(), report.TotalCompanyEarnings.String(),
		formatTime(report.GeneratedAt))
	if err != nil {
		return payroll.SyncResult{}, fmt.Errorf("failed to insert summary row: %w", err)
	}
	reportID, err := res.LastInsertId()
	if err != nil {
		return payroll.SyncResult{}, fmt.Errorf("failed to read report id: %w", err)
	}

	for i, entry := range report.Entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO payroll_entries
			 (report_id, position, client_name, price, employee_share, company_share,
			  sessions, total_revenue, employee_earnings, company_earnings)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			reportID, i, entry.ClientName, entry.Price.String(),
			entry.EmployeeShare.String(), entry.CompanyShare.String(), entry.Sessions,
			entry.TotalRevenue.String(), entry.EmployeeEarnings.String(), entry.CompanyEarnings.String())
		if err != nil {
			return payroll.SyncResult{}, fmt.Errorf("failed to insert detail row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return payroll.SyncResult{}, fmt.Errorf("failed to commit upsert: %w", err)
	}
	return payroll.SyncResult{Mode: mode, DetailRows: len(report.Entries)}, nil
}

// Find returns the archived report for an employee+period.
func (s *Store) Find(ctx context.Context, employeeID payroll.EmployeeID, periodStart, periodEnd time.Time) (payroll.PayrollReport, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, employee_id, employee_name, total_sessions, total_revenue,
		        total_employee_earnings, total_company_earnings, generated_at
		 FROM payroll_reports
		 WHERE employee_id = ? AND period_start = ? AND period_end = ?`,
		string(employeeID), formatTime(periodStart), formatTime(periodEnd))

	var reportID int64
	var report payroll.PayrollReport
	var empID, totalRevenue, totalEmployee, totalCompany, generatedAt string
	err := row.Scan(&reportID, &empID, &report.Employee.Name, &report.TotalSessions,
		&totalRevenue, &totalEmployee, &totalCompany, &generatedAt)
	if err == sql.ErrNoRows {
		return payroll.PayrollReport{}, payroll.ErrReportNotFound
	}
	if err != nil {
		return payroll.PayrollReport{}, fmt.Errorf("failed to find report: %w", err)
	}

	report.Employee.ID = payroll.EmployeeID(empID)
	report.PeriodStart = periodStart
	report.PeriodEnd = periodEnd
	report.TotalRevenue = mustScanDecimal(totalRevenue)
	report.TotalEmployeeEarnings = mustScanDecimal(totalEmployee)
	report.TotalCompanyEarnings = mustScanDecimal(totalCompany)
	report.GeneratedAt = parseTime(generatedAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT client_name, price, employee_share, company_share, sessions,
		        total_revenue, employee_earnings, company_earnings
		 FROM payroll_entries WHERE report_id = ? ORDER BY position`, reportID)
	if err != nil {
		return payroll.PayrollReport{}, fmt.Errorf("failed to load detail rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e payroll.PayrollEntry
		var price, employeeShare, companyShare, revenue, employeeEarnings, companyEarnings string
		if err := rows.Scan(&e.ClientName, &price, &employeeShare, &companyShare,
			&e.Sessions, &revenue, &employeeEarnings, &companyEarnings); err != nil {
			return payroll.PayrollReport{}, fmt.Errorf("failed to scan detail row: %w", err)
		}
		e.Price = mustScanDecimal(price)
		e.EmployeeShare = mustScanDecimal(employeeShare)
		e.CompanyShare = mustScanDecimal(companyShare)
		e.TotalRevenue = mustScanDecimal(revenue)
		e.EmployeeEarnings = mustScanDecimal(employeeEarnings)
		e.CompanyEarnings = mustScanDecimal(companyEarnings)
		report.Entries = append(report.Entries, e)
	}
	return report, rows.Err()
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (payroll.Employee, error) {
	var e payroll.Employee
	var id, supervisionPrice string
	err := row.Scan(&id, &e.Name, &e.Email, &e.CalendarID, &e.SheetName, &supervisionPrice)
	if err != nil {
		return payroll.Employee{}, err
	}
	e.ID = payroll.EmployeeID(id)
	e.SupervisionPrice = mustScanDecimal(supervisionPrice)
	return e, nil
}

func mustScanDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
