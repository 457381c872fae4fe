/*
validate.go - Advisory validation gate for payroll reports

PURPOSE:
  Recomputes report totals from the line items and checks for negative
  figures before a report leaves the engine for export or ledger sync.
  The gate never mutates the report and never fails the process; it
  returns a structured result and callers decide whether to block the
  downstream sync, log, or surface the failure to an operator.

CHECKS (in order, first failing check short-circuits):
  1. Totals match: integer equality for sessions; the three monetary
     totals within an absolute tolerance of 0.01, to absorb drift in
     reports reconstructed from external representations. Every
     mismatched field is listed.
  2. No negatives: every count and monetary field at report and entry
     level must be >= 0. Every offending field is listed.
*/
package payroll

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation failure types.
const (
	ErrTypeTotalsMismatch = "Totals Mismatch"
	ErrTypeNegativeValues = "Negative Values Detected"
)

// totalsTolerance is the absolute tolerance for comparing monetary
// totals against their recomputed sums.
var totalsTolerance = decimal.NewFromFloat(0.01)

// ValidationResult is the outcome of one validation pass.
type ValidationResult struct {
	Valid        bool   `json:"valid"`
	ErrorType    string `json:"error_type,omitempty"`
	ErrorDetails string `json:"error_details,omitempty"`
}

func validationOK() ValidationResult {
	return ValidationResult{Valid: true}
}

func validationFailure(errorType string, errors []string) ValidationResult {
	return ValidationResult{
		Valid:        false,
		ErrorType:    errorType,
		ErrorDetails: strings.Join(errors, "\n"),
	}
}

// Validate runs the gate over a report.
func Validate(report PayrollReport) ValidationResult {
	if result := validateTotalsMatch(report); !result.Valid {
		return result
	}
	if result := validateNoNegatives(report); !result.Valid {
		return result
	}
	return validationOK()
}

func validateTotalsMatch(report PayrollReport) ValidationResult {
	sessions := 0
	revenue := decimal.Zero
	employeeEarnings := decimal.Zero
	companyEarnings := decimal.Zero
	for _, entry := range report.Entries {
		sessions += entry.Sessions
		revenue = revenue.Add(entry.TotalRevenue)
		employeeEarnings = employeeEarnings.Add(entry.EmployeeEarnings)
		companyEarnings = companyEarnings.Add(entry.CompanyEarnings)
	}

	var errors []string
	if sessions != report.TotalSessions {
		errors = append(errors, fmt.Sprintf("Sessions mismatch: Master=%d, Sum=%d", report.TotalSessions, sessions))
	}
	if !withinTolerance(revenue, report.TotalRevenue) {
		errors = append(errors, fmt.Sprintf("Revenue mismatch: Master=€%s, Sum=€%s", report.TotalRevenue, revenue))
	}
	if !withinTolerance(employeeEarnings, report.TotalEmployeeEarnings) {
		errors = append(errors, fmt.Sprintf("Employee earnings mismatch: Master=€%s, Sum=€%s", report.TotalEmployeeEarnings, employeeEarnings))
	}
	if !withinTolerance(companyEarnings, report.TotalCompanyEarnings) {
		errors = append(errors, fmt.Sprintf("Company earnings mismatch: Master=€%s, Sum=€%s", report.TotalCompanyEarnings, companyEarnings))
	}

	if len(errors) > 0 {
		return validationFailure(ErrTypeTotalsMismatch, errors)
	}
	return validationOK()
}

func validateNoNegatives(report PayrollReport) ValidationResult {
	var errors []string

	if report.TotalSessions < 0 {
		errors = append(errors, fmt.Sprintf("Total sessions is negative: %d", report.TotalSessions))
	}
	if report.TotalRevenue.IsNegative() {
		errors = append(errors, fmt.Sprintf("Total revenue is negative: €%s", report.TotalRevenue))
	}
	if report.TotalEmployeeEarnings.IsNegative() {
		errors = append(errors, fmt.Sprintf("Employee earnings is negative: €%s", report.TotalEmployeeEarnings))
	}
	if report.TotalCompanyEarnings.IsNegative() {
		errors = append(errors, fmt.Sprintf("Company earnings is negative: €%s", report.TotalCompanyEarnings))
	}

	for _, entry := range report.Entries {
		if entry.Sessions < 0 {
			errors = append(errors, fmt.Sprintf("Client '%s' has negative sessions: %d", entry.ClientName, entry.Sessions))
		}
		if entry.TotalRevenue.IsNegative() {
			errors = append(errors, fmt.Sprintf("Client '%s' has negative revenue: €%s", entry.ClientName, entry.TotalRevenue))
		}
		if entry.EmployeeEarnings.IsNegative() {
			errors = append(errors, fmt.Sprintf("Client '%s' has negative employee earnings: €%s", entry.ClientName, entry.EmployeeEarnings))
		}
		if entry.CompanyEarnings.IsNegative() {
			errors = append(errors, fmt.Sprintf("Client '%s' has negative company earnings: €%s", entry.ClientName, entry.CompanyEarnings))
		}
	}

	if len(errors) > 0 {
		return validationFailure(ErrTypeNegativeValues, errors)
	}
	return validationOK()
}

func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(totalsTolerance)
}
