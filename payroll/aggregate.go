/*
aggregate.go - Payroll report assembly

PURPOSE:
  Turns grouped, classified events into the priced report: one entry per
  client with eligible sessions in the period, an optional supervision
  line per configured keyword, and report-level totals summed from the
  entries.

ORDERING:
  Entries appear in roster order, then supervision keywords in
  configured order. The input map carries no order of its own, so the
  roster drives iteration to keep reports deterministic.

NOISE RULES:
  - A group keyed by a name not in the roster yields no entry (client
    removed from the roster mid-month, for example).
  - A client with zero eligible sessions yields no entry.
  - Supervision groups are filtered with the stricter completed-only
    rule; the grey-tag compensation convention applies to clients only.
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate builds the payroll report for one employee and period.
// clientEvents maps client names (and supervision keywords) to their
// attributed events, as produced by GroupByClient. supervision may be
// nil or disabled, in which case supervision-keyword groups are ignored.
func Aggregate(employee Employee, clients []Client, clientEvents map[string][]CalendarEvent, period Period, supervision *SupervisionConfig) PayrollReport {
	report := PayrollReport{
		Employee:    employee,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		GeneratedAt: time.Now(),
	}

	supervisionKeys := make(map[string]bool)
	if supervision != nil {
		for _, k := range supervision.Keywords {
			supervisionKeys[k] = true
		}
	}

	for _, client := range clients {
		if supervisionKeys[client.Name] {
			continue // billed as supervision below
		}

		eligible := FilterBillable(clientEvents[client.Name], period)
		if len(eligible) == 0 {
			continue
		}

		addEntry(&report, PayrollEntry{
			ClientName:    client.Name,
			Price:         client.Price,
			EmployeeShare: client.EmployeeShare,
			CompanyShare:  client.CompanyShare,
			Sessions:      len(eligible),
		})
	}

	if supervision != nil && supervision.Enabled {
		for _, keyword := range supervision.Keywords {
			eligible := FilterCompleted(clientEvents[keyword], period)
			if len(eligible) == 0 {
				continue
			}

			addEntry(&report, PayrollEntry{
				ClientName:    SupervisionLabel,
				Price:         supervision.Price,
				EmployeeShare: supervision.EmployeeShare,
				CompanyShare:  supervision.CompanyShare,
				Sessions:      len(eligible),
			})
		}
	}

	return report
}

// addEntry prices the entry from its session count and folds it into
// the report totals.
func addEntry(report *PayrollReport, entry PayrollEntry) {
	sessions := decimal.NewFromInt(int64(entry.Sessions))
	entry.TotalRevenue = entry.Price.Mul(sessions)
	entry.EmployeeEarnings = entry.EmployeeShare.Mul(sessions)
	entry.CompanyEarnings = entry.CompanyShare.Mul(sessions)

	report.Entries = append(report.Entries, entry)
	report.TotalSessions += entry.Sessions
	report.TotalRevenue = report.TotalRevenue.Add(entry.TotalRevenue)
	report.TotalEmployeeEarnings = report.TotalEmployeeEarnings.Add(entry.EmployeeEarnings)
	report.TotalCompanyEarnings = report.TotalCompanyEarnings.Add(entry.CompanyEarnings)
}
