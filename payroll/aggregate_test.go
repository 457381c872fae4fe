package payroll_test

import (
	"testing"
	"time"

	"github.com/fkcoding/payroll-engine/payroll"
	"github.com/shopspring/decimal"
)

func testEmployee() payroll.Employee {
	return payroll.Employee{
		ID:         "emp-1",
		Name:       "Γιώργος Αντωνίου",
		Email:      "giorgos@example.com",
		CalendarID: "giorgos@group.calendar.google.com",
	}
}

func testClient(name, price, employeeShare, companyShare string) payroll.Client {
	return payroll.Client{
		Name:          name,
		Price:         payroll.MustDecimal(price),
		EmployeeShare: payroll.MustDecimal(employeeShare),
		CompanyShare:  payroll.MustDecimal(companyShare),
		EmployeeID:    "emp-1",
	}
}

func sessionsFor(title string, period payroll.Period, n int) []payroll.CalendarEvent {
	var events []payroll.CalendarEvent
	for i := 0; i < n; i++ {
		events = append(events, titledEvent(title, period.Start.Add(time.Duration(i+1)*time.Hour)))
	}
	return events
}

func TestAggregate_SplitArithmetic(t *testing.T) {
	// GIVEN: Three sessions at 50.00 split 35.00/15.00
	// THEN: Entry figures are exact session-count multiples

	period := april2025()
	clients := []payroll.Client{testClient("Μαρία Κωνσταντίνου", "50.00", "35.00", "15.00")}
	groups := map[string][]payroll.CalendarEvent{
		"Μαρία Κωνσταντίνου": sessionsFor("Μαρία Κωνσταντίνου", period, 3),
	}

	report := payroll.Aggregate(testEmployee(), clients, groups, period, nil)

	if len(report.Entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(report.Entries))
	}
	entry := report.Entries[0]
	if entry.Sessions != 3 {
		t.Errorf("sessions = %d, want 3", entry.Sessions)
	}
	if !entry.TotalRevenue.Equal(payroll.MustDecimal("150.00")) {
		t.Errorf("revenue = %s, want 150.00", entry.TotalRevenue)
	}
	if !entry.EmployeeEarnings.Equal(payroll.MustDecimal("105.00")) {
		t.Errorf("employee earnings = %s, want 105.00", entry.EmployeeEarnings)
	}
	if !entry.CompanyEarnings.Equal(payroll.MustDecimal("45.00")) {
		t.Errorf("company earnings = %s, want 45.00", entry.CompanyEarnings)
	}
}

func TestAggregate_EntryTotalsProperty(t *testing.T) {
	// For every entry: total == sessions * rate, exactly.
	period := april2025()
	clients := []payroll.Client{
		testClient("Μαρία Κωνσταντίνου", "50.00", "35.00", "15.00"),
		testClient("Ελένη Παπαδοπούλου", "47.50", "33.25", "14.25"),
	}
	groups := map[string][]payroll.CalendarEvent{
		"Μαρία Κωνσταντίνου": sessionsFor("Μαρία Κωνσταντίνου", period, 4),
		"Ελένη Παπαδοπούλου": sessionsFor("Ελένη Παπαδοπούλου", period, 7),
	}

	report := payroll.Aggregate(testEmployee(), clients, groups, period, nil)

	for _, e := range report.Entries {
		n := decimal.NewFromInt(int64(e.Sessions))
		if !e.TotalRevenue.Equal(e.Price.Mul(n)) ||
			!e.EmployeeEarnings.Equal(e.EmployeeShare.Mul(n)) ||
			!e.CompanyEarnings.Equal(e.CompanyShare.Mul(n)) {
			t.Errorf("entry %q breaks sessions*rate invariant: %+v", e.ClientName, e)
		}
	}
}

func TestAggregate_SkipsUnknownClientsAndEmptyGroups(t *testing.T) {
	// GIVEN: A group for a client no longer in the roster, and a roster
	//        client with only out-of-period events
	// THEN: Neither produces an entry, and nothing errors

	period := april2025()
	clients := []payroll.Client{testClient("Μαρία Κωνσταντίνου", "50.00", "35.00", "15.00")}
	groups := map[string][]payroll.CalendarEvent{
		"Removed Client":     sessionsFor("Removed Client", period, 2),
		"Μαρία Κωνσταντίνου": {titledEvent("Μαρία Κωνσταντίνου", period.End.Add(time.Hour))},
	}

	report := payroll.Aggregate(testEmployee(), clients, groups, period, nil)

	if len(report.Entries) != 0 {
		t.Errorf("expected no entries, got %+v", report.Entries)
	}
	if report.TotalSessions != 0 || !report.TotalRevenue.IsZero() {
		t.Errorf("totals should be zero for an empty report")
	}
}

func TestAggregate_CancelledSessions(t *testing.T) {
	// A cancelled non-pending event contributes zero sessions; a
	// cancelled pending-payment event contributes one.
	period := april2025()
	clients := []payroll.Client{testClient("Μαρία Κωνσταντίνου", "50.00", "35.00", "15.00")}

	dropped := titledEvent("Μαρία Κωνσταντίνου", period.Start.Add(time.Hour))
	dropped.Cancelled = true
	billed := titledEvent("Μαρία Κωνσταντίνου", period.Start.Add(2*time.Hour))
	billed.Cancelled = true
	billed.PendingPayment = true

	report := payroll.Aggregate(testEmployee(), clients, map[string][]payroll.CalendarEvent{
		"Μαρία Κωνσταντίνου": {dropped, billed},
	}, period, nil)

	if report.TotalSessions != 1 {
		t.Errorf("total sessions = %d, want 1", report.TotalSessions)
	}
}

func TestAggregate_Supervision(t *testing.T) {
	// GIVEN: Supervision enabled with its own rates, one completed and
	//        one cancelled-grey supervision event
	// THEN: One supervision entry with one session (pending-payment
	//       rule does not apply), under the fixed supervision label

	period := april2025()
	supervision := &payroll.SupervisionConfig{
		Enabled:       true,
		Price:         payroll.MustDecimal("30.00"),
		EmployeeShare: payroll.MustDecimal("30.00"),
		CompanyShare:  payroll.MustDecimal("0.00"),
		Keywords:      payroll.DefaultSupervisionKeywords,
	}

	completed := titledEvent("Εποπτεία", period.Start.Add(time.Hour))
	cancelledGrey := titledEvent("Εποπτεία", period.Start.Add(2*time.Hour))
	cancelledGrey.Cancelled = true
	cancelledGrey.PendingPayment = true

	report := payroll.Aggregate(testEmployee(), nil, map[string][]payroll.CalendarEvent{
		"Εποπτεία": {completed, cancelledGrey},
	}, period, supervision)

	if len(report.Entries) != 1 {
		t.Fatalf("expected one supervision entry, got %d", len(report.Entries))
	}
	entry := report.Entries[0]
	if entry.ClientName != payroll.SupervisionLabel {
		t.Errorf("entry name = %q, want supervision label", entry.ClientName)
	}
	if entry.Sessions != 1 {
		t.Errorf("sessions = %d, want 1 (cancelled supervision never billed)", entry.Sessions)
	}
	if !entry.TotalRevenue.Equal(payroll.MustDecimal("30.00")) {
		t.Errorf("revenue = %s, want 30.00", entry.TotalRevenue)
	}
}

func TestAggregate_SupervisionDisabledIgnoresKeywordGroups(t *testing.T) {
	period := april2025()
	report := payroll.Aggregate(testEmployee(), nil, map[string][]payroll.CalendarEvent{
		"Εποπτεία": sessionsFor("Εποπτεία", period, 2),
	}, period, nil)

	if len(report.Entries) != 0 {
		t.Errorf("supervision off: keyword groups must be ignored, got %+v", report.Entries)
	}
}

func TestAggregate_RosterOrder(t *testing.T) {
	period := april2025()
	clients := []payroll.Client{
		testClient("Σταυρούλα Παπαδοπούλου", "50.00", "35.00", "15.00"),
		testClient("Μαρία Κωνσταντίνου", "50.00", "35.00", "15.00"),
	}
	groups := map[string][]payroll.CalendarEvent{
		"Μαρία Κωνσταντίνου":     sessionsFor("Μαρία Κωνσταντίνου", period, 1),
		"Σταυρούλα Παπαδοπούλου": sessionsFor("Σταυρούλα Παπαδοπούλου", period, 1),
	}

	report := payroll.Aggregate(testEmployee(), clients, groups, period, nil)

	if len(report.Entries) != 2 ||
		report.Entries[0].ClientName != "Σταυρούλα Παπαδοπούλου" ||
		report.Entries[1].ClientName != "Μαρία Κωνσταντίνου" {
		t.Errorf("entries must follow roster order, got %+v", report.Entries)
	}
}

func TestAggregate_ThenValidate_RoundTrip(t *testing.T) {
	// Any report produced by Aggregate must pass the validation gate.
	period := april2025()
	clients := []payroll.Client{
		testClient("Μαρία Κωνσταντίνου", "50.00", "35.00", "15.00"),
		testClient("Ελένη Παπαδοπούλου", "47.50", "33.25", "14.25"),
	}
	supervision := &payroll.SupervisionConfig{
		Enabled:       true,
		Price:         payroll.MustDecimal("30.00"),
		EmployeeShare: payroll.MustDecimal("30.00"),
		CompanyShare:  decimal.Zero,
		Keywords:      payroll.DefaultSupervisionKeywords,
	}
	groups := map[string][]payroll.CalendarEvent{
		"Μαρία Κωνσταντίνου": sessionsFor("Μαρία Κωνσταντίνου", period, 5),
		"Ελένη Παπαδοπούλου": sessionsFor("Ελένη Παπαδοπούλου", period, 2),
		"Supervision":        sessionsFor("Supervision", period, 1),
	}

	report := payroll.Aggregate(testEmployee(), clients, groups, period, supervision)
	result := payroll.Validate(report)

	if !result.Valid {
		t.Errorf("aggregate output failed validation: %s / %s", result.ErrorType, result.ErrorDetails)
	}
}
