package payroll_test

import (
	"testing"
	"time"

	"github.com/fkcoding/payroll-engine/payroll"
)

func titledEvent(title string, start time.Time) payroll.CalendarEvent {
	e := eventAt(start)
	e.Title = title
	return e
}

func TestGroupByClient_AttributesFirstMatchOnly(t *testing.T) {
	// GIVEN: A surname-only title matching two roster names
	// WHEN: Grouping
	// THEN: The event lands in the first roster bucket only, and the
	//       ambiguity is recorded as a warning, not an error

	names := []string{"Ελένη Παπαδοπούλου", "Σταυρούλα Παπαδοπούλου"}
	start := april2025().Start.Add(time.Hour)
	events := []payroll.CalendarEvent{titledEvent("παπαδοπουλου 12:00", start)}

	groups, stats := payroll.NewMatcher().GroupByClient(events, names, nil)

	if len(groups["Ελένη Παπαδοπούλου"]) != 1 {
		t.Errorf("event should be attributed to first roster match")
	}
	if len(groups["Σταυρούλα Παπαδοπούλου"]) != 0 {
		t.Errorf("event must not be double-attributed")
	}
	if len(stats.Ambiguities) != 1 {
		t.Errorf("ambiguity should be recorded, got %+v", stats.Ambiguities)
	}
}

func TestGroupByClient_Stats(t *testing.T) {
	names := []string{"Μαρία Κωνσταντίνου"}
	start := april2025().Start.Add(time.Hour)

	matched := titledEvent("Μαρία Κωνσταντίνου", start)
	unmatched := titledEvent("team meeting", start.Add(time.Hour))
	cancelled := titledEvent("Μαρία Κωνσταντίνου ακυρωση", start.Add(2*time.Hour))
	cancelled.Cancelled = true
	pending := titledEvent("Μαρία Κωνσταντίνου", start.Add(3*time.Hour))
	pending.Cancelled = true
	pending.PendingPayment = true

	groups, stats := payroll.NewMatcher().GroupByClient(
		[]payroll.CalendarEvent{matched, unmatched, cancelled, pending}, names, nil)

	if stats.Matched != 3 || stats.Unmatched != 1 {
		t.Errorf("matched/unmatched = %d/%d, want 3/1", stats.Matched, stats.Unmatched)
	}
	if stats.Cancelled != 2 || stats.PendingPayment != 1 {
		t.Errorf("cancelled/pending = %d/%d, want 2/1", stats.Cancelled, stats.PendingPayment)
	}
	if len(groups["Μαρία Κωνσταντίνου"]) != 3 {
		t.Errorf("all matched events belong to the one client")
	}
}

func TestGroupByClient_EveryNameHasBucket(t *testing.T) {
	groups, _ := payroll.NewMatcher().GroupByClient(nil, []string{"Μαρία Κωνσταντίνου"}, nil)
	if _, ok := groups["Μαρία Κωνσταντίνου"]; !ok {
		t.Errorf("roster names must have buckets even with no events")
	}
}
