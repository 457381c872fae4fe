/*
filter.go - Session eligibility filtering

PURPOSE:
  Restricts an event group to the billing window and the cancellation
  rule before pricing. Two variants exist because supervision follows a
  stricter rule than client sessions: a cancelled supervision event is
  never billed, grey tag or not.

BOUNDARY SEMANTICS:
  Period bounds are exclusive on both ends. An event starting exactly at
  the period boundary belongs to the neighbouring run, preventing the
  same session from being billed twice across consecutive periods.
  An inverted window simply yields no events.
*/
package payroll

// FilterBillable returns the events eligible for client billing:
// strictly inside the period, and either not cancelled or cancelled
// with the pending-payment tag.
func FilterBillable(events []CalendarEvent, period Period) []CalendarEvent {
	var eligible []CalendarEvent
	for _, e := range events {
		if !period.Contains(e.StartTime) {
			continue
		}
		if e.Cancelled && !e.PendingPayment {
			continue
		}
		eligible = append(eligible, e)
	}
	return eligible
}

// FilterCompleted returns the events strictly inside the period that
// were not cancelled at all. Used for supervision, where the
// pending-payment compensation rule does not apply.
func FilterCompleted(events []CalendarEvent, period Period) []CalendarEvent {
	var eligible []CalendarEvent
	for _, e := range events {
		if !period.Contains(e.StartTime) {
			continue
		}
		if e.Cancelled {
			continue
		}
		eligible = append(eligible, e)
	}
	return eligible
}
