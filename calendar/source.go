/*
Package calendar defines the event-source boundary of the payroll engine.

PURPOSE:
  The engine never talks to a calendar API. It receives deserialized
  events from an EventSource collaborator; fetching, pagination, and
  OAuth belong to whatever implements the interface. This package holds
  the contract, the raw-shape conversion, and a JSON fixture source for
  development and tests.

CONVERSION:
  A RawEvent mirrors the fields the calendar API hands back. ToEvent
  derives the billing flags through payroll.Classify so no upstream
  representation of "cancelled" or "grey" leaks past this boundary.
*/
package calendar

import (
	"context"
	"time"

	"github.com/fkcoding/payroll-engine/payroll"
)

// EventSource supplies events for one calendar within a time window.
// Implementations own fetching and authentication; the engine only
// sees the result.
type EventSource interface {
	EventsForPeriod(ctx context.Context, calendarID string, from, to time.Time) ([]payroll.CalendarEvent, error)
}

// untitledEvent stands in for events saved without a title.
const untitledEvent = "Χωρίς τίτλο"

// RawEvent is a calendar entry as delivered by the upstream API,
// before billing classification.
type RawEvent struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	Status    string    `json:"status"`
	ColorID   string    `json:"color_id,omitempty"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Attendees []string  `json:"attendees,omitempty"`
}

// ToEvent converts a raw API event into the engine's representation,
// deriving the cancellation flags.
func ToEvent(raw RawEvent) payroll.CalendarEvent {
	title := raw.Summary
	if title == "" {
		title = untitledEvent
	}

	cancelled, pendingPayment := payroll.Classify(raw.Status, raw.ColorID)

	return payroll.CalendarEvent{
		ID:             raw.ID,
		Title:          title,
		StartTime:      raw.Start,
		EndTime:        raw.End,
		ColorID:        raw.ColorID,
		Cancelled:      cancelled,
		PendingPayment: pendingPayment,
		Attendees:      raw.Attendees,
	}
}
