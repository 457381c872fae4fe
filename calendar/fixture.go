/*
fixture.go - JSON-file event source for development and demos

PURPOSE:
  Lets the server run end to end without a live calendar integration:
  a JSON file maps calendar IDs to raw events, and the fixture serves
  time-window queries over them. Also doubles as the test event source.

FILE FORMAT:
  {
    "calendars": {
      "giorgos@group.calendar.google.com": [
        {"id": "ev-1", "summary": "Μαρία Κωνσταντίνου",
         "status": "confirmed", "start": "2025-04-03T10:00:00Z",
         "end": "2025-04-03T11:00:00Z"},
        {"id": "ev-2", "summary": "Εποπτεία", "status": "cancelled",
         "color_id": "8", ...}
      ]
    }
  }
*/
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fkcoding/payroll-engine/payroll"
)

// Fixture is an EventSource backed by a static set of raw events.
type Fixture struct {
	calendars map[string][]RawEvent
}

type fixtureFile struct {
	Calendars map[string][]RawEvent `json:"calendars"`
}

// NewFixture builds a fixture source from raw events per calendar ID.
func NewFixture(calendars map[string][]RawEvent) *Fixture {
	return &Fixture{calendars: calendars}
}

// LoadFixture reads a fixture file from disk.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var f fixtureFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file: %w", err)
	}
	return NewFixture(f.Calendars), nil
}

// EventsForPeriod returns the calendar's events starting within
// [from, to], ordered by start time. An unknown calendar ID yields an
// empty list, mirroring how a live source treats an empty calendar.
func (f *Fixture) EventsForPeriod(_ context.Context, calendarID string, from, to time.Time) ([]payroll.CalendarEvent, error) {
	var events []payroll.CalendarEvent
	for _, raw := range f.calendars[calendarID] {
		if raw.Start.Before(from) || raw.Start.After(to) {
			continue
		}
		events = append(events, ToEvent(raw))
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
	return events, nil
}
