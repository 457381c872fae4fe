/*
group.go - Attribution of events to client groups

PURPOSE:
  Runs the matcher over a fetched event list and buckets each event
  under the client (or special keyword) it belongs to. An event is
  attributed to at most one client: when several match, the first by
  roster order wins and the ambiguity is logged as a warning, never
  raised as an error. Unmatched events are counted but dropped; noisy
  titles are expected.
*/
package payroll

import "log/slog"

// Ambiguity records a title that matched more than one client.
type Ambiguity struct {
	Title   string
	Matches []string
}

// MatchStats summarizes one grouping pass, for operator visibility.
type MatchStats struct {
	Matched        int
	Unmatched      int
	Cancelled      int
	PendingPayment int
	Ambiguities    []Ambiguity
}

// GroupByClient buckets events by the client name they match.
// Every name in clientNames gets a bucket, possibly empty, so callers
// can range over the roster without existence checks. Special keyword
// hits are bucketed under the keyword itself.
func (m Matcher) GroupByClient(events []CalendarEvent, clientNames []string, logger *slog.Logger) (map[string][]CalendarEvent, MatchStats) {
	if logger == nil {
		logger = slog.Default()
	}

	groups := make(map[string][]CalendarEvent, len(clientNames))
	for _, name := range clientNames {
		groups[name] = nil
	}

	var stats MatchStats
	for _, event := range events {
		if event.Cancelled {
			stats.Cancelled++
		}
		if event.PendingPayment {
			stats.PendingPayment++
		}

		matches := m.Match(event.Title, clientNames)
		if len(matches) == 0 {
			stats.Unmatched++
			continue
		}

		winner := matches[0]
		groups[winner] = append(groups[winner], event)
		stats.Matched++

		if len(matches) > 1 {
			stats.Ambiguities = append(stats.Ambiguities, Ambiguity{Title: event.Title, Matches: matches})
			logger.Warn("event title matches multiple clients",
				"title", event.Title,
				"matches", matches,
				"attributed_to", winner)
		}
	}

	return groups, stats
}
