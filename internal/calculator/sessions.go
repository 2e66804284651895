package calculator

import (
	"sort"
	"strings"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// SessionStats summarizes session lifecycle events.
type SessionStats struct {
	Count      int     `json:"count"`
	AvgMinutes float64 `json:"avg_minutes"`
	PerDay     float64 `json:"per_day"`
}

// Sessions computes session statistics from session_ended events, which
// carry the session duration in seconds.
func Sessions(events []event.Event) SessionStats {
	var stats SessionStats
	days := make(map[string]bool)
	var totalMinutes float64

	for _, ev := range events {
		if ev.Type != event.TypeSessionEnded {
			continue
		}
		stats.Count++
		totalMinutes += ev.DurationSeconds() / 60
		days[ev.Timestamp.Format(store.DateFormat)] = true
	}

	if stats.Count > 0 {
		stats.AvgMinutes = totalMinutes / float64(stats.Count)
	}
	if len(days) > 0 {
		stats.PerDay = float64(stats.Count) / float64(len(days))
	}
	return stats
}

// SearchStats summarizes search_performed events.
type SearchStats struct {
	Total       int     `json:"total"`
	WithResults int     `json:"with_results"`
	SuccessRate float64 `json:"success_rate"` // 0..1
	UniqueTerms int     `json:"unique_terms"`
}

// Searches computes search statistics. A search succeeds when it returned at
// least one result.
func Searches(events []event.Event) SearchStats {
	var stats SearchStats
	terms := make(map[string]bool)

	for _, ev := range events {
		if ev.Type != event.TypeSearchPerformed {
			continue
		}
		stats.Total++
		if ev.Int("result_count") > 0 {
			stats.WithResults++
		}
		if q := normalizeTerm(ev.String("query")); q != "" {
			terms[q] = true
		}
	}

	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.WithResults) / float64(stats.Total)
	}
	stats.UniqueTerms = len(terms)
	return stats
}

// TopSearchTerms returns the n most frequent search queries, most frequent
// first; ties break alphabetically so output is deterministic.
func TopSearchTerms(events []event.Event, n int) []store.SearchTerm {
	counts := make(map[string]int)
	for _, ev := range events {
		if ev.Type != event.TypeSearchPerformed {
			continue
		}
		if q := normalizeTerm(ev.String("query")); q != "" {
			counts[q]++
		}
	}

	terms := make([]store.SearchTerm, 0, len(counts))
	for term, count := range counts {
		terms = append(terms, store.SearchTerm{Term: term, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})

	if n > 0 && len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

func normalizeTerm(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
