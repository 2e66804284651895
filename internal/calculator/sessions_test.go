package calculator

import (
	"testing"
	"time"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
)

func searchEvent(query string, results int) event.Event {
	return event.New(event.TypeSearchPerformed, "s1", map[string]any{
		"query":        query,
		"result_count": results,
	})
}

func TestSearches(t *testing.T) {
	events := []event.Event{
		searchEvent("budget", 3),
		searchEvent("budget", 0),
		searchEvent("Recipes ", 1),
		event.New(event.TypeItemViewed, "s1", nil), // ignored
	}
	stats := Searches(events)
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if stats.WithResults != 2 {
		t.Errorf("WithResults = %d, want 2", stats.WithResults)
	}
	if stats.UniqueTerms != 2 {
		t.Errorf("UniqueTerms = %d, want 2 (case/space normalized)", stats.UniqueTerms)
	}
	wantRate := 2.0 / 3.0
	if stats.SuccessRate != wantRate {
		t.Errorf("SuccessRate = %v, want %v", stats.SuccessRate, wantRate)
	}
}

func TestSearches_Empty(t *testing.T) {
	stats := Searches(nil)
	if stats.Total != 0 || stats.SuccessRate != 0 {
		t.Errorf("Searches(nil) = %+v, want zeros", stats)
	}
}

func TestTopSearchTerms(t *testing.T) {
	events := []event.Event{
		searchEvent("alpha", 1),
		searchEvent("beta", 1),
		searchEvent("beta", 1),
		searchEvent("gamma", 1),
	}
	terms := TopSearchTerms(events, 2)
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
	if terms[0].Term != "beta" || terms[0].Count != 2 {
		t.Errorf("top term = %+v, want beta x2", terms[0])
	}
	// alpha and gamma tie at 1; alphabetical order makes it deterministic.
	if terms[1].Term != "alpha" {
		t.Errorf("second term = %q, want alpha", terms[1].Term)
	}
}

func TestSessions(t *testing.T) {
	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	mkSession := func(ts time.Time, seconds float64) event.Event {
		ev := event.New(event.TypeSessionEnded, "s1", map[string]any{"duration": seconds})
		ev.Timestamp = ts
		return ev
	}

	stats := Sessions([]event.Event{
		mkSession(day1, 600),  // 10 min
		mkSession(day1, 1200), // 20 min
		mkSession(day2, 1800), // 30 min
	})
	if stats.Count != 3 {
		t.Errorf("Count = %d, want 3", stats.Count)
	}
	if stats.AvgMinutes != 20 {
		t.Errorf("AvgMinutes = %v, want 20", stats.AvgMinutes)
	}
	if stats.PerDay != 1.5 {
		t.Errorf("PerDay = %v, want 1.5", stats.PerDay)
	}
}
