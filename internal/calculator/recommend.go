package calculator

import (
	"fmt"
	"time"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// Recommendation rule thresholds.
const (
	goalUrgencyProgress = 0.50
	goalUrgencyWindow   = 7 * 24 * time.Hour
	shortSessionMinutes = 15.0
	sparseSearchItems   = 50
	sparseSearchTerms   = 5
)

// GenerateRecommendations runs the threshold rules and returns suggestions.
// IDs are deterministic per rule (and per goal for urgency) so regeneration
// upserts; a dismissed recommendation keeps its dismissal through future
// regenerations because dismissal only stamps a date on the same key.
func GenerateRecommendations(goals []store.Goal, sessions SessionStats, search SearchStats, totalItems int, now time.Time) []store.Recommendation {
	var recs []store.Recommendation

	add := func(id, typ, title, description string) {
		recs = append(recs, store.Recommendation{
			ID:          id,
			Type:        typ,
			Title:       title,
			Description: description,
			CreatedDate: now.UTC(),
		})
	}

	// Urgent goals: under half done with under a week left.
	for _, g := range goals {
		if g.Status != store.GoalActive || g.Target <= 0 {
			continue
		}
		remaining := g.Deadline.Sub(now)
		progress := g.Current / g.Target
		if remaining > 0 && remaining < goalUrgencyWindow && progress < goalUrgencyProgress {
			add("goal_urgency_"+g.ID, "goal",
				fmt.Sprintf("Goal %q needs attention", g.Title),
				fmt.Sprintf("You are at %.0f%% with %d days left.", progress*100, int(remaining.Hours()/24)+1))
		}
	}

	// Sessions too short to get anything done.
	if sessions.Count > 0 && sessions.AvgMinutes < shortSessionMinutes {
		add("longer_sessions", "habits",
			"Try longer sessions",
			fmt.Sprintf("Your sessions average %.0f minutes. Blocking out 15+ minutes tends to produce more complete notes.", sessions.AvgMinutes))
	}

	// Lots of content, hardly any distinct searches: the library is going
	// unused.
	if totalItems > sparseSearchItems && search.UniqueTerms < sparseSearchTerms {
		add("search_more", "search",
			"Your notes are piling up unsearched",
			fmt.Sprintf("You have %d items but only %d distinct search terms. Search can resurface old notes you have forgotten.", totalItems, search.UniqueTerms))
	}

	return recs
}
