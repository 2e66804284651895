package calculator

import (
	"fmt"
	"strings"
	"time"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// Insight rule thresholds.
const (
	productivityShiftPct = 20.0 // week-over-week items change worth surfacing
	searchSuccessFloor   = 0.70
	searchSampleMin      = 10
	streakInsightMin     = 3
)

// GenerateInsights runs the rule set over recent usage and returns advisory
// records. IDs are deterministic per rule and day so regeneration upserts
// instead of duplicating.
func GenerateInsights(rows []store.DailyUsage, events []event.Event, now time.Time) []store.Insight {
	var insights []store.Insight
	day := now.UTC().Format(store.DateFormat)

	add := func(rule, category, title, description string) {
		insights = append(insights, store.Insight{
			ID:          rule + "_" + day,
			Category:    category,
			Title:       title,
			Description: description,
			GeneratedAt: now.UTC(),
		})
	}

	// Week-over-week items-created shift.
	if len(rows) >= 8 {
		recent := rows[len(rows)-7:]
		prior := rows[:len(rows)-7]
		if len(prior) > 7 {
			prior = prior[len(prior)-7:]
		}
		recentMean := Mean(itemsSeries(recent))
		priorMean := Mean(itemsSeries(prior))
		change := ChangePercent(recentMean, priorMean)
		if change > productivityShiftPct {
			add("productivity_increasing", "productivity",
				"Productivity is increasing",
				fmt.Sprintf("You created %.0f%% more items this week than last week.", change))
		} else if change < -productivityShiftPct {
			add("productivity_decreasing", "productivity",
				"Productivity dipped this week",
				fmt.Sprintf("Items created fell %.0f%% compared to last week.", -change))
		}
	}

	// Low search success over a meaningful sample.
	search := Searches(events)
	if search.Total > searchSampleMin && search.SuccessRate < searchSuccessFloor {
		add("search_optimization", "search",
			"Searches often come up empty",
			fmt.Sprintf("Only %.0f%% of your recent searches returned results. Try broader terms or add tags to your notes.", search.SuccessRate*100))
	}

	// Peak usage window.
	if peak := PeakUsageHours(events); len(peak) > 0 {
		add("peak_hours", "habits",
			"Your most productive hours",
			fmt.Sprintf("Most of your activity happens around %s.", hourList(peak)))
	}

	// Active streak.
	if streak := CurrentStreak(rows, now); streak >= streakInsightMin {
		add("streak", "habits",
			fmt.Sprintf("%d-day streak", streak),
			fmt.Sprintf("You have created notes %d days in a row. Keep it going.", streak))
	}

	return insights
}

// hourList renders hours as a readable clause: "09:00", "09:00 and 14:00",
// or "09:00, 14:00, and 20:00".
func hourList(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = fmt.Sprintf("%02d:00", h)
	}
	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}

func itemsSeries(rows []store.DailyUsage) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = float64(row.ItemsCreated)
	}
	return out
}
