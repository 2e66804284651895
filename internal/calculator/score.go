// Package calculator contains the pure scoring, trend, and rollup functions
// of the analytics engine. Every function here is stateless: inputs are
// slices of events or daily usage rows, outputs are values. Persistence and
// orchestration live elsewhere.
package calculator

import (
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// Productivity score component caps. A day's score is the sum of four
// capped components and never exceeds 100.
const (
	maxContentScore      = 40
	maxSearchScore       = 20
	maxTimeScore         = 20
	consistencyScore     = 20
	contentPointsPerItem = 10
	searchPointsPerQuery = 2
	timePointsPerHour    = 10
)

// DayScore computes the productivity score for a single day's usage row.
func DayScore(row store.DailyUsage) float64 {
	content := float64(row.ItemsCreated) * contentPointsPerItem
	if content > maxContentScore {
		content = maxContentScore
	}

	search := float64(row.SearchCount) * searchPointsPerQuery
	if search > maxSearchScore {
		search = maxSearchScore
	}

	timeScore := (row.TimeSpent / 60) * timePointsPerHour
	if timeScore > maxTimeScore {
		timeScore = maxTimeScore
	}

	consistency := 0.0
	if row.ItemsCreated > 0 {
		consistency = consistencyScore
	}

	total := content + search + timeScore + consistency
	if total > 100 {
		total = 100
	}
	return total
}

// ProductivityScore averages the per-day score over the most recent 7 rows.
// Rows are expected in date order; fewer than 7 rows are averaged over what
// exists. No data scores 0.
func ProductivityScore(rows []store.DailyUsage) float64 {
	if len(rows) == 0 {
		return 0
	}

	recent := rows
	if len(recent) > 7 {
		recent = recent[len(recent)-7:]
	}

	var sum float64
	for _, row := range recent {
		sum += DayScore(row)
	}
	return sum / float64(len(recent))
}
