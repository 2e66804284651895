package calculator

import (
	"sort"
	"time"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// CurrentStreak returns the number of consecutive active days ending today.
// A day counts only when items were created on it, and only when it is
// exactly streak-many days before today — the first gap or zero-activity
// day stops the walk. A user inactive today has a streak of 0.
func CurrentStreak(rows []store.DailyUsage, today time.Time) int {
	if len(rows) == 0 {
		return 0
	}

	sorted := make([]store.DailyUsage, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	streak := 0
	for _, row := range sorted {
		day, err := time.Parse(store.DateFormat, row.Date)
		if err != nil {
			continue
		}
		offset := int(todayMidnight.Sub(day).Hours() / 24)
		if offset != streak || row.ItemsCreated == 0 {
			break
		}
		streak++
	}
	return streak
}
