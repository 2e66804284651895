package calculator

import (
	"sort"
	"time"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// dayNames in the tie-break order Sunday through Saturday.
var dayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// PeakUsageHours builds a 24-bucket histogram of event hours and returns up
// to 3 hours by count. Hours with no events are never reported, so sparse
// histories yield fewer than 3 entries and empty input yields none. Ties
// break toward the earlier hour (stable sort over ascending hours).
func PeakUsageHours(events []event.Event) []int {
	var counts [24]int
	for _, ev := range events {
		counts[ev.Timestamp.Hour()]++
	}

	hours := make([]int, 0, 24)
	for h := 0; h < 24; h++ {
		if counts[h] > 0 {
			hours = append(hours, h)
		}
	}
	sort.SliceStable(hours, func(i, j int) bool {
		return counts[hours[i]] > counts[hours[j]]
	})

	if len(hours) > 3 {
		hours = hours[:3]
	}
	return hours
}

// MostActiveDay sums itemsCreated+searchCount per day of week across the
// daily rows and returns the name of the busiest day. Ties break in
// Sunday-to-Saturday order. Empty input returns "".
func MostActiveDay(rows []store.DailyUsage) string {
	if len(rows) == 0 {
		return ""
	}

	var totals [7]int
	for _, row := range rows {
		day, err := time.Parse(store.DateFormat, row.Date)
		if err != nil {
			continue
		}
		totals[int(day.Weekday())] += row.ItemsCreated + row.SearchCount
	}

	best := 0
	for i := 1; i < 7; i++ {
		if totals[i] > totals[best] {
			best = i
		}
	}
	return dayNames[best]
}
