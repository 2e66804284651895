package calculator

import (
	"sort"
	"time"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// WeeklyUsage is a derived view over one Sunday-started week of daily rows.
// It is recomputed on demand and never persisted.
type WeeklyUsage struct {
	WeekStart            string  `json:"week_start"` // Sunday, YYYY-MM-DD
	Days                 int     `json:"days"`
	ItemsCreated         int     `json:"items_created"`
	SearchCount          int     `json:"search_count"`
	RecordingMinutes     float64 `json:"recording_minutes"`
	TimeSpent            float64 `json:"time_spent"`
	AverageDailyUsage    float64 `json:"average_daily_usage"`
	AvgProductivityScore float64 `json:"avg_productivity_score"`
	PeakDay              string  `json:"peak_day"`
}

// MonthlyUsage is the calendar-month analogue of WeeklyUsage.
type MonthlyUsage struct {
	Month                string  `json:"month"` // YYYY-MM
	Days                 int     `json:"days"`
	ItemsCreated         int     `json:"items_created"`
	SearchCount          int     `json:"search_count"`
	RecordingMinutes     float64 `json:"recording_minutes"`
	TimeSpent            float64 `json:"time_spent"`
	AverageDailyUsage    float64 `json:"average_daily_usage"`
	AvgProductivityScore float64 `json:"avg_productivity_score"`
	PeakDay              string  `json:"peak_day"`
}

// weekStart returns the Sunday on or before the given date.
func weekStart(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeeklyRollup buckets daily rows by Sunday-started week and computes sums,
// averages, and the peak day within each bucket. Output is ordered by week.
func WeeklyRollup(rows []store.DailyUsage) []WeeklyUsage {
	buckets := make(map[string][]store.DailyUsage)
	for _, row := range rows {
		day, err := time.Parse(store.DateFormat, row.Date)
		if err != nil {
			continue
		}
		key := weekStart(day).Format(store.DateFormat)
		buckets[key] = append(buckets[key], row)
	}

	out := make([]WeeklyUsage, 0, len(buckets))
	for start, bucket := range buckets {
		w := WeeklyUsage{WeekStart: start}
		w.Days, w.ItemsCreated, w.SearchCount, w.RecordingMinutes, w.TimeSpent,
			w.AverageDailyUsage, w.AvgProductivityScore, w.PeakDay = bucketTotals(bucket)
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	return out
}

// MonthlyRollup buckets daily rows by calendar month.
func MonthlyRollup(rows []store.DailyUsage) []MonthlyUsage {
	buckets := make(map[string][]store.DailyUsage)
	for _, row := range rows {
		if len(row.Date) < 7 {
			continue
		}
		key := row.Date[:7]
		buckets[key] = append(buckets[key], row)
	}

	out := make([]MonthlyUsage, 0, len(buckets))
	for month, bucket := range buckets {
		m := MonthlyUsage{Month: month}
		m.Days, m.ItemsCreated, m.SearchCount, m.RecordingMinutes, m.TimeSpent,
			m.AverageDailyUsage, m.AvgProductivityScore, m.PeakDay = bucketTotals(bucket)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// bucketTotals computes the shared aggregate fields for one rollup bucket.
func bucketTotals(bucket []store.DailyUsage) (days, items, searches int, recording, timeSpent, avgDaily, avgScore float64, peakDay string) {
	days = len(bucket)
	peakActivity := -1
	var scoreSum float64

	for _, row := range bucket {
		items += row.ItemsCreated
		searches += row.SearchCount
		recording += row.RecordingMinutes
		timeSpent += row.TimeSpent
		scoreSum += DayScore(row)

		activity := row.ItemsCreated + row.SearchCount
		if activity > peakActivity {
			peakActivity = activity
			peakDay = row.Date
		}
	}

	if days > 0 {
		avgDaily = float64(items) / float64(days)
		avgScore = scoreSum / float64(days)
	}
	return days, items, searches, recording, timeSpent, avgDaily, avgScore, peakDay
}
