// Package store provides SQLite persistence for analytics events and
// derived records: daily usage rows, the aggregate snapshot, goals,
// insights, recommendations, achievements, and milestones.
package store

import "time"

// DateFormat is the calendar-date key format used throughout the store.
const DateFormat = "2006-01-02"

// DailyUsage is the mutable per-calendar-date usage counter set. There is at
// most one row per date; all numeric fields are non-negative.
type DailyUsage struct {
	Date               string  `json:"date"` // YYYY-MM-DD
	RecordingMinutes   float64 `json:"recording_minutes"`
	DocumentsProcessed int     `json:"documents_processed"`
	SearchCount        int     `json:"search_count"`
	TimeSpent          float64 `json:"time_spent"` // minutes
	SessionsCount      int     `json:"sessions_count"`
	ItemsCreated       int     `json:"items_created"`
	ItemsDeleted       int     `json:"items_deleted"`
	ProductivityScore  float64 `json:"productivity_score"`
}

// SearchTerm is a search query with its occurrence count.
type SearchTerm struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// UserAnalytics is the current aggregate snapshot. Exactly one live instance
// exists; it is replaced wholesale on every recomputation so readers never
// observe a half-updated aggregate.
type UserAnalytics struct {
	GeneratedAt        time.Time      `json:"generated_at"`
	TotalNotes         int            `json:"total_notes"`
	VoiceRecordings    int            `json:"voice_recordings"`
	DocumentsProcessed int            `json:"documents_processed"`
	TotalSearches      int            `json:"total_searches"`
	ItemsDeleted       int            `json:"items_deleted"`
	TotalSessions      int            `json:"total_sessions"`
	ProductivityScore  float64        `json:"productivity_score"`
	StreakDays         int            `json:"streak_days"`
	Level              int            `json:"level"`
	XP                 int            `json:"xp"`
	PeakUsageHours     []int          `json:"peak_usage_hours"`
	MostActiveDay      string         `json:"most_active_day"`
	Categories         map[string]int `json:"categories,omitempty"`
	TopSearchTerms     []SearchTerm   `json:"top_search_terms,omitempty"`
	AvgSessionMinutes  float64        `json:"avg_session_minutes"`
	SessionsPerDay     float64        `json:"sessions_per_day"`
	SearchSuccessRate  float64        `json:"search_success_rate"`
}

// GoalStatus is the lifecycle state of a goal. Completed, paused, and failed
// are terminal for a goal instance.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
	GoalFailed    GoalStatus = "failed"
)

// GoalPriority weights the XP awarded on completion.
type GoalPriority string

const (
	PriorityLow    GoalPriority = "low"
	PriorityMedium GoalPriority = "medium"
	PriorityHigh   GoalPriority = "high"
)

// Goal is a user- or challenge-created target with tracked progress.
type Goal struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Target      float64      `json:"target"`
	Current     float64      `json:"current"`
	Unit        string       `json:"unit,omitempty"`
	Deadline    time.Time    `json:"deadline"`
	CreatedDate time.Time    `json:"created_date"`
	Status      GoalStatus   `json:"status"`
	Priority    GoalPriority `json:"priority"`
	Category    string       `json:"category,omitempty"`
}

// Insight is a generated, timestamped advisory record.
type Insight struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Recommendation is a threshold-triggered suggestion. Dismissal is a
// soft-delete: the record keeps its DismissedDate and is never removed.
type Recommendation struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CreatedDate   time.Time  `json:"created_date"`
	DismissedDate *time.Time `json:"dismissed_date,omitempty"`
}

// Achievement is a persisted unlock. Once written it is never re-evaluated.
type Achievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
	XPAwarded  int       `json:"xp_awarded"`
}

// Milestone is a fire-once checkpoint keyed by (type, threshold).
type Milestone struct {
	Type      string    `json:"type"`
	Threshold int       `json:"threshold"`
	Title     string    `json:"title"`
	FiredAt   time.Time `json:"fired_at"`
}
