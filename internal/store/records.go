package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// Record kinds stored in analytics_records.
const (
	kindDailyUsage     = "daily_usage"
	kindUserAnalytics  = "user_analytics"
	kindGoal           = "goal"
	kindInsight        = "insight"
	kindRecommendation = "recommendation"
	kindAchievement    = "achievement"
	kindMilestone      = "milestone"
)

// snapshotKey is the single key holding the current aggregate snapshot.
const snapshotKey = "user_analytics_current"

func dailyUsageKey(date string) string   { return "daily_usage_" + date }
func goalKey(id string) string           { return "goal_" + id }
func insightKey(id string) string        { return "insight_" + id }
func recommendationKey(id string) string { return "recommendation_" + id }
func achievementKey(id string) string    { return "achievement_" + id }

func milestoneKey(typ string, threshold int) string {
	return fmt.Sprintf("milestone_%s_%d", typ, threshold)
}

// putRecord upserts a JSON-serialized record by primary key. All record
// writes go through here, which is what makes redelivery safe.
func (db *DB) putRecord(key, kind string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling record %s: %w", key, err)
	}
	_, err = db.conn.Exec(
		`INSERT INTO analytics_records (key, kind, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, kind, string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// getRecord loads a record by key into out. Returns ErrNotFound when absent.
func (db *DB) getRecord(key string, out any) error {
	var raw string
	err := db.conn.QueryRow(
		"SELECT value FROM analytics_records WHERE key = ?", key,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

// listRecords loads all records of a kind into a slice of T.
func listRecords[T any](db *DB, kind string) ([]T, error) {
	rows, err := db.conn.Query(
		"SELECT value FROM analytics_records WHERE kind = ? ORDER BY key", kind,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetDailyUsage returns the usage row for a date, or nil if none exists.
func (db *DB) GetDailyUsage(date string) (*DailyUsage, error) {
	var row DailyUsage
	err := db.getRecord(dailyUsageKey(date), &row)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// PutDailyUsage upserts the usage row for its date.
func (db *DB) PutDailyUsage(row DailyUsage) error {
	return db.putRecord(dailyUsageKey(row.Date), kindDailyUsage, row)
}

// GetDailyUsageRange returns usage rows for dates in [start, end],
// inclusive, ordered by date ascending. Dates use the YYYY-MM-DD format so
// lexical key ordering is chronological.
func (db *DB) GetDailyUsageRange(start, end string) ([]DailyUsage, error) {
	rows, err := db.conn.Query(
		`SELECT value FROM analytics_records
		 WHERE kind = ? AND key >= ? AND key <= ?
		 ORDER BY key`,
		kindDailyUsage, dailyUsageKey(start), dailyUsageKey(end),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []DailyUsage
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var row DailyUsage
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetSnapshot returns the current aggregate snapshot, or nil if none has
// been computed yet.
func (db *DB) GetSnapshot() (*UserAnalytics, error) {
	var snap UserAnalytics
	err := db.getRecord(snapshotKey, &snap)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// PutSnapshot replaces the aggregate snapshot wholesale.
func (db *DB) PutSnapshot(snap *UserAnalytics) error {
	return db.putRecord(snapshotKey, kindUserAnalytics, snap)
}

// GetGoal returns a goal by ID.
func (db *DB) GetGoal(id string) (*Goal, error) {
	var g Goal
	if err := db.getRecord(goalKey(id), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// GetGoals returns goals, optionally filtered by status (empty = all),
// newest first.
func (db *DB) GetGoals(status GoalStatus) ([]Goal, error) {
	goals, err := listRecords[Goal](db, kindGoal)
	if err != nil {
		return nil, err
	}
	if status != "" {
		filtered := goals[:0]
		for _, g := range goals {
			if g.Status == status {
				filtered = append(filtered, g)
			}
		}
		goals = filtered
	}
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].CreatedDate.After(goals[j].CreatedDate)
	})
	return goals, nil
}

// PutGoal upserts a goal by ID.
func (db *DB) PutGoal(g Goal) error {
	return db.putRecord(goalKey(g.ID), kindGoal, g)
}

// PatchGoalStatus updates only the status of a goal.
func (db *DB) PatchGoalStatus(id string, status GoalStatus) error {
	g, err := db.GetGoal(id)
	if err != nil {
		return err
	}
	g.Status = status
	return db.PutGoal(*g)
}

// GetInsights returns insights, optionally filtered by category, newest
// first.
func (db *DB) GetInsights(category string) ([]Insight, error) {
	insights, err := listRecords[Insight](db, kindInsight)
	if err != nil {
		return nil, err
	}
	if category != "" {
		filtered := insights[:0]
		for _, in := range insights {
			if in.Category == category {
				filtered = append(filtered, in)
			}
		}
		insights = filtered
	}
	sort.Slice(insights, func(i, j int) bool {
		return insights[i].GeneratedAt.After(insights[j].GeneratedAt)
	})
	return insights, nil
}

// PutInsight upserts an insight by ID.
func (db *DB) PutInsight(in Insight) error {
	return db.putRecord(insightKey(in.ID), kindInsight, in)
}

// GetRecommendations returns recommendations matching the dismissed flag,
// newest first. Dismissed recommendations are kept forever (soft-delete).
func (db *DB) GetRecommendations(dismissed bool) ([]Recommendation, error) {
	recs, err := listRecords[Recommendation](db, kindRecommendation)
	if err != nil {
		return nil, err
	}
	filtered := recs[:0]
	for _, r := range recs {
		if (r.DismissedDate != nil) == dismissed {
			filtered = append(filtered, r)
		}
	}
	recs = filtered
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedDate.After(recs[j].CreatedDate)
	})
	return recs, nil
}

// PutRecommendation upserts a recommendation by ID.
func (db *DB) PutRecommendation(r Recommendation) error {
	return db.putRecord(recommendationKey(r.ID), kindRecommendation, r)
}

// DismissRecommendation soft-deletes a recommendation by stamping its
// dismissal date.
func (db *DB) DismissRecommendation(id string) error {
	var r Recommendation
	if err := db.getRecord(recommendationKey(id), &r); err != nil {
		return err
	}
	if r.DismissedDate != nil {
		return nil
	}
	now := time.Now().UTC()
	r.DismissedDate = &now
	return db.PutRecommendation(r)
}

// HasAchievement reports whether an achievement has been unlocked.
func (db *DB) HasAchievement(id string) (bool, error) {
	var a Achievement
	err := db.getRecord(achievementKey(id), &a)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PutAchievement persists an unlock. Achievements are keyed by ID, so a
// repeated unlock is a no-op overwrite of identical data.
func (db *DB) PutAchievement(a Achievement) error {
	return db.putRecord(achievementKey(a.ID), kindAchievement, a)
}

// GetAchievements returns all unlocked achievements, oldest first.
func (db *DB) GetAchievements() ([]Achievement, error) {
	achievements, err := listRecords[Achievement](db, kindAchievement)
	if err != nil {
		return nil, err
	}
	sort.Slice(achievements, func(i, j int) bool {
		return achievements[i].UnlockedAt.Before(achievements[j].UnlockedAt)
	})
	return achievements, nil
}

// HasMilestone reports whether a (type, threshold) milestone has fired.
func (db *DB) HasMilestone(typ string, threshold int) (bool, error) {
	var m Milestone
	err := db.getRecord(milestoneKey(typ, threshold), &m)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PutMilestone records a fired milestone.
func (db *DB) PutMilestone(m Milestone) error {
	return db.putRecord(milestoneKey(m.Type, m.Threshold), kindMilestone, m)
}

// GetMilestones returns all fired milestones, oldest first.
func (db *DB) GetMilestones() ([]Milestone, error) {
	milestones, err := listRecords[Milestone](db, kindMilestone)
	if err != nil {
		return nil, err
	}
	sort.Slice(milestones, func(i, j int) bool {
		return milestones[i].FiredAt.Before(milestones[j].FiredAt)
	})
	return milestones, nil
}
