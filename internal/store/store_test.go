package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAppendEvent_IdempotentByID(t *testing.T) {
	db := openTestDB(t)

	ev := event.New(event.TypeSearchPerformed, "s1", map[string]any{"query": "groceries"})
	require.NoError(t, db.AppendEvent(ev))
	require.NoError(t, db.AppendEvent(ev)) // redelivery

	count, err := db.CountEvents("")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAppendEvent_RejectsUnknownType(t *testing.T) {
	db := openTestDB(t)

	ev := event.New("telepathy_used", "s1", nil)
	err := db.AppendEvent(ev)
	assert.ErrorIs(t, err, ErrUnknownEventType)
}

func TestAppendEvents_SkipsUnknownTypes(t *testing.T) {
	db := openTestDB(t)

	batch := []event.Event{
		event.New(event.TypeSearchPerformed, "s1", nil),
		event.New("bogus", "s1", nil),
		event.New(event.TypeItemViewed, "s1", nil),
	}
	skipped, err := db.AppendEvents(batch)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)

	count, err := db.CountEvents("")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestQueryEvents_FilterAndOrder(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		ev := event.New(event.TypeSearchPerformed, "s1", nil)
		ev.Timestamp = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, db.AppendEvent(ev))
	}
	other := event.New(event.TypeItemDeleted, "s2", nil)
	other.Timestamp = base.Add(30 * time.Minute)
	require.NoError(t, db.AppendEvent(other))

	got, err := db.QueryEvents(Filter{
		From:  base,
		To:    base.Add(3 * time.Hour),
		Types: []event.Type{event.TypeSearchPerformed},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Timestamp.Before(got[i-1].Timestamp))
	}

	limited, err := db.QueryEvents(Filter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDailyUsage_UpsertAndRange(t *testing.T) {
	db := openTestDB(t)

	row := DailyUsage{Date: "2026-03-10", ItemsCreated: 3, SearchCount: 2}
	require.NoError(t, db.PutDailyUsage(row))

	row.ItemsCreated = 5
	require.NoError(t, db.PutDailyUsage(row)) // one row per date

	got, err := db.GetDailyUsage("2026-03-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.ItemsCreated)

	missing, err := db.GetDailyUsage("2026-03-11")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, db.PutDailyUsage(DailyUsage{Date: "2026-03-08"}))
	require.NoError(t, db.PutDailyUsage(DailyUsage{Date: "2026-03-12"}))

	rng, err := db.GetDailyUsageRange("2026-03-09", "2026-03-12")
	require.NoError(t, err)
	require.Len(t, rng, 2)
	assert.Equal(t, "2026-03-10", rng[0].Date)
	assert.Equal(t, "2026-03-12", rng[1].Date)
}

func TestSnapshot_ReplacedWholesale(t *testing.T) {
	db := openTestDB(t)

	none, err := db.GetSnapshot()
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, db.PutSnapshot(&UserAnalytics{TotalNotes: 7, Level: 2}))
	require.NoError(t, db.PutSnapshot(&UserAnalytics{TotalNotes: 9, Level: 3}))

	snap, err := db.GetSnapshot()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 9, snap.TotalNotes)
	assert.Equal(t, 3, snap.Level)
}

func TestGoals_StatusFilterAndPatch(t *testing.T) {
	db := openTestDB(t)

	now := time.Now().UTC()
	require.NoError(t, db.PutGoal(Goal{ID: "g1", Title: "Record 10 notes", Status: GoalActive, CreatedDate: now}))
	require.NoError(t, db.PutGoal(Goal{ID: "g2", Title: "Search daily", Status: GoalCompleted, CreatedDate: now.Add(time.Second)}))

	active, err := db.GetGoals(GoalActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "g1", active[0].ID)

	all, err := db.GetGoals("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "g2", all[0].ID) // newest first

	require.NoError(t, db.PatchGoalStatus("g1", GoalPaused))
	g, err := db.GetGoal("g1")
	require.NoError(t, err)
	assert.Equal(t, GoalPaused, g.Status)
}

func TestRecommendations_SoftDelete(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.PutRecommendation(Recommendation{ID: "r1", Title: "Try shorter sessions", CreatedDate: time.Now().UTC()}))

	open, err := db.GetRecommendations(false)
	require.NoError(t, err)
	require.Len(t, open, 1)

	require.NoError(t, db.DismissRecommendation("r1"))
	require.NoError(t, db.DismissRecommendation("r1")) // second dismiss is a no-op

	open, err = db.GetRecommendations(false)
	require.NoError(t, err)
	assert.Empty(t, open)

	dismissed, err := db.GetRecommendations(true)
	require.NoError(t, err)
	require.Len(t, dismissed, 1)
	assert.NotNil(t, dismissed[0].DismissedDate)
}

func TestAchievementsAndMilestones_FireOnce(t *testing.T) {
	db := openTestDB(t)

	has, err := db.HasAchievement("first_note")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, db.PutAchievement(Achievement{ID: "first_note", UnlockedAt: time.Now().UTC(), XPAwarded: 50}))
	has, err = db.HasAchievement("first_note")
	require.NoError(t, err)
	assert.True(t, has)

	fired, err := db.HasMilestone("total_items", 50)
	require.NoError(t, err)
	assert.False(t, fired)

	require.NoError(t, db.PutMilestone(Milestone{Type: "total_items", Threshold: 50, FiredAt: time.Now().UTC()}))
	fired, err = db.HasMilestone("total_items", 50)
	require.NoError(t, err)
	assert.True(t, fired)
}

func TestPurgeBefore(t *testing.T) {
	db := openTestDB(t)

	old := event.New(event.TypeItemViewed, "s1", nil)
	old.Timestamp = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := event.New(event.TypeItemViewed, "s1", nil)
	require.NoError(t, db.AppendEvent(old))
	require.NoError(t, db.AppendEvent(recent))
	require.NoError(t, db.PutDailyUsage(DailyUsage{Date: "2025-01-01"}))

	n, err := db.PurgeBefore(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	row, err := db.GetDailyUsage("2025-01-01")
	require.NoError(t, err)
	assert.Nil(t, row)
}
