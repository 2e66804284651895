package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

type recordingTracker struct {
	goalsCreated   []string
	goalsCompleted map[string]int
	achievements   map[string]int
}

func newRecordingTracker() *recordingTracker {
	return &recordingTracker{
		goalsCompleted: map[string]int{},
		achievements:   map[string]int{},
	}
}

func (t *recordingTracker) TrackGoalCreated(goalID, goalType string) {
	t.goalsCreated = append(t.goalsCreated, goalID)
}

func (t *recordingTracker) TrackGoalCompleted(goalID string, xpAwarded int) {
	t.goalsCompleted[goalID] += xpAwarded
}

func (t *recordingTracker) TrackAchievementUnlocked(achievementID string, xpAwarded int) {
	t.achievements[achievementID] += xpAwarded
}

func newTestEngine(t *testing.T) (*Engine, *store.DB, *recordingTracker) {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tracker := newRecordingTracker()
	return New(db, tracker, nil, nil), db, tracker
}

func TestCreateGoalRejectsNonPositiveTarget(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	_, err := eng.CreateGoal(GoalParams{Title: "nope", Target: 0})
	require.Error(t, err)
	_, err = eng.CreateGoal(GoalParams{Title: "nope", Target: -3})
	require.Error(t, err)
}

func TestCreateGoalDefaults(t *testing.T) {
	eng, db, tracker := newTestEngine(t)

	g, err := eng.CreateGoal(GoalParams{Type: "weekly_notes", Title: "Ten notes", Target: 10})
	require.NoError(t, err)
	require.Equal(t, store.GoalActive, g.Status)
	require.Equal(t, store.PriorityMedium, g.Priority)
	require.Equal(t, []string{g.ID}, tracker.goalsCreated)

	stored, err := db.GetGoal(g.ID)
	require.NoError(t, err)
	require.Equal(t, g.Title, stored.Title)
}

func TestGoalCompletionAwardsXPOnce(t *testing.T) {
	eng, _, tracker := newTestEngine(t)

	g, err := eng.CreateGoal(GoalParams{Title: "Fifty searches", Target: 50, Priority: store.PriorityHigh})
	require.NoError(t, err)

	got, err := eng.UpdateGoalProgress(g.ID, 30)
	require.NoError(t, err)
	require.Equal(t, store.GoalActive, got.Status)
	require.Empty(t, tracker.goalsCompleted)

	got, err = eng.UpdateGoalProgress(g.ID, 50)
	require.NoError(t, err)
	require.Equal(t, store.GoalCompleted, got.Status)

	// target 50 -> base 5, high priority -> x1.5
	require.Equal(t, 750, tracker.goalsCompleted[g.ID])

	// Completed is terminal: further updates change nothing and award
	// nothing again.
	got, err = eng.UpdateGoalProgress(g.ID, 80)
	require.NoError(t, err)
	require.Equal(t, store.GoalCompleted, got.Status)
	require.Equal(t, float64(50), got.Current)
	require.Equal(t, 750, tracker.goalsCompleted[g.ID])
}

func TestPauseAndFailRequireActive(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	g, err := eng.CreateGoal(GoalParams{Title: "p", Target: 5})
	require.NoError(t, err)
	require.NoError(t, eng.PauseGoal(g.ID))
	require.ErrorIs(t, eng.FailGoal(g.ID), errNotActive)

	// Progress on a paused goal is a no-op, not an error.
	got, err := eng.UpdateGoalProgress(g.ID, 5)
	require.NoError(t, err)
	require.Equal(t, store.GoalPaused, got.Status)
	require.Equal(t, float64(0), got.Current)
}

func TestExpireOverdueGoals(t *testing.T) {
	eng, db, _ := newTestEngine(t)
	eng.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

	overdue, err := eng.CreateGoal(GoalParams{
		Title: "late", Target: 5,
		Deadline: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	current, err := eng.CreateGoal(GoalParams{
		Title: "on time", Target: 5,
		Deadline: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	open, err := eng.CreateGoal(GoalParams{Title: "no deadline", Target: 5})
	require.NoError(t, err)

	n, err := eng.ExpireOverdueGoals()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	g, err := db.GetGoal(overdue.ID)
	require.NoError(t, err)
	require.Equal(t, store.GoalFailed, g.Status)
	for _, id := range []string{current.ID, open.ID} {
		g, err := db.GetGoal(id)
		require.NoError(t, err)
		require.Equal(t, store.GoalActive, g.Status)
	}
}

func TestFirstGoalAchievementOnCompletion(t *testing.T) {
	eng, db, tracker := newTestEngine(t)

	g, err := eng.CreateGoal(GoalParams{Title: "one note", Target: 1})
	require.NoError(t, err)
	_, err = eng.UpdateGoalProgress(g.ID, 1)
	require.NoError(t, err)

	has, err := db.HasAchievement("first_goal")
	require.NoError(t, err)
	require.True(t, has)
	require.Equal(t, 100, tracker.achievements["first_goal"])
}

func TestAwardedXPSumsGoalsAndAchievements(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	g, err := eng.CreateGoal(GoalParams{Title: "low", Target: 10, Priority: store.PriorityLow})
	require.NoError(t, err)
	_, err = eng.UpdateGoalProgress(g.ID, 10)
	require.NoError(t, err)

	// Completion unlocked first_goal (100 XP); the goal itself is worth
	// round(100 * 1 * 1.0) = 100.
	total, err := eng.AwardedXP()
	require.NoError(t, err)
	require.Equal(t, 200, total)
}
