package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

func TestGenerateDailyChallengesIsIdempotent(t *testing.T) {
	eng, db, _ := newTestEngine(t)
	now := time.Date(2026, 5, 4, 9, 15, 0, 0, time.UTC)

	created, err := eng.GenerateDailyChallenges(now)
	require.NoError(t, err)
	require.Len(t, created, 3)

	for _, g := range created {
		require.Equal(t, store.GoalActive, g.Status)
		require.Equal(t, "daily_challenge", g.Type)
		require.Equal(t, "challenge", g.Category)
		require.Equal(t, 4, g.Deadline.Day())
		require.Equal(t, 23, g.Deadline.Hour())
	}

	// Second call the same day creates nothing new.
	again, err := eng.GenerateDailyChallenges(now.Add(6 * time.Hour))
	require.NoError(t, err)
	require.Empty(t, again)

	goals, err := db.GetGoals("")
	require.NoError(t, err)
	require.Len(t, goals, 3)

	// The next day gets a fresh set alongside the stale one.
	created, err = eng.GenerateDailyChallenges(now.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, created, 3)
}

func TestUpdateChallengesFromUsage(t *testing.T) {
	eng, db, tracker := newTestEngine(t)
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

	_, err := eng.GenerateDailyChallenges(now)
	require.NoError(t, err)

	row := store.DailyUsage{
		Date:         "2026-05-04",
		ItemsCreated: 3,
		SearchCount:  2,
		TimeSpent:    8,
	}
	require.NoError(t, eng.UpdateChallengesFromUsage(row))

	voice, err := db.GetGoal("challenge_voice_2026-05-04")
	require.NoError(t, err)
	require.Equal(t, store.GoalCompleted, voice.Status)
	require.Contains(t, tracker.goalsCompleted, voice.ID)

	search, err := db.GetGoal("challenge_search_2026-05-04")
	require.NoError(t, err)
	require.Equal(t, store.GoalActive, search.Status)
	require.Equal(t, float64(2), search.Current)

	// A later row for the same day only advances what is still active;
	// the completed challenge stays completed and awards nothing extra.
	awarded := tracker.goalsCompleted[voice.ID]
	row.ItemsCreated = 9
	row.SearchCount = 5
	require.NoError(t, eng.UpdateChallengesFromUsage(row))

	voice, err = db.GetGoal("challenge_voice_2026-05-04")
	require.NoError(t, err)
	require.Equal(t, float64(3), voice.Current)
	require.Equal(t, awarded, tracker.goalsCompleted[voice.ID])

	search, err = db.GetGoal("challenge_search_2026-05-04")
	require.NoError(t, err)
	require.Equal(t, store.GoalCompleted, search.Status)
}

func TestUpdateChallengesSkipsMissingDay(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	// No challenges generated for this date: nothing to do, no error.
	require.NoError(t, eng.UpdateChallengesFromUsage(store.DailyUsage{Date: "2026-05-09"}))
}
