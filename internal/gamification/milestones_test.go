package gamification

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

func TestCheckMilestonesFiresCrossedThresholds(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	fired, err := eng.CheckMilestones(store.UserAnalytics{TotalNotes: 55, StreakDays: 3})
	require.NoError(t, err)

	keys := make([]string, 0, len(fired))
	for _, m := range fired {
		keys = append(keys, m.Type+"/"+strconv.Itoa(m.Threshold))
	}
	require.ElementsMatch(t, []string{"total_items/10", "total_items/50", "streak/3"}, keys)
}

func TestCheckMilestonesFiresOnce(t *testing.T) {
	eng, db, _ := newTestEngine(t)

	fired, err := eng.CheckMilestones(store.UserAnalytics{TotalNotes: 12})
	require.NoError(t, err)
	require.Len(t, fired, 1)

	// Same snapshot again: nothing new.
	fired, err = eng.CheckMilestones(store.UserAnalytics{TotalNotes: 12})
	require.NoError(t, err)
	require.Empty(t, fired)

	// Higher count fires only the newly crossed threshold.
	fired, err = eng.CheckMilestones(store.UserAnalytics{TotalNotes: 60})
	require.NoError(t, err)
	require.Len(t, fired, 1)
	require.Equal(t, 50, fired[0].Threshold)

	all, err := db.GetMilestones()
	require.NoError(t, err)
	require.Len(t, all, 2)
}
