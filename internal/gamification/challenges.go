package gamification

import (
	"errors"
	"fmt"
	"time"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// challengeTemplate is a fixed daily challenge blueprint.
type challengeTemplate struct {
	key      string
	title    string
	target   float64
	unit     string
	priority store.GoalPriority
}

var challengeTemplates = []challengeTemplate{
	{"voice", "Capture 3 voice notes", 3, "notes", store.PriorityMedium},
	{"search", "Run 5 searches", 5, "searches", store.PriorityLow},
	{"focus", "Spend 15 minutes in the app", 15, "minutes", store.PriorityMedium},
}

// GenerateDailyChallenges creates the day's challenge goals with a deadline
// at the end of the current day. Challenge IDs are deterministic per
// template and date, so calling this more than once per day creates
// nothing new. Returns the challenges created by this call.
func (e *Engine) GenerateDailyChallenges(now time.Time) ([]store.Goal, error) {
	day := now.UTC().Format(store.DateFormat)
	endOfDay := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 23, 59, 59, 0, time.UTC)

	var created []store.Goal
	for _, tpl := range challengeTemplates {
		id := fmt.Sprintf("challenge_%s_%s", tpl.key, day)

		_, err := e.store.GetGoal(id)
		if err == nil {
			continue // already generated today
		}
		if !errors.Is(err, store.ErrNotFound) {
			return created, fmt.Errorf("checking challenge %s: %w", id, err)
		}

		g := store.Goal{
			ID:          id,
			Type:        "daily_challenge",
			Title:       tpl.title,
			Target:      tpl.target,
			Unit:        tpl.unit,
			Deadline:    endOfDay,
			CreatedDate: now.UTC(),
			Status:      store.GoalActive,
			Priority:    tpl.priority,
			Category:    "challenge",
		}
		if err := e.store.PutGoal(g); err != nil {
			return created, fmt.Errorf("persisting challenge %s: %w", id, err)
		}
		if e.tracker != nil {
			e.tracker.TrackGoalCreated(g.ID, g.Type)
		}
		created = append(created, g)
	}
	return created, nil
}

// UpdateChallengesFromUsage advances today's challenge goals from the
// current daily row. Completion flows through UpdateGoalProgress, so XP
// and goal_completed events fire exactly once.
func (e *Engine) UpdateChallengesFromUsage(row store.DailyUsage) error {
	for _, tpl := range challengeTemplates {
		id := fmt.Sprintf("challenge_%s_%s", tpl.key, row.Date)

		g, err := e.store.GetGoal(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return err
		}
		if g.Status != store.GoalActive {
			continue
		}

		var current float64
		switch tpl.key {
		case "voice":
			current = float64(row.ItemsCreated)
		case "search":
			current = float64(row.SearchCount)
		case "focus":
			current = row.TimeSpent
		}

		if _, err := e.UpdateGoalProgress(id, current); err != nil {
			return err
		}
	}
	return nil
}
