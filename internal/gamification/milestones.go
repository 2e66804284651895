package gamification

import (
	"fmt"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// Milestone checkpoints. Each (type, threshold) pair fires at most once.
var (
	contentMilestones = []int{10, 50, 100, 500}
	streakMilestones  = []int{3, 7, 30}
)

// CheckMilestones fires any checkpoints the snapshot has crossed that have
// not fired before, and returns the newly fired ones.
func (e *Engine) CheckMilestones(snapshot store.UserAnalytics) ([]store.Milestone, error) {
	var fired []store.Milestone

	fire := func(typ string, threshold, value int, title string) error {
		if value < threshold {
			return nil
		}
		has, err := e.store.HasMilestone(typ, threshold)
		if err != nil {
			return err
		}
		if has {
			return nil
		}
		m := store.Milestone{
			Type:      typ,
			Threshold: threshold,
			Title:     title,
			FiredAt:   e.now().UTC(),
		}
		if err := e.store.PutMilestone(m); err != nil {
			return err
		}
		fired = append(fired, m)
		return nil
	}

	for _, threshold := range contentMilestones {
		title := fmt.Sprintf("%d items in your notebook", threshold)
		if err := fire("total_items", threshold, snapshot.TotalNotes, title); err != nil {
			return fired, err
		}
	}
	for _, threshold := range streakMilestones {
		title := fmt.Sprintf("%d-day streak", threshold)
		if err := fire("streak", threshold, snapshot.StreakDays, title); err != nil {
			return fired, err
		}
	}
	return fired, nil
}
