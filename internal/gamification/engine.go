package gamification

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// Store is the slice of the event store the engine needs.
type Store interface {
	GetGoal(id string) (*store.Goal, error)
	GetGoals(status store.GoalStatus) ([]store.Goal, error)
	PutGoal(g store.Goal) error
	HasAchievement(id string) (bool, error)
	PutAchievement(a store.Achievement) error
	GetAchievements() ([]store.Achievement, error)
	HasMilestone(typ string, threshold int) (bool, error)
	PutMilestone(m store.Milestone) error
	QueryEvents(f store.Filter) ([]event.Event, error)
}

// Tracker emits gamification events back into the collector pipeline.
type Tracker interface {
	TrackGoalCreated(goalID, goalType string)
	TrackGoalCompleted(goalID string, xpAwarded int)
	TrackAchievementUnlocked(achievementID string, xpAwarded int)
}

// Engine owns no state of its own: it orchestrates goal, achievement, and
// milestone transitions over the store's data.
type Engine struct {
	store    Store
	tracker  Tracker
	leveling LevelingStrategy
	log      *logrus.Entry
	now      func() time.Time
}

// New creates an Engine. tracker may be nil when event emission is not
// wanted (e.g. offline recomputation).
func New(st Store, tracker Tracker, leveling LevelingStrategy, logger *logrus.Logger) *Engine {
	if leveling == nil {
		leveling = SquareRootLeveling{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Engine{
		store:    st,
		tracker:  tracker,
		leveling: leveling,
		log:      logger.WithField("component", "gamification"),
		now:      time.Now,
	}
}

// Leveling returns the engine's configured leveling strategy.
func (e *Engine) Leveling() LevelingStrategy {
	return e.leveling
}

// GoalParams describes a goal to create.
type GoalParams struct {
	Type        string
	Title       string
	Description string
	Target      float64
	Unit        string
	Deadline    time.Time
	Priority    store.GoalPriority
	Category    string
}

// CreateGoal creates an active goal and emits goal_created.
func (e *Engine) CreateGoal(p GoalParams) (*store.Goal, error) {
	if p.Target <= 0 {
		return nil, fmt.Errorf("goal target must be positive, got %v", p.Target)
	}
	if p.Priority == "" {
		p.Priority = store.PriorityMedium
	}

	g := store.Goal{
		ID:          uuid.NewString(),
		Type:        p.Type,
		Title:       p.Title,
		Description: p.Description,
		Target:      p.Target,
		Unit:        p.Unit,
		Deadline:    p.Deadline,
		CreatedDate: e.now().UTC(),
		Status:      store.GoalActive,
		Priority:    p.Priority,
		Category:    p.Category,
	}
	if err := e.store.PutGoal(g); err != nil {
		return nil, fmt.Errorf("persisting goal: %w", err)
	}
	if e.tracker != nil {
		e.tracker.TrackGoalCreated(g.ID, g.Type)
	}
	return &g, nil
}

// UpdateGoalProgress sets a goal's current value. When the value reaches
// the target and the goal is still active, it transitions to completed —
// exactly once — awarding XP and emitting goal_completed. Calling again
// with the same or a higher value changes nothing: completed is terminal.
func (e *Engine) UpdateGoalProgress(goalID string, current float64) (*store.Goal, error) {
	g, err := e.store.GetGoal(goalID)
	if err != nil {
		return nil, fmt.Errorf("loading goal %s: %w", goalID, err)
	}
	if g.Status != store.GoalActive {
		return g, nil
	}

	g.Current = current
	if g.Current >= g.Target {
		g.Status = store.GoalCompleted
		xp := GoalXP(g.Target, string(g.Priority))
		if err := e.store.PutGoal(*g); err != nil {
			return nil, fmt.Errorf("completing goal %s: %w", goalID, err)
		}
		if e.tracker != nil {
			e.tracker.TrackGoalCompleted(g.ID, xp)
		}
		e.checkGoalCountAchievements()
		return g, nil
	}

	if err := e.store.PutGoal(*g); err != nil {
		return nil, fmt.Errorf("updating goal %s: %w", goalID, err)
	}
	return g, nil
}

// PauseGoal moves an active goal to paused. Paused is terminal for the
// instance.
func (e *Engine) PauseGoal(goalID string) error {
	return e.transition(goalID, store.GoalPaused)
}

// FailGoal moves an active goal to failed.
func (e *Engine) FailGoal(goalID string) error {
	return e.transition(goalID, store.GoalFailed)
}

var errNotActive = errors.New("goal is not active")

func (e *Engine) transition(goalID string, to store.GoalStatus) error {
	g, err := e.store.GetGoal(goalID)
	if err != nil {
		return fmt.Errorf("loading goal %s: %w", goalID, err)
	}
	if g.Status != store.GoalActive {
		return fmt.Errorf("%w: %s is %s", errNotActive, goalID, g.Status)
	}
	g.Status = to
	return e.store.PutGoal(*g)
}

// ExpireOverdueGoals fails active goals whose deadline has passed. Returns
// the number of goals expired.
func (e *Engine) ExpireOverdueGoals() (int, error) {
	active, err := e.store.GetGoals(store.GoalActive)
	if err != nil {
		return 0, err
	}
	expired := 0
	now := e.now().UTC()
	for _, g := range active {
		if !g.Deadline.IsZero() && g.Deadline.Before(now) {
			g.Status = store.GoalFailed
			if err := e.store.PutGoal(g); err != nil {
				return expired, err
			}
			expired++
		}
	}
	return expired, nil
}

// checkGoalCountAchievements unlocks the goal-count achievements after a
// completion. Failures are logged: a miscount here must not fail the
// completion itself.
func (e *Engine) checkGoalCountAchievements() {
	completed, err := e.store.GetGoals(store.GoalCompleted)
	if err != nil {
		e.log.WithError(err).Warn("counting completed goals")
		return
	}
	n := len(completed)
	if n >= 1 {
		e.unlock(findDefinition("first_goal"))
	}
	if n >= 10 {
		e.unlock(findDefinition("goal_getter"))
	}
}

// AwardedXP sums XP from unlocked achievements and completed goals.
func (e *Engine) AwardedXP() (int, error) {
	total := 0

	achievements, err := e.store.GetAchievements()
	if err != nil {
		return 0, fmt.Errorf("loading achievements: %w", err)
	}
	for _, a := range achievements {
		total += a.XPAwarded
	}

	completed, err := e.store.GetGoals(store.GoalCompleted)
	if err != nil {
		return 0, fmt.Errorf("loading completed goals: %w", err)
	}
	for _, g := range completed {
		total += GoalXP(g.Target, string(g.Priority))
	}
	return total, nil
}
