package gamification

import (
	"fmt"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/calculator"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// RequirementKind tags what a requirement measures.
type RequirementKind string

const (
	ReqCount  RequirementKind = "count"
	ReqStreak RequirementKind = "streak"
	ReqTime   RequirementKind = "time"
	ReqScore  RequirementKind = "score"
	ReqCombo  RequirementKind = "combo"
)

// Requirement is one condition of an achievement. All requirements of a
// definition must hold at once (AND semantics).
type Requirement struct {
	Kind   RequirementKind
	Metric string
	Value  float64
}

// Definition is a static catalog entry. Definitions never change at
// runtime; unlocks are persisted separately and never re-evaluated.
type Definition struct {
	ID           string
	Title        string
	Description  string
	Requirements []Requirement
	XPReward     int
	Rarity       string
	Hidden       bool
}

// Catalog is the full achievement catalog.
var Catalog = []Definition{
	{
		ID: "first_note", Title: "First Note",
		Description: "Create your first note.",
		Requirements: []Requirement{{Kind: ReqCount, Metric: "items_created", Value: 1}},
		XPReward: 50, Rarity: "common",
	},
	{
		ID: "voice_veteran", Title: "Voice Veteran",
		Description: "Record 50 voice notes.",
		Requirements: []Requirement{{Kind: ReqCount, Metric: "voice_recordings", Value: 50}},
		XPReward: 300, Rarity: "rare",
	},
	{
		ID: "paper_trail", Title: "Paper Trail",
		Description: "Process 25 documents.",
		Requirements: []Requirement{{Kind: ReqCount, Metric: "documents", Value: 25}},
		XPReward: 200, Rarity: "uncommon",
	},
	{
		ID: "curious_mind", Title: "Curious Mind",
		Description: "Run 100 searches.",
		Requirements: []Requirement{{Kind: ReqCount, Metric: "searches", Value: 100}},
		XPReward: 150, Rarity: "uncommon",
	},
	{
		ID: "sharp_searcher", Title: "Sharp Searcher",
		Description: "Keep a 90% search hit rate over 20+ searches.",
		Requirements: []Requirement{
			{Kind: ReqCombo, Metric: "search_success_rate", Value: 0.9},
			{Kind: ReqCombo, Metric: "searches", Value: 20},
		},
		XPReward: 250, Rarity: "rare",
	},
	{
		ID: "week_streak", Title: "Seven in a Row",
		Description: "Stay active seven days straight.",
		Requirements: []Requirement{{Kind: ReqStreak, Metric: "streak_days", Value: 7}},
		XPReward: 200, Rarity: "uncommon",
	},
	{
		ID: "month_streak", Title: "Unstoppable",
		Description: "Stay active thirty days straight.",
		Requirements: []Requirement{{Kind: ReqStreak, Metric: "streak_days", Value: 30}},
		XPReward: 1000, Rarity: "legendary",
	},
	{
		ID: "peak_performer", Title: "Peak Performer",
		Description: "Reach a productivity score of 80.",
		Requirements: []Requirement{{Kind: ReqScore, Metric: "productivity_score", Value: 80}},
		XPReward: 300, Rarity: "rare",
	},
	{
		ID: "early_bird", Title: "Early Bird",
		Description: "Use the app before 7 AM.",
		Requirements: []Requirement{{Kind: ReqTime, Metric: "early_usage", Value: 1}},
		XPReward: 100, Rarity: "uncommon", Hidden: true,
	},
	{
		ID: "night_owl", Title: "Night Owl",
		Description: "Use the app after 10 PM.",
		Requirements: []Requirement{{Kind: ReqTime, Metric: "night_usage", Value: 1}},
		XPReward: 100, Rarity: "uncommon", Hidden: true,
	},
	{
		ID: "first_goal", Title: "Goal Setter",
		Description: "Complete your first goal.",
		Requirements: []Requirement{{Kind: ReqCount, Metric: "goals_completed", Value: 1}},
		XPReward: 100, Rarity: "common",
	},
	{
		ID: "goal_getter", Title: "Goal Getter",
		Description: "Complete ten goals.",
		Requirements: []Requirement{{Kind: ReqCount, Metric: "goals_completed", Value: 10}},
		XPReward: 500, Rarity: "rare",
	},
	{
		ID: "level_5", Title: "Seasoned",
		Description: "Reach level 5.",
		Requirements: []Requirement{{Kind: ReqScore, Metric: "level", Value: 5}},
		XPReward: 400, Rarity: "rare",
	},
}

func findDefinition(id string) *Definition {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}

// Metrics is the evaluation context for achievement requirements.
type Metrics struct {
	Snapshot       store.UserAnalytics
	Events         []event.Event
	GoalsCompleted int
}

// resolveMetric maps a requirement's metric name to its current value.
// The switch is exhaustive over the metric names used in the catalog;
// anything else is an error, caught per-definition by CheckAchievements.
func resolveMetric(name string, m Metrics) (float64, error) {
	switch name {
	case "items_created":
		return float64(m.Snapshot.TotalNotes), nil
	case "voice_recordings":
		return float64(m.Snapshot.VoiceRecordings), nil
	case "documents":
		return float64(m.Snapshot.DocumentsProcessed), nil
	case "searches":
		return float64(m.Snapshot.TotalSearches), nil
	case "search_success_rate":
		return calculator.Searches(m.Events).SuccessRate, nil
	case "streak_days":
		return float64(m.Snapshot.StreakDays), nil
	case "productivity_score":
		return m.Snapshot.ProductivityScore, nil
	case "level":
		return float64(m.Snapshot.Level), nil
	case "session_count":
		return float64(m.Snapshot.TotalSessions), nil
	case "goals_completed":
		return float64(m.GoalsCompleted), nil
	case "early_usage":
		for _, ev := range m.Events {
			if ev.Timestamp.Hour() < 7 {
				return 1, nil
			}
		}
		return 0, nil
	case "night_usage":
		for _, ev := range m.Events {
			if ev.Timestamp.Hour() >= 22 {
				return 1, nil
			}
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown achievement metric %q", name)
	}
}

// CheckAchievements evaluates the catalog against current metrics and
// unlocks anything newly earned. Unlocks are monotonic: already-unlocked
// ids are skipped before evaluation, and a repeated unlock of the same id
// is an idempotent upsert. One definition's resolver error never blocks
// the rest of the catalog.
func (e *Engine) CheckAchievements(snapshot store.UserAnalytics, events []event.Event) ([]store.Achievement, error) {
	completed, err := e.store.GetGoals(store.GoalCompleted)
	if err != nil {
		return nil, fmt.Errorf("loading completed goals: %w", err)
	}
	m := Metrics{Snapshot: snapshot, Events: events, GoalsCompleted: len(completed)}

	var unlocked []store.Achievement
	for i := range Catalog {
		def := &Catalog[i]

		has, err := e.store.HasAchievement(def.ID)
		if err != nil {
			e.log.WithError(err).WithField("achievement", def.ID).Warn("unlock lookup failed")
			continue
		}
		if has {
			continue
		}

		met := true
		for _, req := range def.Requirements {
			value, err := resolveMetric(req.Metric, m)
			if err != nil {
				e.log.WithError(err).WithField("achievement", def.ID).Warn("requirement evaluation failed")
				met = false
				break
			}
			if value < req.Value {
				met = false
				break
			}
		}
		if !met {
			continue
		}

		if a := e.unlock(def); a != nil {
			unlocked = append(unlocked, *a)
		}
	}
	return unlocked, nil
}

// unlock persists an achievement and emits achievement_unlocked. Returns
// nil when the achievement was already unlocked or persistence failed.
func (e *Engine) unlock(def *Definition) *store.Achievement {
	if def == nil {
		return nil
	}
	has, err := e.store.HasAchievement(def.ID)
	if err != nil || has {
		return nil
	}
	a := store.Achievement{
		ID:         def.ID,
		UnlockedAt: e.now().UTC(),
		XPAwarded:  def.XPReward,
	}
	if err := e.store.PutAchievement(a); err != nil {
		e.log.WithError(err).WithField("achievement", def.ID).Warn("persisting unlock failed")
		return nil
	}
	if e.tracker != nil {
		e.tracker.TrackAchievementUnlocked(a.ID, a.XPAwarded)
	}
	return &a
}
