// Package analytics recomputes the aggregate usage snapshot and serves
// derived views on top of the event store.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/calculator"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/gamification"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

const (
	// eventWindowDays bounds the event scan feeding a recompute.
	eventWindowDays = 90
	// dailyWindowDays bounds the daily-row scan feeding a recompute.
	dailyWindowDays = 30

	topSearchTermCount = 5
)

// Service recomputes and serves the aggregate analytics snapshot.
type Service struct {
	db     *store.DB
	engine *gamification.Engine
	log    *logrus.Entry
	now    func() time.Time
}

// New creates a Service. The engine supplies XP totals and the leveling
// strategy, and receives achievement/milestone checks after each recompute.
func New(db *store.DB, engine *gamification.Engine, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		db:     db,
		engine: engine,
		log:    logger.WithField("component", "analytics"),
		now:    time.Now,
	}
}

// Recompute rebuilds every snapshot field from the recent event and daily-row
// windows and replaces the stored snapshot wholesale. If anything fails
// before the write, the previous snapshot stays in place and the error is
// returned. Achievement, milestone, insight, and recommendation refreshes
// run after a successful write; their failures are logged, not returned, so
// a bad catalog entry cannot block the snapshot itself.
func (s *Service) Recompute(ctx context.Context) (*store.UserAnalytics, error) {
	now := s.now().UTC()

	var (
		events []event.Event
		rows   []store.DailyUsage
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.db.QueryEvents(store.Filter{From: now.AddDate(0, 0, -eventWindowDays)})
		if err != nil {
			return fmt.Errorf("querying events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		start := now.AddDate(0, 0, -dailyWindowDays).Format(store.DateFormat)
		end := now.Format(store.DateFormat)
		var err error
		rows, err = s.db.GetDailyUsageRange(start, end)
		if err != nil {
			return fmt.Errorf("loading daily rows: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := s.buildSnapshot(now, rows, events)

	awarded, err := s.engine.AwardedXP()
	if err != nil {
		return nil, fmt.Errorf("summing awarded xp: %w", err)
	}
	snap.XP = gamification.BaseXP(snap.TotalNotes, len(events)) + awarded
	snap.Level = s.engine.Leveling().Level(snap.XP)

	if err := s.db.PutSnapshot(snap); err != nil {
		return nil, fmt.Errorf("writing snapshot: %w", err)
	}

	s.refreshGamification(*snap, events)
	s.refreshAdvice(now, rows, events)

	s.log.WithFields(logrus.Fields{
		"events": len(events),
		"level":  snap.Level,
		"xp":     snap.XP,
	}).Debug("snapshot recomputed")
	return snap, nil
}

// buildSnapshot derives every calculator-backed snapshot field. XP and Level
// are filled in by the caller.
func (s *Service) buildSnapshot(now time.Time, rows []store.DailyUsage, events []event.Event) *store.UserAnalytics {
	var voice, docs, searches, deleted int
	var titles []string
	for _, ev := range events {
		switch ev.Type {
		case event.TypeVoiceRecordingCompleted:
			voice++
		case event.TypeFileUploadCompleted:
			docs++
		case event.TypeSearchPerformed:
			searches++
		case event.TypeItemDeleted:
			deleted++
		}
		if t := ev.String("title"); t != "" {
			titles = append(titles, t)
		}
	}

	sessions := calculator.Sessions(events)
	search := calculator.Searches(events)

	return &store.UserAnalytics{
		GeneratedAt:        now,
		TotalNotes:         voice + docs,
		VoiceRecordings:    voice,
		DocumentsProcessed: docs,
		TotalSearches:      searches,
		ItemsDeleted:       deleted,
		TotalSessions:      sessions.Count,
		ProductivityScore:  calculator.ProductivityScore(rows),
		StreakDays:         calculator.CurrentStreak(rows, now),
		PeakUsageHours:     calculator.PeakUsageHours(events),
		MostActiveDay:      calculator.MostActiveDay(rows),
		Categories:         calculator.CountCategories(titles),
		TopSearchTerms:     calculator.TopSearchTerms(events, topSearchTermCount),
		AvgSessionMinutes:  sessions.AvgMinutes,
		SessionsPerDay:     sessions.PerDay,
		SearchSuccessRate:  search.SuccessRate,
	}
}

func (s *Service) refreshGamification(snap store.UserAnalytics, events []event.Event) {
	if _, err := s.engine.CheckAchievements(snap, events); err != nil {
		s.log.WithError(err).Warn("achievement check failed")
	}
	if _, err := s.engine.CheckMilestones(snap); err != nil {
		s.log.WithError(err).Warn("milestone check failed")
	}
}

// refreshAdvice regenerates insights and recommendations. Generated IDs are
// deterministic, so reruns upsert the same records instead of stacking
// duplicates, and a dismissed recommendation stays dismissed.
func (s *Service) refreshAdvice(now time.Time, rows []store.DailyUsage, events []event.Event) {
	for _, in := range calculator.GenerateInsights(rows, events, now) {
		if err := s.db.PutInsight(in); err != nil {
			s.log.WithError(err).WithField("insight", in.ID).Warn("persisting insight failed")
		}
	}

	goals, err := s.db.GetGoals(store.GoalActive)
	if err != nil {
		s.log.WithError(err).Warn("loading goals for recommendations failed")
		return
	}
	sessions := calculator.Sessions(events)
	search := calculator.Searches(events)
	totalItems := 0
	for _, row := range rows {
		totalItems += row.ItemsCreated
	}
	dismissed, err := s.db.GetRecommendations(true)
	if err != nil {
		s.log.WithError(err).Warn("loading dismissed recommendations failed")
		return
	}
	for _, rec := range calculator.GenerateRecommendations(goals, sessions, search, totalItems, now) {
		if containsRec(dismissed, rec.ID) {
			continue // dismissed: do not resurrect
		}
		if err := s.db.PutRecommendation(rec); err != nil {
			s.log.WithError(err).WithField("recommendation", rec.ID).Warn("persisting recommendation failed")
		}
	}
}

func containsRec(recs []store.Recommendation, id string) bool {
	for _, r := range recs {
		if r.ID == id {
			return true
		}
	}
	return false
}

// Snapshot returns the current snapshot, computing one if none exists yet.
func (s *Service) Snapshot(ctx context.Context) (*store.UserAnalytics, error) {
	snap, err := s.db.GetSnapshot()
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return s.Recompute(ctx)
	}
	return snap, nil
}

// Goals, Insights, Recommendations, Achievements, and Milestones are thin
// pass-throughs so callers outside the storage layer stay on one surface.

func (s *Service) Goals(status store.GoalStatus) ([]store.Goal, error) {
	return s.db.GetGoals(status)
}

func (s *Service) Insights(category string) ([]store.Insight, error) {
	return s.db.GetInsights(category)
}

func (s *Service) Recommendations() ([]store.Recommendation, error) {
	return s.db.GetRecommendations(false)
}

func (s *Service) DismissRecommendation(id string) error {
	return s.db.DismissRecommendation(id)
}

func (s *Service) Achievements() ([]store.Achievement, error) {
	return s.db.GetAchievements()
}

func (s *Service) Milestones() ([]store.Milestone, error) {
	return s.db.GetMilestones()
}
