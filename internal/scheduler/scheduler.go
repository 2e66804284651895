// Package scheduler runs the background maintenance jobs: nightly snapshot
// recomputation, midnight challenge rollover, and the weekly retention
// sweep.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/analytics"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/gamification"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

const (
	nightlySpec   = "0 2 * * *" // recompute at 02:00
	rolloverSpec  = "0 0 * * *" // challenges + goal expiry at midnight
	retentionSpec = "0 3 * * 0" // purge Sundays at 03:00

	// DefaultRetentionDays is how long raw events are kept before the
	// weekly sweep drops them. Derived records are unaffected.
	DefaultRetentionDays = 365
)

// Scheduler owns the cron runner and its jobs.
type Scheduler struct {
	cron          *cron.Cron
	svc           *analytics.Service
	engine        *gamification.Engine
	db            *store.DB
	retentionDays int
	log           *logrus.Entry
	now           func() time.Time
}

// New wires the maintenance jobs. retentionDays <= 0 falls back to the
// default.
func New(svc *analytics.Service, engine *gamification.Engine, db *store.DB, retentionDays int, logger *logrus.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	s := &Scheduler{
		cron:          cron.New(),
		svc:           svc,
		engine:        engine,
		db:            db,
		retentionDays: retentionDays,
		log:           logger.WithField("component", "scheduler"),
		now:           time.Now,
	}

	jobs := []struct {
		spec string
		name string
		run  func() error
	}{
		{nightlySpec, "recompute", s.runRecompute},
		{rolloverSpec, "rollover", s.runRollover},
		{retentionSpec, "retention", s.runRetention},
	}
	for _, j := range jobs {
		j := j
		if _, err := s.cron.AddFunc(j.spec, func() {
			if err := j.run(); err != nil {
				s.log.WithError(err).WithField("job", j.name).Error("scheduled job failed")
			}
		}); err != nil {
			return nil, fmt.Errorf("scheduling %s: %w", j.name, err)
		}
	}
	return s, nil
}

// Start begins running jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Debug("scheduler started")
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Debug("scheduler stopped")
}

func (s *Scheduler) runRecompute() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	snap, err := s.svc.Recompute(ctx)
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"level": snap.Level, "xp": snap.XP}).Info("nightly recompute done")
	return nil
}

// runRollover expires overdue goals, then generates the new day's
// challenges.
func (s *Scheduler) runRollover() error {
	expired, err := s.engine.ExpireOverdueGoals()
	if err != nil {
		return fmt.Errorf("expiring goals: %w", err)
	}
	created, err := s.engine.GenerateDailyChallenges(s.now())
	if err != nil {
		return fmt.Errorf("generating challenges: %w", err)
	}
	s.log.WithFields(logrus.Fields{"expired": expired, "challenges": len(created)}).Info("daily rollover done")
	return nil
}

func (s *Scheduler) runRetention() error {
	cutoff := s.now().UTC().AddDate(0, 0, -s.retentionDays)
	n, err := s.db.PurgeBefore(cutoff)
	if err != nil {
		return fmt.Errorf("purging events before %s: %w", cutoff.Format(store.DateFormat), err)
	}
	s.log.WithField("purged", n).Info("retention sweep done")
	return nil
}
