package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/calculator"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// Range selects a reporting window ending now.
type Range string

const (
	RangeDay     Range = "24h"
	RangeWeek    Range = "7d"
	RangeMonth   Range = "30d"
	RangeQuarter Range = "90d"
	RangeYear    Range = "1y"
	RangeAll     Range = "all"
)

// Ranges lists the accepted range tokens.
func Ranges() []Range {
	return []Range{RangeDay, RangeWeek, RangeMonth, RangeQuarter, RangeYear, RangeAll}
}

func (r Range) start(now time.Time) (time.Time, error) {
	switch r {
	case RangeDay:
		return now.Add(-24 * time.Hour), nil
	case RangeWeek:
		return now.AddDate(0, 0, -7), nil
	case RangeMonth:
		return now.AddDate(0, 0, -30), nil
	case RangeQuarter:
		return now.AddDate(0, 0, -90), nil
	case RangeYear:
		return now.AddDate(-1, 0, 0), nil
	case RangeAll:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("unknown range %q", r)
	}
}

// Metrics is a windowed usage report.
type Metrics struct {
	Range            Range                    `json:"range"`
	From             time.Time                `json:"from,omitempty"`
	To               time.Time                `json:"to"`
	TotalEvents      int                      `json:"total_events"`
	ItemsCreated     int                      `json:"items_created"`
	Searches         int                      `json:"searches"`
	RecordingMinutes float64                  `json:"recording_minutes"`
	TimeSpentMinutes float64                  `json:"time_spent_minutes"`
	AvgDailyScore    float64                  `json:"avg_daily_score"`
	Trend            calculator.Trend         `json:"trend"`
	Weekly           []calculator.WeeklyUsage `json:"weekly,omitempty"`
}

// Metrics reports usage for the given range. The daily rows and event count
// are fetched concurrently.
func (s *Service) Metrics(ctx context.Context, r Range) (*Metrics, error) {
	now := s.now().UTC()
	from, err := r.start(now)
	if err != nil {
		return nil, err
	}

	var (
		rows   []store.DailyUsage
		events []event.Event
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := ""
		if !from.IsZero() {
			start = from.Format(store.DateFormat)
		}
		var err error
		rows, err = s.db.GetDailyUsageRange(start, now.Format(store.DateFormat))
		if err != nil {
			return fmt.Errorf("loading daily rows: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = s.db.QueryEvents(store.Filter{From: from})
		if err != nil {
			return fmt.Errorf("querying events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := &Metrics{Range: r, From: from, To: now, TotalEvents: len(events)}
	scores := make([]float64, 0, len(rows))
	for _, row := range rows {
		m.ItemsCreated += row.ItemsCreated
		m.Searches += row.SearchCount
		m.RecordingMinutes += row.RecordingMinutes
		m.TimeSpentMinutes += row.TimeSpent
		scores = append(scores, row.ProductivityScore)
	}
	if len(rows) > 0 {
		m.AvgDailyScore = calculator.Mean(scores)
	}
	m.Trend = calculator.TrendOf(scores)
	if r != RangeDay && r != RangeWeek {
		m.Weekly = calculator.WeeklyRollup(rows)
	}
	return m, nil
}
