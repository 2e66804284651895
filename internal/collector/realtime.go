package collector

import (
	"github.com/kushagra0526/VoiceNotebook-QA/internal/calculator"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// Apply folds a single event into its day's usage row, creating the row
// lazily. The collector calls it on every tracked event; one-shot writers
// (the CLI's event injection) call it directly so buffered and direct
// paths share the same counter rules.
func Apply(st Store, ev event.Event) error {
	switch ev.Type {
	case event.TypeVoiceRecordingCompleted,
		event.TypeFileUploadCompleted,
		event.TypeSearchPerformed,
		event.TypeItemDeleted,
		event.TypeSessionStarted:
	default:
		return nil
	}

	date := ev.Timestamp.Format(store.DateFormat)
	row, err := st.GetDailyUsage(date)
	if err != nil {
		return err
	}
	if row == nil {
		row = &store.DailyUsage{Date: date}
	}

	switch ev.Type {
	case event.TypeVoiceRecordingCompleted:
		row.RecordingMinutes += ev.DurationSeconds() / 60
		row.ItemsCreated++
	case event.TypeFileUploadCompleted:
		row.DocumentsProcessed++
		row.ItemsCreated++
	case event.TypeSearchPerformed:
		row.SearchCount++
	case event.TypeItemDeleted:
		row.ItemsDeleted++
	case event.TypeSessionStarted:
		row.SessionsCount++
	}

	// Time spent accrues from the per-event durations above. Session
	// markers only maintain the session count; folding session length in
	// would count the same minutes twice.
	if ev.Type != event.TypeSessionStarted {
		row.TimeSpent += ev.DurationSeconds() / 60
	}
	row.ProductivityScore = calculator.DayScore(*row)

	return st.PutDailyUsage(*row)
}

// updateRealTime applies an event's effect to today's usage row immediately,
// without waiting for a flush cycle. Failures are logged, not surfaced: the
// event itself is still in the buffer and the next matching event rebuilds
// the row.
func (c *Collector) updateRealTime(ev event.Event) {
	if err := Apply(c.store, ev); err != nil {
		c.log.WithError(err).Warn("real-time daily usage update failed")
	}
}
