package collector

import (
	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
)

// Typed tracking helpers: the contract the UI/action layer is written
// against. Each maps one application action onto a buffered event.

// TrackVoiceRecordingStart records the start of a voice capture.
func (c *Collector) TrackVoiceRecordingStart() {
	c.Track(event.TypeVoiceRecordingStarted, nil)
}

// TrackVoiceRecordingComplete records a finished voice capture.
// Duration is in seconds; transcriptLength is in characters.
func (c *Collector) TrackVoiceRecordingComplete(durationSeconds float64, transcriptLength int, quality string) {
	c.Track(event.TypeVoiceRecordingCompleted, map[string]any{
		"duration":          durationSeconds,
		"transcript_length": transcriptLength,
		"quality":           quality,
	})
}

// TrackVoiceRecordingFailed records a failed voice capture.
func (c *Collector) TrackVoiceRecordingFailed(reason string) {
	c.Track(event.TypeVoiceRecordingFailed, map[string]any{"reason": reason})
}

// TrackFileUploadStart records the start of a file upload.
func (c *Collector) TrackFileUploadStart(fileType string, sizeBytes int64) {
	c.Track(event.TypeFileUploadStarted, map[string]any{
		"file_type": fileType,
		"size":      sizeBytes,
	})
}

// TrackFileUploadComplete records a processed file upload.
func (c *Collector) TrackFileUploadComplete(fileType string, sizeBytes int64, processingSeconds float64, textLength int) {
	c.Track(event.TypeFileUploadCompleted, map[string]any{
		"file_type":   fileType,
		"size":        sizeBytes,
		"duration":    processingSeconds,
		"text_length": textLength,
	})
}

// TrackFileUploadFailed records a failed file upload.
func (c *Collector) TrackFileUploadFailed(fileType, reason string) {
	c.Track(event.TypeFileUploadFailed, map[string]any{
		"file_type": fileType,
		"reason":    reason,
	})
}

// TrackSearchStart marks the start of a search so that the completion event
// can carry the elapsed duration.
func (c *Collector) TrackSearchStart(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingSearch[query] = c.now().UTC()
}

// TrackSearchComplete records a performed search with its result count.
func (c *Collector) TrackSearchComplete(query string, resultCount int, searchType string) {
	var durationSeconds float64
	c.mu.Lock()
	if start, ok := c.pendingSearch[query]; ok {
		durationSeconds = c.now().UTC().Sub(start).Seconds()
		delete(c.pendingSearch, query)
	}
	c.mu.Unlock()

	c.Track(event.TypeSearchPerformed, map[string]any{
		"query":        query,
		"result_count": resultCount,
		"search_type":  searchType,
		"duration":     durationSeconds,
	})
}

// TrackSearchResultClicked records a click on a search result.
func (c *Collector) TrackSearchResultClicked(query string, position int) {
	c.Track(event.TypeSearchResultClicked, map[string]any{
		"query":    query,
		"position": position,
	})
}

// TrackContentView records a note/document being opened.
func (c *Collector) TrackContentView(itemID, contentType string) {
	c.Track(event.TypeItemViewed, map[string]any{
		"item_id":      itemID,
		"content_type": contentType,
	})
}

// TrackContentDelete records a note/document being deleted.
func (c *Collector) TrackContentDelete(itemID, contentType string) {
	c.Track(event.TypeItemDeleted, map[string]any{
		"item_id":      itemID,
		"content_type": contentType,
	})
}

// TrackFeatureUsage records use of a named feature.
func (c *Collector) TrackFeatureUsage(name, category, context string) {
	c.Track(event.TypeFeatureUsed, map[string]any{
		"feature":  name,
		"category": category,
		"context":  context,
	})
}

// TrackGoalCreated records a goal being created.
func (c *Collector) TrackGoalCreated(goalID, goalType string) {
	c.Track(event.TypeGoalCreated, map[string]any{
		"goal_id":   goalID,
		"goal_type": goalType,
	})
}

// TrackGoalCompleted records a goal completion and the XP it awarded.
func (c *Collector) TrackGoalCompleted(goalID string, xpAwarded int) {
	c.Track(event.TypeGoalCompleted, map[string]any{
		"goal_id": goalID,
		"xp":      xpAwarded,
	})
}

// TrackAchievementUnlocked records an achievement unlock.
func (c *Collector) TrackAchievementUnlocked(achievementID string, xpAwarded int) {
	c.Track(event.TypeAchievementUnlocked, map[string]any{
		"achievement_id": achievementID,
		"xp":             xpAwarded,
	})
}

// TrackError records a non-fatal application error.
func (c *Collector) TrackError(context string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	c.Track(event.TypeErrorOccurred, map[string]any{
		"context": context,
		"error":   msg,
	})
}
