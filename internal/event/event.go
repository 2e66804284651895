// Package event defines the analytics event model shared by the collector,
// the store, and the gamification engine.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies what kind of user action an event records. The set is
// closed: the store rejects types outside this list.
type Type string

const (
	TypeVoiceRecordingStarted   Type = "voice_recording_started"
	TypeVoiceRecordingCompleted Type = "voice_recording_completed"
	TypeVoiceRecordingFailed    Type = "voice_recording_failed"
	TypeFileUploadStarted       Type = "file_upload_started"
	TypeFileUploadCompleted     Type = "file_upload_completed"
	TypeFileUploadFailed        Type = "file_upload_failed"
	TypeSearchPerformed         Type = "search_performed"
	TypeSearchResultClicked     Type = "search_result_clicked"
	TypeItemViewed              Type = "item_viewed"
	TypeItemDeleted             Type = "item_deleted"
	TypeSessionStarted          Type = "session_started"
	TypeSessionEnded            Type = "session_ended"
	TypeGoalCreated             Type = "goal_created"
	TypeGoalCompleted           Type = "goal_completed"
	TypeAchievementUnlocked     Type = "achievement_unlocked"
	TypeFeatureUsed             Type = "feature_used"
	TypeErrorOccurred           Type = "error_occurred"
)

var validTypes = map[Type]bool{
	TypeVoiceRecordingStarted:   true,
	TypeVoiceRecordingCompleted: true,
	TypeVoiceRecordingFailed:    true,
	TypeFileUploadStarted:       true,
	TypeFileUploadCompleted:     true,
	TypeFileUploadFailed:        true,
	TypeSearchPerformed:         true,
	TypeSearchResultClicked:     true,
	TypeItemViewed:              true,
	TypeItemDeleted:             true,
	TypeSessionStarted:          true,
	TypeSessionEnded:            true,
	TypeGoalCreated:             true,
	TypeGoalCompleted:           true,
	TypeAchievementUnlocked:     true,
	TypeFeatureUsed:             true,
	TypeErrorOccurred:           true,
}

// Valid reports whether t is a member of the closed event type set.
func (t Type) Valid() bool {
	return validTypes[t]
}

// Types returns all valid event types, in no particular order.
func Types() []Type {
	out := make([]Type, 0, len(validTypes))
	for t := range validTypes {
		out = append(out, t)
	}
	return out
}

// Metadata captures the environment an event was produced in.
type Metadata struct {
	Agent    string `json:"agent,omitempty"`
	Platform string `json:"platform,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Language string `json:"language,omitempty"`
}

// Event is an immutable, timestamped record of a user action. Once appended
// to the store it is referenced, never mutated.
type Event struct {
	ID        string         `json:"id"`
	Type      Type           `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"session_id"`
	Data      map[string]any `json:"data,omitempty"`
	Metadata  Metadata       `json:"metadata"`
}

// New creates an event with a fresh ID and a UTC timestamp.
func New(t Type, sessionID string, data map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		SessionID: sessionID,
		Data:      data,
	}
}

// Float reads a numeric payload field, tolerating the int/float ambiguity
// that JSON round-trips introduce. Missing or non-numeric fields return 0.
func (e Event) Float(key string) float64 {
	switch v := e.Data[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// Int reads an integer payload field, with the same tolerance as Float.
func (e Event) Int(key string) int {
	return int(e.Float(key))
}

// String reads a string payload field, returning "" when absent.
func (e Event) String(key string) string {
	s, _ := e.Data[key].(string)
	return s
}

// DurationSeconds returns the "duration" payload field in seconds, or 0.
func (e Event) DurationSeconds() float64 {
	return e.Float("duration")
}
