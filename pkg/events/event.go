package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "UPLOAD_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const TypeUploadCompleted = "UPLOAD_COMPLETED"

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewUploadCompleted builds the event fired once a note photo is stored and its note saved.
func NewUploadCompleted(uid, ref, section, fullDate string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeUploadCompleted,
		Data: map[string]interface{}{
			"user_id":   uid,
			"image_ref": ref,
			"section":   section,
			"full_date": fullDate,
			"timestamp": at.UTC().Format(time.RFC3339Nano),
		},
		OccurredAt: at,
	}
}
