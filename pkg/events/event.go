package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SUBMISSION_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

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

// NewSubmissionCreated is emitted once per session, on the turn that wrote
// the submission snapshot.
func NewSubmissionCreated(submissionId, sessionId, formId uuid.UUID) Event {
	return BaseEvent{
		Type: "SUBMISSION_CREATED",
		Data: map[string]interface{}{
			"submission_id": submissionId.String(),
			"session_id":    sessionId.String(),
			"form_id":       formId.String(),
		},
		OccurredAt: time.Now(),
	}
}
