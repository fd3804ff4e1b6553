package dto

import "github.com/google/uuid"

// SubmissionCreatedMessage is the bus payload emitted once per finalized
// session.
type SubmissionCreatedMessage struct {
	SubmissionId uuid.UUID `json:"submission_id"`
	SessionId    uuid.UUID `json:"session_id"`
	FormId       uuid.UUID `json:"form_id"`
}
