package dto

import (
	"time"

	"ref-intake-be/pkg/store"

	"github.com/google/uuid"
)

type SubmissionResponse struct {
	Id        uuid.UUID      `json:"id"`
	SessionId uuid.UUID      `json:"session_id"`
	FormId    uuid.UUID      `json:"form_id"`
	Records   []store.Record `json:"records"`
	CreatedAt time.Time      `json:"created_at"`
}

type TranscriptMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
