package dto

import (
	"encoding/json"

	"ref-intake-be/pkg/store"

	"github.com/google/uuid"
)

// TurnRequest is one user turn of the intake conversation. Command is one of
// the reserved words ("start", "back", "restart", "submit") or free-form
// text answering the pending field.
type TurnRequest struct {
	FormId    uuid.UUID  `json:"form_id" validate:"required"`
	SessionId *uuid.UUID `json:"session_id,omitempty"`
	Command   string     `json:"command" validate:"required"`

	// Recovery is a client-held snapshot, honored only when the server has
	// genuinely lost the session.
	Recovery *RecoverySnapshot `json:"recovery,omitempty"`
}

// RecoverySnapshot mirrors the persisted cursor+state pair.
type RecoverySnapshot struct {
	FieldCursor int             `json:"field_cursor"`
	State       json.RawMessage `json:"state"`
}

// UploadAckRequest is the file subsystem's callback once a file has been
// durably stored: metadata only, never bytes.
type UploadAckRequest struct {
	FormId    uuid.UUID      `json:"form_id" validate:"required"`
	SessionId uuid.UUID      `json:"session_id" validate:"required"`
	FieldId   string         `json:"field_id" validate:"required"`
	File      UploadMetadata `json:"file" validate:"required"`
}

type UploadMetadata struct {
	FileId       *uuid.UUID `json:"file_id,omitempty"`
	OriginalName string     `json:"original_name" validate:"required"`
	Mime         string     `json:"mime"`
	SizeBytes    int64      `json:"size_bytes" validate:"gte=0"`
}

type ProgressDTO struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

type FieldLabelDTO struct {
	Id    string `json:"id"`
	Label string `json:"label"`
}

// TurnResponse is the engine's answer to a turn: an ask prompt, the review
// payload, or the terminal done message.
type TurnResponse struct {
	Type      string    `json:"type"` // "ask" | "review" | "done"
	SessionId uuid.UUID `json:"session_id"`
	Message   string    `json:"message"`

	// ask only
	FieldId   string       `json:"field_id,omitempty"`
	InputHint string       `json:"input_hint,omitempty"`
	Progress  *ProgressDTO `json:"progress,omitempty"`

	// review only
	Records    []store.Record  `json:"records,omitempty"`
	FieldOrder []FieldLabelDTO `json:"field_order,omitempty"`
}
