package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// IntakeMessage is one line of the session transcript, kept for read-only
// reporting.
type IntakeMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Role      string
	Body      string
	CreatedAt time.Time
}
