package entity

import (
	"time"

	"ref-intake-be/pkg/store"

	"github.com/google/uuid"
)

// Submission is the append-only snapshot written at finalization. At most
// one exists per session.
type Submission struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	FormId    uuid.UUID
	State     *store.EngineState
	CreatedAt time.Time
}
