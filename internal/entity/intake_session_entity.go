package entity

import (
	"time"

	"ref-intake-be/pkg/store"

	"github.com/google/uuid"
)

const (
	SessionStatusInProgress = "in_progress"
	SessionStatusSubmitted  = "submitted"
)

// IntakeSession is the persisted per-session record: where the conversation
// stands (FieldCursor), what has been collected (State) and whether the
// session is still open. Once Status is "submitted" the record is frozen.
type IntakeSession struct {
	Id          uuid.UUID
	FormId      uuid.UUID
	FieldCursor int
	State       *store.EngineState
	Status      string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewIntakeSession(formId uuid.UUID) *IntakeSession {
	return &IntakeSession{
		Id:        uuid.New(),
		FormId:    formId,
		State:     store.NewEngineState(),
		Status:    SessionStatusInProgress,
		CreatedAt: time.Now(),
	}
}
