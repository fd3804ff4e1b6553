package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Submission struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	// The unique index is the database-level backstop for idempotent
	// finalization: at most one submission per session.
	SessionId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	FormId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	State     datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Submission) TableName() string {
	return "submissions"
}
