package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IntakeSession struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	FormId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	FieldCursor int            `gorm:"not null;default:0"`
	State       datatypes.JSON // serialized store.EngineState
	Status      string         `gorm:"type:text;not null;default:'in_progress';index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (IntakeSession) TableName() string {
	return "intake_sessions"
}
