package model

import (
	"time"

	"github.com/google/uuid"
)

type Upload struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId    uuid.UUID `gorm:"type:uuid;not null;index"`
	OriginalName string    `gorm:"type:text;not null"`
	Mime         string    `gorm:"type:text"`
	SizeBytes    int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Upload) TableName() string {
	return "uploads"
}
