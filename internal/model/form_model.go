package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Form struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title             string         `gorm:"type:text;not null"`
	OwnerEmail        string         `gorm:"type:text"`
	Fields            datatypes.JSON `gorm:"not null"` // ordered []entity.FormField
	TargetRecordCount int            `gorm:"not null;default:1"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Form) TableName() string {
	return "forms"
}
