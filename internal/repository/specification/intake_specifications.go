package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters rows that belong to one intake session
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByFormID filters rows that belong to one form
type ByFormID struct {
	FormID uuid.UUID
}

func (s ByFormID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("form_id = ?", s.FormID)
}

// ByStatus filters sessions by lifecycle status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
