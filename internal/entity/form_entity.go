package entity

import (
	"time"

	"github.com/google/uuid"
)

type FieldKind string

const (
	FieldKindText   FieldKind = "text"
	FieldKindNumber FieldKind = "number"
	FieldKindDate   FieldKind = "date"
	FieldKindChoice FieldKind = "choice"
	FieldKindFile   FieldKind = "file"
)

// FormField is one field specification of a form schema. Immutable once
// loaded.
type FormField struct {
	Id       string    `json:"id"`
	Kind     FieldKind `json:"kind"`
	Label    string    `json:"label"`
	Required bool      `json:"required"`

	// Kind-specific constraints
	Options []string `json:"options,omitempty"` // choice: ordered option labels
	Min     *float64 `json:"min,omitempty"`     // number
	Max     *float64 `json:"max,omitempty"`     // number
	IsEmail bool     `json:"is_email,omitempty"`
	Accept  string   `json:"accept,omitempty"` // file: accepted mime hint
}

type Form struct {
	Id                uuid.UUID
	Title             string
	OwnerEmail        string
	Fields            []FormField
	TargetRecordCount int
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	IsDeleted         bool
}

// FieldAt returns the field under the cursor, or nil when the cursor is past
// the last field.
func (f *Form) FieldAt(cursor int) *FormField {
	if cursor < 0 || cursor >= len(f.Fields) {
		return nil
	}
	return &f.Fields[cursor]
}
