package dto

import (
	"time"

	"ref-intake-be/internal/entity"

	"github.com/google/uuid"
)

type FormFieldDTO struct {
	Id       string   `json:"id" validate:"required"`
	Kind     string   `json:"kind" validate:"required,oneof=text number date choice file"`
	Label    string   `json:"label" validate:"required"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	IsEmail  bool     `json:"is_email,omitempty"`
	Accept   string   `json:"accept,omitempty"`
}

type CreateFormRequest struct {
	Title             string         `json:"title" validate:"required"`
	OwnerEmail        string         `json:"owner_email" validate:"omitempty,email"`
	Fields            []FormFieldDTO `json:"fields" validate:"required,min=1,dive"`
	TargetRecordCount int            `json:"target_record_count" validate:"required,min=1"`
}

type UpdateFormRequest struct {
	Id                uuid.UUID      `json:"-"`
	Title             string         `json:"title" validate:"required"`
	OwnerEmail        string         `json:"owner_email" validate:"omitempty,email"`
	Fields            []FormFieldDTO `json:"fields" validate:"required,min=1,dive"`
	TargetRecordCount int            `json:"target_record_count" validate:"required,min=1"`
}

type FormResponse struct {
	Id                uuid.UUID      `json:"id"`
	Title             string         `json:"title"`
	Fields            []FormFieldDTO `json:"fields"`
	TargetRecordCount int            `json:"target_record_count"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         *time.Time     `json:"updated_at,omitempty"`
}

func FieldsToDTO(fields []entity.FormField) []FormFieldDTO {
	out := make([]FormFieldDTO, 0, len(fields))
	for _, f := range fields {
		out = append(out, FormFieldDTO{
			Id:       f.Id,
			Kind:     string(f.Kind),
			Label:    f.Label,
			Required: f.Required,
			Options:  f.Options,
			Min:      f.Min,
			Max:      f.Max,
			IsEmail:  f.IsEmail,
			Accept:   f.Accept,
		})
	}
	return out
}

func FieldsToEntity(fields []FormFieldDTO) []entity.FormField {
	out := make([]entity.FormField, 0, len(fields))
	for _, f := range fields {
		out = append(out, entity.FormField{
			Id:       f.Id,
			Kind:     entity.FieldKind(f.Kind),
			Label:    f.Label,
			Required: f.Required,
			Options:  f.Options,
			Min:      f.Min,
			Max:      f.Max,
			IsEmail:  f.IsEmail,
			Accept:   f.Accept,
		})
	}
	return out
}
