package mapper

import (
	"encoding/json"
	"time"

	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/model"

	"gorm.io/datatypes"
)

type FormMapper struct{}

func NewFormMapper() *FormMapper {
	return &FormMapper{}
}

// FormToEntity decodes the stored field list. A field list that does not
// parse is a schema error, not something to degrade around.
func (m *FormMapper) FormToEntity(f *model.Form) (*entity.Form, error) {
	if f == nil {
		return nil, nil
	}

	var fields []entity.FormField
	if len(f.Fields) > 0 {
		if err := json.Unmarshal(f.Fields, &fields); err != nil {
			return nil, err
		}
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		t := f.UpdatedAt
		updatedAt = &t
	}

	return &entity.Form{
		Id:                f.Id,
		Title:             f.Title,
		OwnerEmail:        f.OwnerEmail,
		Fields:            fields,
		TargetRecordCount: f.TargetRecordCount,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         updatedAt,
		IsDeleted:         f.DeletedAt.Valid,
	}, nil
}

func (m *FormMapper) FormToModel(f *entity.Form) (*model.Form, error) {
	if f == nil {
		return nil, nil
	}

	fieldsJson, err := json.Marshal(f.Fields)
	if err != nil {
		return nil, err
	}

	return &model.Form{
		Id:                f.Id,
		Title:             f.Title,
		OwnerEmail:        f.OwnerEmail,
		Fields:            datatypes.JSON(fieldsJson),
		TargetRecordCount: f.TargetRecordCount,
		CreatedAt:         f.CreatedAt,
	}, nil
}
