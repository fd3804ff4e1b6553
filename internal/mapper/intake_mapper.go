package mapper

import (
	"encoding/json"
	"time"

	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/model"
	"ref-intake-be/pkg/store"

	"gorm.io/datatypes"
)

type IntakeMapper struct{}

func NewIntakeMapper() *IntakeMapper {
	return &IntakeMapper{}
}

// SessionToEntity decodes the serialized engine state. A blob that does not
// parse is replaced by an empty state: the turn proceeds as a fresh start
// rather than failing, dropping the corrupted history.
func (m *IntakeMapper) SessionToEntity(s *model.IntakeSession) *entity.IntakeSession {
	if s == nil {
		return nil
	}

	st := store.NewEngineState()
	if len(s.State) > 0 {
		var decoded store.EngineState
		if err := json.Unmarshal(s.State, &decoded); err == nil {
			if decoded.Committed == nil {
				decoded.Committed = []store.Record{}
			}
			if decoded.Draft == nil {
				decoded.Draft = store.Record{}
			}
			st = &decoded
		}
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.IntakeSession{
		Id:          s.Id,
		FormId:      s.FormId,
		FieldCursor: s.FieldCursor,
		State:       st,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *IntakeMapper) SessionToModel(s *entity.IntakeSession) (*model.IntakeSession, error) {
	if s == nil {
		return nil, nil
	}

	stateJson, err := json.Marshal(s.State)
	if err != nil {
		return nil, err
	}

	return &model.IntakeSession{
		Id:          s.Id,
		FormId:      s.FormId,
		FieldCursor: s.FieldCursor,
		State:       datatypes.JSON(stateJson),
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
	}, nil
}

func (m *IntakeMapper) SubmissionToEntity(s *model.Submission) *entity.Submission {
	if s == nil {
		return nil
	}

	st := store.NewEngineState()
	if len(s.State) > 0 {
		var decoded store.EngineState
		if err := json.Unmarshal(s.State, &decoded); err == nil {
			st = &decoded
		}
	}

	return &entity.Submission{
		Id:        s.Id,
		SessionId: s.SessionId,
		FormId:    s.FormId,
		State:     st,
		CreatedAt: s.CreatedAt,
	}
}

func (m *IntakeMapper) SubmissionToModel(s *entity.Submission) (*model.Submission, error) {
	if s == nil {
		return nil, nil
	}

	stateJson, err := json.Marshal(s.State)
	if err != nil {
		return nil, err
	}

	return &model.Submission{
		Id:        s.Id,
		SessionId: s.SessionId,
		FormId:    s.FormId,
		State:     datatypes.JSON(stateJson),
		CreatedAt: s.CreatedAt,
	}, nil
}

func (m *IntakeMapper) UploadToEntity(u *model.Upload) *entity.Upload {
	if u == nil {
		return nil
	}
	return &entity.Upload{
		Id:           u.Id,
		SessionId:    u.SessionId,
		OriginalName: u.OriginalName,
		Mime:         u.Mime,
		SizeBytes:    u.SizeBytes,
		CreatedAt:    u.CreatedAt,
	}
}

func (m *IntakeMapper) UploadToModel(u *entity.Upload) *model.Upload {
	if u == nil {
		return nil
	}
	return &model.Upload{
		Id:           u.Id,
		SessionId:    u.SessionId,
		OriginalName: u.OriginalName,
		Mime:         u.Mime,
		SizeBytes:    u.SizeBytes,
		CreatedAt:    u.CreatedAt,
	}
}

func (m *IntakeMapper) MessageToEntity(msg *model.IntakeMessage) *entity.IntakeMessage {
	if msg == nil {
		return nil
	}
	return &entity.IntakeMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *IntakeMapper) MessageToModel(msg *entity.IntakeMessage) *model.IntakeMessage {
	if msg == nil {
		return nil
	}
	return &model.IntakeMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	}
}
