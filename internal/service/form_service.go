package service

import (
	"context"
	"fmt"
	"time"

	"ref-intake-be/internal/dto"
	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/repository/specification"
	"ref-intake-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IFormService interface {
	Create(ctx context.Context, req *dto.CreateFormRequest) (*dto.FormResponse, error)
	Update(ctx context.Context, req *dto.UpdateFormRequest) (*dto.FormResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Show(ctx context.Context, id uuid.UUID) (*dto.FormResponse, error)
	GetAll(ctx context.Context) ([]*dto.FormResponse, error)

	// LoadSpec returns the validated schema the engine runs against. A form
	// that exists but fails structural validation is a SchemaError: nothing
	// can be asked from a broken definition.
	LoadSpec(ctx context.Context, id uuid.UUID) (*entity.Form, error)
}

type formService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFormService(uowFactory unitofwork.RepositoryFactory) IFormService {
	return &formService{uowFactory: uowFactory}
}

func validateSchema(form *entity.Form) error {
	if len(form.Fields) == 0 {
		return &dto.SchemaError{Detail: "field list is empty"}
	}
	if form.TargetRecordCount < 1 {
		return &dto.SchemaError{Detail: "target record count must be at least 1"}
	}

	seen := make(map[string]bool, len(form.Fields))
	for i, f := range form.Fields {
		if f.Id == "" {
			return &dto.SchemaError{Detail: fmt.Sprintf("field %d has no id", i)}
		}
		if seen[f.Id] {
			return &dto.SchemaError{Detail: fmt.Sprintf("duplicate field id %q", f.Id)}
		}
		seen[f.Id] = true

		if f.Label == "" {
			return &dto.SchemaError{Detail: fmt.Sprintf("field %q has no label", f.Id)}
		}

		switch f.Kind {
		case entity.FieldKindText, entity.FieldKindNumber, entity.FieldKindDate, entity.FieldKindFile:
		case entity.FieldKindChoice:
			if len(f.Options) == 0 {
				return &dto.SchemaError{Detail: fmt.Sprintf("choice field %q has no options", f.Id)}
			}
		default:
			return &dto.SchemaError{Detail: fmt.Sprintf("field %q has unknown kind %q", f.Id, f.Kind)}
		}

		if f.Kind == entity.FieldKindNumber && f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return &dto.SchemaError{Detail: fmt.Sprintf("field %q has min greater than max", f.Id)}
		}
	}
	return nil
}

func toFormResponse(form *entity.Form) *dto.FormResponse {
	return &dto.FormResponse{
		Id:                form.Id,
		Title:             form.Title,
		Fields:            dto.FieldsToDTO(form.Fields),
		TargetRecordCount: form.TargetRecordCount,
		CreatedAt:         form.CreatedAt,
		UpdatedAt:         form.UpdatedAt,
	}
}

func (s *formService) Create(ctx context.Context, req *dto.CreateFormRequest) (*dto.FormResponse, error) {
	form := &entity.Form{
		Id:                uuid.New(),
		Title:             req.Title,
		OwnerEmail:        req.OwnerEmail,
		Fields:            dto.FieldsToEntity(req.Fields),
		TargetRecordCount: req.TargetRecordCount,
		CreatedAt:         time.Now(),
	}

	if err := validateSchema(form); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FormRepository().Create(ctx, form); err != nil {
		return nil, err
	}

	return toFormResponse(form), nil
}

func (s *formService) Update(ctx context.Context, req *dto.UpdateFormRequest) (*dto.FormResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.FormRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &dto.NotFoundError{Resource: "form"}
	}

	existing.Title = req.Title
	existing.OwnerEmail = req.OwnerEmail
	existing.Fields = dto.FieldsToEntity(req.Fields)
	existing.TargetRecordCount = req.TargetRecordCount

	if err := validateSchema(existing); err != nil {
		return nil, err
	}

	if err := uow.FormRepository().Update(ctx, existing); err != nil {
		return nil, err
	}

	return toFormResponse(existing), nil
}

func (s *formService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.FormRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if existing == nil {
		return &dto.NotFoundError{Resource: "form"}
	}

	return uow.FormRepository().Delete(ctx, id)
}

func (s *formService) Show(ctx context.Context, id uuid.UUID) (*dto.FormResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	form, err := uow.FormRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, &dto.NotFoundError{Resource: "form"}
	}

	return toFormResponse(form), nil
}

func (s *formService) GetAll(ctx context.Context) ([]*dto.FormResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	forms, err := uow.FormRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FormResponse, 0, len(forms))
	for _, form := range forms {
		result = append(result, toFormResponse(form))
	}
	return result, nil
}

func (s *formService) LoadSpec(ctx context.Context, id uuid.UUID) (*entity.Form, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	form, err := uow.FormRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, &dto.NotFoundError{Resource: "form"}
	}

	if err := validateSchema(form); err != nil {
		return nil, err
	}
	return form, nil
}
