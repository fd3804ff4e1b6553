package implementation

import (
	"context"
	"errors"

	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/mapper"
	"ref-intake-be/internal/model"
	"ref-intake-be/internal/repository/contract"
	"ref-intake-be/internal/repository/specification"

	"gorm.io/gorm"
)

type IntakeSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntakeMapper
}

func NewIntakeSessionRepository(db *gorm.DB) contract.IntakeSessionRepository {
	return &IntakeSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntakeMapper(),
	}
}

func (r *IntakeSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *IntakeSessionRepositoryImpl) Create(ctx context.Context, session *entity.IntakeSession) error {
	m, err := r.mapper.SessionToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *IntakeSessionRepositoryImpl) Update(ctx context.Context, session *entity.IntakeSession) error {
	m, err := r.mapper.SessionToModel(session)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *IntakeSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IntakeSession, error) {
	var m model.IntakeSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *IntakeSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.IntakeSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
