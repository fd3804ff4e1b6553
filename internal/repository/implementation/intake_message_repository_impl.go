package implementation

import (
	"context"

	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/mapper"
	"ref-intake-be/internal/model"
	"ref-intake-be/internal/repository/contract"
	"ref-intake-be/internal/repository/specification"

	"gorm.io/gorm"
)

type IntakeMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntakeMapper
}

func NewIntakeMessageRepository(db *gorm.DB) contract.IntakeMessageRepository {
	return &IntakeMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntakeMapper(),
	}
}

func (r *IntakeMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *IntakeMessageRepositoryImpl) Create(ctx context.Context, message *entity.IntakeMessage) error {
	m := r.mapper.MessageToModel(message)
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *IntakeMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeMessage, error) {
	var models []*model.IntakeMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.IntakeMessage, 0, len(models))
	for _, m := range models {
		entities = append(entities, r.mapper.MessageToEntity(m))
	}
	return entities, nil
}
