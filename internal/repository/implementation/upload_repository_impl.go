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

type UploadRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntakeMapper
}

func NewUploadRepository(db *gorm.DB) contract.UploadRepository {
	return &UploadRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntakeMapper(),
	}
}

func (r *UploadRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UploadRepositoryImpl) Create(ctx context.Context, upload *entity.Upload) error {
	m := r.mapper.UploadToModel(upload)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*upload = *r.mapper.UploadToEntity(m)
	return nil
}

func (r *UploadRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Upload, error) {
	var m model.Upload
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UploadToEntity(&m), nil
}

func (r *UploadRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Upload, error) {
	var models []*model.Upload
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Upload, 0, len(models))
	for _, m := range models {
		entities = append(entities, r.mapper.UploadToEntity(m))
	}
	return entities, nil
}
