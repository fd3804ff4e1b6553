package contract

import (
	"context"

	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/repository/specification"
)

type UploadRepository interface {
	Create(ctx context.Context, upload *entity.Upload) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Upload, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Upload, error)
}
