package contract

import (
	"context"

	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FormRepository interface {
	Create(ctx context.Context, form *entity.Form) error
	Update(ctx context.Context, form *entity.Form) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Form, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Form, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
