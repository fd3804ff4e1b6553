package contract

import (
	"context"

	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/repository/specification"
)

type IntakeSessionRepository interface {
	Create(ctx context.Context, session *entity.IntakeSession) error
	Update(ctx context.Context, session *entity.IntakeSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IntakeSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
