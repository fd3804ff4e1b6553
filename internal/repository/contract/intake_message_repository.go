package contract

import (
	"context"

	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/repository/specification"
)

type IntakeMessageRepository interface {
	Create(ctx context.Context, message *entity.IntakeMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeMessage, error)
}
